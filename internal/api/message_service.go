package api

import (
	"time"

	"github.com/rmarques/confab/internal/bus"
	"github.com/rmarques/confab/internal/store"
	"go.uber.org/zap"
)

// MessageService owns conversation log reads and destructive log operations.
type MessageService struct {
	store  *store.Store
	bus    *bus.Bus
	logger *zap.Logger
}

// NewMessageService creates a new message service backed by the store.
func NewMessageService(st *store.Store, b *bus.Bus, logger *zap.Logger) *MessageService {
	return &MessageService{store: st, bus: b, logger: logger}
}

// History returns the full conversation log for a contact in append order.
func (s *MessageService) History(contactID int64) ([]store.Message, error) {
	return s.store.Messages(contactID)
}

// Clear truncates one contact's conversation log.
func (s *MessageService) Clear(contactID int64) error {
	if err := s.store.ClearMessages(contactID); err != nil {
		return err
	}
	s.bus.Publish(bus.Event{
		Kind:      "message.cleared",
		Timestamp: time.Now(),
		Payload:   map[string]int64{"contact_id": contactID},
	})
	return nil
}

// WipeAll destroys every persisted document and recreates an empty storage
// root. Irreversible.
func (s *MessageService) WipeAll() error {
	if err := s.store.WipeAll(); err != nil {
		return err
	}
	s.logger.Warn("storage wiped")
	s.bus.Publish(bus.Event{Kind: "message.cleared", Timestamp: time.Now()})
	return nil
}
