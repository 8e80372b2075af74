// Package api is the boundary exposed to the UI layer: thin services over
// the store and orchestrator, speaking plain Go types.
package api

import (
	"time"

	"github.com/rmarques/confab/internal/bus"
	"github.com/rmarques/confab/internal/store"
	"go.uber.org/zap"
)

// ContactService owns roster operations.
type ContactService struct {
	store  *store.Store
	bus    *bus.Bus
	logger *zap.Logger
}

// NewContactService creates a new contact service backed by the store.
func NewContactService(st *store.Store, b *bus.Bus, logger *zap.Logger) *ContactService {
	return &ContactService{store: st, bus: b, logger: logger}
}

// List returns the roster in insertion order.
func (s *ContactService) List() ([]store.Contact, error) {
	return s.store.Contacts()
}

// Get returns one contact, or nil when absent.
func (s *ContactService) Get(id int64) (*store.Contact, error) {
	return s.store.GetContact(id)
}

// Create adds a contact. avatarSource may name an image file to copy into
// the blob store; empty means no avatar.
func (s *ContactService) Create(name, persona, avatarSource string) (*store.Contact, error) {
	c, err := s.store.CreateContact(name, persona, avatarSource)
	if err != nil {
		return nil, err
	}
	s.logger.Info("contact created", zap.Int64("id", c.ID), zap.String("name", c.Name))
	s.publish("contact.created", c.ID)
	return c, nil
}

// Update edits name/persona and optionally replaces the avatar.
func (s *ContactService) Update(id int64, name, persona, avatarSource string) (*store.Contact, error) {
	c, err := s.store.UpdateContact(id, name, persona, avatarSource)
	if err != nil {
		return nil, err
	}
	s.publish("contact.updated", id)
	return c, nil
}

// Delete removes a contact and cascades to its conversation log and avatar.
// Returns the remaining roster; callers whose active selection was deleted
// fall back to the first remaining contact, or none if the roster is empty.
func (s *ContactService) Delete(id int64) ([]store.Contact, error) {
	remaining, err := s.store.DeleteContact(id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("contact deleted", zap.Int64("id", id))
	s.publish("contact.deleted", id)
	return remaining, nil
}

// AvatarPath returns the stored avatar blob path, or "" when absent.
func (s *ContactService) AvatarPath(id int64) string {
	return s.store.AvatarPath(id)
}

func (s *ContactService) publish(kind string, id int64) {
	s.bus.Publish(bus.Event{
		Kind:      kind,
		Timestamp: time.Now(),
		Payload:   map[string]int64{"contact_id": id},
	})
}
