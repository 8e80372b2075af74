package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rmarques/confab/internal/profile"
)

func (s *Store) messagesPath(contactID int64) string {
	return profile.MessagesPath(s.root, contactID)
}

// Messages returns the conversation log for a contact in append order.
// A missing log means an empty conversation.
func (s *Store) Messages(contactID int64) ([]Message, error) {
	var msgs []Message
	if _, err := readDoc(s.messagesPath(contactID), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// AppendMessages appends msgs to the contact's log and persists the whole
// updated sequence in one write.
func (s *Store) AppendMessages(contactID int64, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	existing, err := s.Messages(contactID)
	if err != nil {
		return err
	}
	existing = append(existing, msgs...)
	if err := writeDoc(s.messagesPath(contactID), existing); err != nil {
		return fmt.Errorf("append messages for contact %d: %w", contactID, err)
	}
	return nil
}

// ClearMessages truncates a contact's log by removing its directory.
// An absent log clears to the same result, so that is not an error.
func (s *Store) ClearMessages(contactID int64) error {
	dir := filepath.Dir(s.messagesPath(contactID))
	if err := os.RemoveAll(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear messages for contact %d: %w", contactID, err)
	}
	return nil
}
