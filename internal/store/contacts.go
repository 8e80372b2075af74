package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rmarques/confab/internal/profile"
)

// ErrEmptyName is returned when a contact is created or updated with a blank name.
var ErrEmptyName = errors.New("contact name is empty")

// ErrContactNotFound is returned for operations against an unknown contact id.
var ErrContactNotFound = errors.New("contact not found")

func (s *Store) contactsPath() string {
	return profile.ContactsPath(s.root)
}

// Contacts returns the roster in insertion order. A missing roster document
// yields the seeded default roster (not persisted until first mutation).
func (s *Store) Contacts() ([]Contact, error) {
	var list []Contact
	found, err := readDoc(s.contactsPath(), &list)
	if err != nil {
		return nil, err
	}
	if !found {
		return defaultRoster(), nil
	}
	return list, nil
}

// GetContact returns the contact with the given id, or nil if absent.
func (s *Store) GetContact(id int64) (*Contact, error) {
	list, err := s.Contacts()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

// CreateContact validates and appends a new roster entry, storing the avatar
// blob when avatarSource names an image file. The assigned id is the creation
// time in milliseconds, bumped past any existing id so ids stay monotonic.
func (s *Store) CreateContact(name, persona, avatarSource string) (*Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	list, err := s.Contacts()
	if err != nil {
		return nil, err
	}

	id := time.Now().UnixMilli()
	for _, c := range list {
		if c.ID >= id {
			id = c.ID + 1
		}
	}

	contact := Contact{ID: id, Name: name, Persona: persona}
	if avatarSource != "" {
		dest, err := s.PutAvatar(id, avatarSource)
		if err != nil {
			return nil, err
		}
		contact.Avatar = dest
	}

	list = append(list, contact)
	if err := s.saveContacts(list); err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContact replaces name/persona of an existing contact in place and
// reassigns the avatar when a new source is supplied. Preview fields are
// untouched.
func (s *Store) UpdateContact(id int64, name, persona, avatarSource string) (*Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	list, err := s.Contacts()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		list[i].Name = name
		list[i].Persona = persona
		if avatarSource != "" {
			dest, err := s.PutAvatar(id, avatarSource)
			if err != nil {
				return nil, err
			}
			list[i].Avatar = dest
		}
		if err := s.saveContacts(list); err != nil {
			return nil, err
		}
		return &list[i], nil
	}
	return nil, fmt.Errorf("update contact %d: %w", id, ErrContactNotFound)
}

// DeleteContact removes the contact, its conversation log and its avatar.
// The cascade runs before the roster write so a crash cannot leave orphaned
// documents behind a still-listed contact. Deleting an unknown id is a no-op.
// Returns the remaining roster so callers can re-anchor their active selection.
func (s *Store) DeleteContact(id int64) ([]Contact, error) {
	list, err := s.Contacts()
	if err != nil {
		return nil, err
	}

	kept := list[:0]
	removed := false
	for _, c := range list {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return list, nil
	}

	if err := s.ClearMessages(id); err != nil {
		return nil, err
	}
	if err := s.DeleteAvatar(id); err != nil {
		return nil, err
	}
	if err := s.saveContacts(kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// RecordExchange updates only the preview fields of a contact after a
// completed send: last message preview and activity label. Name, persona and
// avatar are left as they are.
func (s *Store) RecordExchange(id int64, preview, label string) error {
	list, err := s.Contacts()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		list[i].LastMsg = preview
		list[i].Time = label
		return s.saveContacts(list)
	}
	return fmt.Errorf("record exchange for contact %d: %w", id, ErrContactNotFound)
}

func (s *Store) saveContacts(list []Contact) error {
	return writeDoc(s.contactsPath(), list)
}
