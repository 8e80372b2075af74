package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rmarques/confab/internal/profile"
)

// Store persists every document family under a single storage root:
//
//	contacts.json          ordered roster
//	config.json            assistant settings
//	<contactID>/messages.json  per-contact conversation log
//	avatars/<contactID>.<ext>  avatar blobs
//
// Documents are written whole; there are no partial updates. The store does
// no internal locking: callers are expected to issue sequential,
// non-overlapping calls (see internal/lock for the cross-process guard).
type Store struct {
	root string
}

// Open prepares the storage root, creating it and the avatar directory if needed.
func Open(root string) (*Store, error) {
	s := &Store{root: root}
	if err := s.ensureRoot(); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) ensureRoot() error {
	for _, d := range []string{s.root, profile.AvatarsDir(s.root)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	return nil
}

// WipeAll destroys every persisted document and recreates an empty root.
// Irreversible. Any failure is surfaced rather than leaving a half-wiped
// root looking consistent.
func (s *Store) WipeAll() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("wipe storage root: %w", err)
	}
	return s.ensureRoot()
}

// readDoc unmarshals the JSON document at path into v. Returns false with no
// error when the document does not exist; callers substitute their default.
func readDoc(path string, v any) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

// writeDoc atomically overwrites the JSON document at path: marshal to a
// temp file in the same directory, then rename over the target.
func writeDoc(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create dir for %s: %w", filepath.Base(path), err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0600); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
