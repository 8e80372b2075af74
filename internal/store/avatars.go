package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmarques/confab/internal/profile"
)

// avatarExts is the fixed probe order for avatar lookup. A contact has at
// most one blob at a time, under exactly one of these extensions.
var avatarExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

func (s *Store) avatarPath(contactID int64, ext string) string {
	return filepath.Join(profile.AvatarsDir(s.root), strconv.FormatInt(contactID, 10)+ext)
}

// AvatarPath returns the stored avatar path for a contact, or "" when no
// blob exists under any supported extension.
func (s *Store) AvatarPath(contactID int64) string {
	for _, ext := range avatarExts {
		p := s.avatarPath(contactID, ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// PutAvatar copies the image at sourcePath into the avatar directory under
// the contact's id, preserving the source extension. Any pre-existing blob
// for the id is removed first, so an extension change cannot leave the old
// file orphaned. Returns the destination path.
func (s *Store) PutAvatar(contactID int64, sourcePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if !supportedAvatarExt(ext) {
		return "", fmt.Errorf("unsupported avatar format %q", ext)
	}

	if err := s.DeleteAvatar(contactID); err != nil {
		return "", err
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("open avatar source: %w", err)
	}
	defer func() { _ = src.Close() }()

	dest := s.avatarPath(contactID, ext)
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("create avatar: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return "", fmt.Errorf("copy avatar: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close avatar: %w", err)
	}
	return dest, nil
}

// DeleteAvatar removes the contact's blob under every supported extension.
// Absent blobs are not an error.
func (s *Store) DeleteAvatar(contactID int64) error {
	for _, ext := range avatarExts {
		p := s.avatarPath(contactID, ext)
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete avatar: %w", err)
		}
	}
	return nil
}

func supportedAvatarExt(ext string) bool {
	for _, e := range avatarExts {
		if e == ext {
			return true
		}
	}
	return false
}
