package profile

import (
	"os"
	"path/filepath"
	"strconv"
)

// BaseDir returns ~/.confab, or $CONFAB_HOME when set.
func BaseDir() string {
	if dir := os.Getenv("CONFAB_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".confab")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// DataDir returns the storage root for a profile. Every persisted document
// (roster, settings, message logs, avatars) lives under this directory.
func DataDir(name string) string {
	return filepath.Join(Dir(name), "data")
}

// LockPath returns the lock file path for a profile.
func LockPath(name string) string {
	return filepath.Join(Dir(name), "LOCK")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the CLI log file path.
func LogPath(name string) string {
	return filepath.Join(LogDir(name), "confab.log")
}

// ConfigPath returns the global process config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// SettingsPath returns the assistant settings document inside a data root.
func SettingsPath(dataDir string) string {
	return filepath.Join(dataDir, "config.json")
}

// ContactsPath returns the roster document inside a data root.
func ContactsPath(dataDir string) string {
	return filepath.Join(dataDir, "contacts.json")
}

// MessagesPath returns the per-contact message log inside a data root.
func MessagesPath(dataDir string, contactID int64) string {
	return filepath.Join(dataDir, strconv.FormatInt(contactID, 10), "messages.json")
}

// AvatarsDir returns the avatar blob directory inside a data root.
func AvatarsDir(dataDir string) string {
	return filepath.Join(dataDir, "avatars")
}

// EnsureDir creates the profile directory tree with proper permissions.
func EnsureDir(name string) error {
	dirs := []string{
		Dir(name),
		DataDir(name),
		LogDir(name),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
