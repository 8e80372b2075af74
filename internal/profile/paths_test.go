package profile

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestBaseDirHonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFAB_HOME", dir)
	if got := BaseDir(); got != dir {
		t.Errorf("BaseDir() = %q, want %q", got, dir)
	}
}

func TestPathLayout(t *testing.T) {
	t.Setenv("CONFAB_HOME", "/tmp/confab-home")

	if got := Dir("work"); got != "/tmp/confab-home/profiles/work" {
		t.Errorf("Dir() = %q", got)
	}
	if got := DataDir("work"); got != "/tmp/confab-home/profiles/work/data" {
		t.Errorf("DataDir() = %q", got)
	}
	if got := ConfigPath(); got != "/tmp/confab-home/config.toml" {
		t.Errorf("ConfigPath() = %q", got)
	}
}

func TestDataRootDocumentPaths(t *testing.T) {
	data := "/data"

	if got := SettingsPath(data); got != filepath.Join(data, "config.json") {
		t.Errorf("SettingsPath() = %q", got)
	}
	if got := ContactsPath(data); got != filepath.Join(data, "contacts.json") {
		t.Errorf("ContactsPath() = %q", got)
	}
	if got := MessagesPath(data, 1700000000000); got != filepath.Join(data, "1700000000000", "messages.json") {
		t.Errorf("MessagesPath() = %q", got)
	}
	if got := AvatarsDir(data); got != filepath.Join(data, "avatars") {
		t.Errorf("AvatarsDir() = %q", got)
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"main", "work-2", "a_b", strings.Repeat("x", 64)}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "Main", "has space", "slash/name", strings.Repeat("x", 65)}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
		}
	}
}
