package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("fake image bytes"), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultRosterSeeded(t *testing.T) {
	s := testStore(t)

	list, err := s.Contacts()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("default roster has %d contacts, want 1", len(list))
	}
	if list[0].Name != "Assistant" {
		t.Errorf("seeded contact name = %q, want Assistant", list[0].Name)
	}
	if list[0].Persona == "" {
		t.Error("seeded contact has empty persona")
	}
}

func TestCreateContactAssignsMonotonicIDs(t *testing.T) {
	s := testStore(t)

	a, err := s.CreateContact("Alice", "", "")
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.CreateContact("Bob", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if b.ID <= a.ID {
		t.Errorf("ids not monotonic: %d then %d", a.ID, b.ID)
	}

	list, err := s.Contacts()
	if err != nil {
		t.Fatal(err)
	}
	// Seeded contact + two created, in insertion order.
	if len(list) != 3 {
		t.Fatalf("roster size = %d, want 3", len(list))
	}
	if list[1].Name != "Alice" || list[2].Name != "Bob" {
		t.Errorf("roster order = %q, %q; want Alice, Bob", list[1].Name, list[2].Name)
	}
}

func TestCreateContactRejectsBlankName(t *testing.T) {
	s := testStore(t)

	before, err := s.Contacts()
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := s.CreateContact(name, "p", ""); err != ErrEmptyName {
			t.Errorf("CreateContact(%q) error = %v, want ErrEmptyName", name, err)
		}
	}

	after, err := s.Contacts()
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Errorf("roster size changed from %d to %d on rejected create", len(before), len(after))
	}
}

func TestUpdateContactKeepsPreviewFields(t *testing.T) {
	s := testStore(t)

	c, err := s.CreateContact("Alice", "old persona", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordExchange(c.ID, "preview text", "12:30"); err != nil {
		t.Fatal(err)
	}

	updated, err := s.UpdateContact(c.ID, "Alicia", "new persona", "")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Alicia" || updated.Persona != "new persona" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.LastMsg != "preview text" || updated.Time != "12:30" {
		t.Errorf("preview fields clobbered by update: %+v", updated)
	}
}

func TestUpdateUnknownContact(t *testing.T) {
	s := testStore(t)
	if _, err := s.UpdateContact(999, "Name", "", ""); err == nil {
		t.Error("UpdateContact on unknown id should fail")
	}
}

func TestAppendOrderPreserved(t *testing.T) {
	s := testStore(t)

	const n = 7
	for i := 0; i < n; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		if err := s.AppendMessages(42, NewMessage(role, fmt.Sprintf("msg-%d", i))); err != nil {
			t.Fatal(err)
		}
	}

	msgs, err := s.Messages(42)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != n {
		t.Fatalf("got %d messages, want %d", len(msgs), n)
	}
	for i, m := range msgs {
		if want := fmt.Sprintf("msg-%d", i); m.Content != want {
			t.Errorf("message %d content = %q, want %q", i, m.Content, want)
		}
	}
}

func TestMessagesEmptyForUnknownContact(t *testing.T) {
	s := testStore(t)
	msgs, err := s.Messages(12345)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Errorf("got %d messages for unknown contact, want 0", len(msgs))
	}
}

func TestClearMessages(t *testing.T) {
	s := testStore(t)

	if err := s.AppendMessages(7, NewMessage(RoleUser, "hi")); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearMessages(7); err != nil {
		t.Fatal(err)
	}
	msgs, err := s.Messages(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Errorf("got %d messages after clear, want 0", len(msgs))
	}

	// Clearing an already-empty log is fine.
	if err := s.ClearMessages(7); err != nil {
		t.Errorf("second clear error = %v", err)
	}
}

func TestDeleteContactCascades(t *testing.T) {
	s := testStore(t)

	src := writeImage(t, t.TempDir(), "face.png")
	c, err := s.CreateContact("Alice", "p", src)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AppendMessages(c.ID, NewMessage(RoleUser, "hi"), NewMessage(RoleAssistant, "hello")); err != nil {
		t.Fatal(err)
	}
	if s.AvatarPath(c.ID) == "" {
		t.Fatal("avatar missing before delete")
	}

	remaining, err := s.DeleteContact(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range remaining {
		if r.ID == c.ID {
			t.Error("deleted contact still in roster")
		}
	}

	msgs, err := s.Messages(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Errorf("got %d messages after contact delete, want 0", len(msgs))
	}
	if got := s.AvatarPath(c.ID); got != "" {
		t.Errorf("avatar still present after delete: %q", got)
	}
}

func TestDeleteUnknownContactIsNoop(t *testing.T) {
	s := testStore(t)
	before, _ := s.Contacts()
	after, err := s.DeleteContact(999)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Errorf("roster size changed on unknown delete: %d -> %d", len(before), len(after))
	}
}

func TestRecordExchange(t *testing.T) {
	s := testStore(t)
	c, err := s.CreateContact("Alice", "persona", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.RecordExchange(c.ID, "hello there", "09:15"); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetContact(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastMsg != "hello there" || got.Time != "09:15" {
		t.Errorf("preview fields = %q/%q, want hello there/09:15", got.LastMsg, got.Time)
	}
	if got.Name != "Alice" || got.Persona != "persona" {
		t.Errorf("RecordExchange touched identity fields: %+v", got)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := testStore(t)

	cfg := &Settings{
		Provider:        "siliconflow",
		APIKeys:         map[string]string{"siliconflow": "sk-test", "zhipu": ""},
		Models:          map[string]string{"siliconflow": "deepseek-ai/DeepSeek-V3"},
		UseCustomModels: map[string]bool{"siliconflow": true},
	}
	if err := s.SaveSettings(cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Provider != cfg.Provider {
		t.Errorf("Provider = %q, want %q", loaded.Provider, cfg.Provider)
	}
	if loaded.APIKeys["siliconflow"] != "sk-test" {
		t.Errorf("APIKeys not round-tripped: %v", loaded.APIKeys)
	}
	if loaded.Models["siliconflow"] != "deepseek-ai/DeepSeek-V3" {
		t.Errorf("Models not round-tripped: %v", loaded.Models)
	}
	if !loaded.UseCustomModels["siliconflow"] {
		t.Errorf("UseCustomModels not round-tripped: %v", loaded.UseCustomModels)
	}
}

func TestSettingsDefaults(t *testing.T) {
	s := testStore(t)

	cfg, err := s.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != "zhipu" {
		t.Errorf("default provider = %q, want zhipu", cfg.Provider)
	}
	if cfg.Models["zhipu"] != "glm-4-flash" {
		t.Errorf("default zhipu model = %q, want glm-4-flash", cfg.Models["zhipu"])
	}
	if cfg.APIKeys["zhipu"] != "" {
		t.Error("default settings should have empty keys")
	}
}

func TestWipeAll(t *testing.T) {
	s := testStore(t)

	if _, err := s.CreateContact("Alice", "", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendMessages(1, NewMessage(RoleUser, "hi")); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSettings(defaultSettings()); err != nil {
		t.Fatal(err)
	}

	if err := s.WipeAll(); err != nil {
		t.Fatal(err)
	}

	// Back to first-run state: seeded roster, empty logs, default settings.
	list, err := s.Contacts()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Assistant" {
		t.Errorf("roster after wipe = %+v, want seeded default", list)
	}
	msgs, err := s.Messages(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Errorf("messages survived wipe: %d", len(msgs))
	}
}
