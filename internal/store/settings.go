package store

import "github.com/rmarques/confab/internal/profile"

func (s *Store) settingsPath() string {
	return profile.SettingsPath(s.root)
}

// Settings returns the assistant configuration document, or the default
// settings when none has been saved yet. Maps are never nil.
func (s *Store) Settings() (*Settings, error) {
	var cfg Settings
	found, err := readDoc(s.settingsPath(), &cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		return defaultSettings(), nil
	}
	if cfg.APIKeys == nil {
		cfg.APIKeys = map[string]string{}
	}
	if cfg.Models == nil {
		cfg.Models = map[string]string{}
	}
	if cfg.UseCustomModels == nil {
		cfg.UseCustomModels = map[string]bool{}
	}
	return &cfg, nil
}

// SaveSettings overwrites the configuration document wholesale.
func (s *Store) SaveSettings(cfg *Settings) error {
	return writeDoc(s.settingsPath(), cfg)
}
