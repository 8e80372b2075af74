package api

import (
	"time"

	"github.com/rmarques/confab/internal/bus"
	"github.com/rmarques/confab/internal/store"
	"go.uber.org/zap"
)

// ConfigService owns the assistant settings document.
type ConfigService struct {
	store  *store.Store
	bus    *bus.Bus
	logger *zap.Logger
}

// NewConfigService creates a new config service backed by the store.
func NewConfigService(st *store.Store, b *bus.Bus, logger *zap.Logger) *ConfigService {
	return &ConfigService{store: st, bus: b, logger: logger}
}

// Load returns the settings document, defaulted on first run.
func (s *ConfigService) Load() (*store.Settings, error) {
	return s.store.Settings()
}

// Save overwrites the settings document wholesale.
func (s *ConfigService) Save(cfg *store.Settings) error {
	if err := s.store.SaveSettings(cfg); err != nil {
		return err
	}
	s.logger.Info("settings saved", zap.String("provider", cfg.Provider))
	s.bus.Publish(bus.Event{Kind: "settings.saved", Timestamp: time.Now()})
	return nil
}
