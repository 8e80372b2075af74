// Package app composes the assistant core with fx: storage, lock, logging,
// event bus, provider resolution and the boundary services.
package app

import (
	"context"

	"github.com/rmarques/confab/internal/api"
	"github.com/rmarques/confab/internal/bus"
	"github.com/rmarques/confab/internal/chat"
	"github.com/rmarques/confab/internal/lock"
	"github.com/rmarques/confab/internal/logging"
	"github.com/rmarques/confab/internal/profile"
	"github.com/rmarques/confab/internal/provider"
	"github.com/rmarques/confab/internal/status"
	"github.com/rmarques/confab/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	ProfileName string
	DataDir     string // optional override for testing; empty = profile data dir
}

// Module returns the fx module composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("app",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideBus,
			provideLock,
			provideStore,
			provideTracker,
			provideEngine,
			api.NewContactService,
			api.NewMessageService,
			api.NewConfigService,
			api.NewChatService,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(profile.LogPath(p.ProfileName), p.ProfileName)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	l, err := lock.Acquire(profile.Dir(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired", zap.String("profile", p.ProfileName))
	return l, nil
}

func provideStore(p Params, logger *zap.Logger) (*store.Store, error) {
	dataDir := p.DataDir
	if dataDir == "" {
		dataDir = profile.DataDir(p.ProfileName)
	}
	st, err := store.Open(dataDir)
	if err != nil {
		return nil, err
	}
	logger.Info("store opened", zap.String("root", st.Root()))
	return st, nil
}

func provideTracker(b *bus.Bus) *status.Tracker {
	return status.NewTracker(b)
}

func provideEngine(st *store.Store, tracker *status.Tracker, b *bus.Bus, logger *zap.Logger) *chat.Engine {
	return chat.NewEngine(st, provider.Resolve, tracker, b, logger)
}

func registerLifecycle(lc fx.Lifecycle, lk *lock.Lock, b *bus.Bus, logger *zap.Logger) {
	var unsub func()
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Mirror every domain event into the log for debugging.
			ch, stop := b.Subscribe("", 64)
			unsub = stop
			go func() {
				for {
					select {
					case evt := <-ch:
						logger.Debug("event", zap.String("kind", evt.Kind))
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			if unsub != nil {
				unsub()
				close(done)
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			_ = logger.Sync()
			return nil
		},
	})
}
