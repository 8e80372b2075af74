// Package chat orchestrates a send: it turns a user utterance plus persona
// and windowed history into a completion request, executes it, and folds the
// exchange back into the store and roster preview fields.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rmarques/confab/internal/bus"
	"github.com/rmarques/confab/internal/provider"
	"github.com/rmarques/confab/internal/status"
	"github.com/rmarques/confab/internal/store"
	"go.uber.org/zap"
)

// maxWindowExchanges bounds the history forwarded to the provider: at most
// the last 100 exchanges (200 messages), regardless of log length. Not
// configurable; this keeps prompt size and provider cost deterministic.
const maxWindowExchanges = 100

const previewRunes = 20

// Fallback assistant texts. A broken exchange still lands in the log as a
// visible reply instead of vanishing or crashing the session.
const (
	fallbackUnavailable = "Sorry, the assistant service is temporarily unavailable."
	fallbackNoAnswer    = "Sorry, I can't answer that."
)

// CompleterFor resolves the completion capability and model for the current
// settings snapshot. Injected so tests can substitute a stub.
type CompleterFor func(cfg *store.Settings) (provider.Completer, string, error)

// Exchange is the pair of messages appended by one successful send.
type Exchange struct {
	User      store.Message
	Assistant store.Message
}

// Engine is the completion orchestrator. Callers must serialize sends per
// contact (one in-flight Send per contact id); sends for different contacts
// are independent.
type Engine struct {
	store   *store.Store
	resolve CompleterFor
	status  *status.Tracker
	bus     *bus.Bus
	logger  *zap.Logger
}

// NewEngine creates a new orchestrator.
func NewEngine(st *store.Store, resolve CompleterFor, tracker *status.Tracker, b *bus.Bus, logger *zap.Logger) *Engine {
	return &Engine{
		store:   st,
		resolve: resolve,
		status:  tracker,
		bus:     b,
		logger:  logger,
	}
}

// Send executes one exchange for a contact. A whitespace-only utterance is a
// no-op returning (nil, nil): nothing is persisted and no provider call is
// made. Provider failures are absorbed into fallback assistant text; only
// persistence failures and unknown contacts surface as errors. The two new
// messages become visible only after the completion call resolves, in
// user-then-assistant order.
func (e *Engine) Send(ctx context.Context, contactID int64, text string) (*Exchange, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	contact, err := e.store.GetContact(contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, fmt.Errorf("send to contact %d: %w", contactID, store.ErrContactNotFound)
	}
	cfg, err := e.store.Settings()
	if err != nil {
		return nil, err
	}
	history, err := e.store.Messages(contactID)
	if err != nil {
		return nil, err
	}

	if err := e.status.Begin(contactID); err != nil {
		return nil, err
	}

	userMsg := store.NewMessage(store.RoleUser, text)
	reply, ok := e.complete(ctx, cfg, buildPrompt(contact.Persona, history, text))
	assistantMsg := store.NewMessage(store.RoleAssistant, reply)

	if err := e.store.AppendMessages(contactID, userMsg, assistantMsg); err != nil {
		e.status.Finish(contactID, false)
		return nil, err
	}
	if err := e.store.RecordExchange(contactID, preview(reply), time.Now().Format("15:04")); err != nil {
		e.status.Finish(contactID, false)
		return nil, err
	}
	e.status.Finish(contactID, ok)

	e.bus.Publish(bus.Event{
		Kind:      "message.appended",
		Timestamp: time.Now(),
		Payload:   map[string]any{"contact_id": contactID, "ok": ok},
	})
	e.logger.Info("exchange recorded",
		zap.Int64("contact_id", contactID),
		zap.Bool("completed", ok),
		zap.Int("history_len", len(history)))

	return &Exchange{User: userMsg, Assistant: assistantMsg}, nil
}

// complete runs the provider call and maps every failure mode to fallback
// text. The bool reports whether the provider genuinely answered.
func (e *Engine) complete(ctx context.Context, cfg *store.Settings, req provider.Request) (string, bool) {
	completer, model, err := e.resolve(cfg)
	if err != nil {
		e.logger.Warn("provider unavailable", zap.String("provider", cfg.Provider), zap.Error(err))
		return fallbackUnavailable, false
	}
	req.Model = model

	reply, err := completer.Complete(ctx, req)
	if err != nil {
		e.logger.Warn("completion failed", zap.String("provider", cfg.Provider), zap.Error(err))
		if errors.Is(err, provider.ErrNoChoices) {
			return fallbackNoAnswer, false
		}
		return fallbackUnavailable, false
	}
	return reply, true
}

// buildPrompt assembles the ordered provider messages: optional persona as a
// leading system entry, the windowed history, then the new utterance.
func buildPrompt(persona string, history []store.Message, text string) provider.Request {
	window := history
	if limit := maxWindowExchanges * 2; len(window) > limit {
		window = window[len(window)-limit:]
	}

	msgs := make([]provider.Message, 0, len(window)+2)
	if persona != "" {
		msgs = append(msgs, provider.Message{Role: provider.RoleSystem, Content: persona})
	}
	for _, m := range window {
		role := provider.RoleAssistant
		if m.Role == store.RoleUser {
			role = provider.RoleUser
		}
		msgs = append(msgs, provider.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, provider.Message{Role: provider.RoleUser, Content: text})

	return provider.Request{Messages: msgs}
}

// preview truncates assistant text for the roster's last-message field.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes]) + "..."
}
