package api

import (
	"context"

	"github.com/rmarques/confab/internal/chat"
)

// ChatService exposes the send operation to the UI layer.
type ChatService struct {
	engine *chat.Engine
}

// NewChatService creates a new chat service over the orchestrator.
func NewChatService(engine *chat.Engine) *ChatService {
	return &ChatService{engine: engine}
}

// Send runs one exchange. A whitespace-only utterance yields (nil, nil).
// Callers serialize sends per contact; see chat.Engine.
func (s *ChatService) Send(ctx context.Context, contactID int64, text string) (*chat.Exchange, error) {
	return s.engine.Send(ctx, contactID, text)
}
