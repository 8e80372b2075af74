// Package provider adapts external chat-completion services behind a single
// Completer interface. The orchestrator treats every provider as a black box
// that turns an ordered message list into assistant text.
package provider

import (
	"context"
	"errors"
)

// Wire roles for completion requests.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of an ordered completion prompt.
type Message struct {
	Role    string
	Content string
}

// Request is a provider-agnostic completion request.
type Request struct {
	Model    string
	Messages []Message
}

// ErrNoChoices is returned when a provider answers successfully but the
// response carries no usable completion text.
var ErrNoChoices = errors.New("completion response contained no choices")

// Completer executes a single chat completion. Implementations do not retry;
// timeout policy belongs to the underlying client.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
