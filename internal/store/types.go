package store

import (
	"time"

	"github.com/google/uuid"
)

// Message roles. These are also the wire roles sent to completion providers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Contact is one roster entry. JSON tags mirror the on-disk roster document.
type Contact struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Persona string `json:"persona"`
	Avatar  string `json:"avatar,omitempty"`
	LastMsg string `json:"lastMsg"`
	Time    string `json:"time"`
	Unread  int    `json:"unread"`
}

// Message is one entry of a contact's conversation log. Immutable once
// appended; the log only ever grows or is truncated wholesale.
type Message struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Time    string `json:"time"`
}

// Settings is the singleton assistant configuration document (config.json).
// Maps are keyed by provider name.
type Settings struct {
	Provider        string            `json:"apiProvider"`
	APIKeys         map[string]string `json:"apiKeys"`
	Models          map[string]string `json:"models"`
	UseCustomModels map[string]bool   `json:"useCustomModels"`
}

// NewMessage builds a message stamped with the current local clock time.
func NewMessage(role, content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		Time:    time.Now().Format("15:04"),
	}
}
