package bus

import "time"

// Event represents a domain event published on the bus.
//
// Kinds used across the app: contact.created, contact.updated,
// contact.deleted, message.appended, message.cleared, settings.saved,
// chat.status_changed.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
