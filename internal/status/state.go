package status

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rmarques/confab/internal/bus"
)

// State represents the send state of one contact's conversation.
type State string

const (
	Idle      State = "IDLE"
	Sending   State = "SENDING"
	Fulfilled State = "FULFILLED"
	Failed    State = "FAILED"
)

// validTransitions defines allowed state transitions.
var validTransitions = map[State][]State{
	Idle:      {Sending},
	Sending:   {Fulfilled, Failed},
	Fulfilled: {Idle},
	Failed:    {Idle},
}

// Tracker tracks and enforces per-contact send state. One completion request
// may be in flight per contact at a time; different contacts are independent.
type Tracker struct {
	mu     sync.Mutex
	states map[int64]State
	bus    *bus.Bus
}

// NewTracker creates a tracker with every contact implicitly Idle.
func NewTracker(b *bus.Bus) *Tracker {
	return &Tracker{
		states: make(map[int64]State),
		bus:    b,
	}
}

// Current returns the send state for a contact.
func (t *Tracker) Current(contactID int64) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current(contactID)
}

func (t *Tracker) current(contactID int64) State {
	if s, ok := t.states[contactID]; ok {
		return s
	}
	return Idle
}

// Begin moves a contact into Sending. Fails while a send is already in
// flight for that contact.
func (t *Tracker) Begin(contactID int64) error {
	return t.Transition(contactID, Sending)
}

// Finish resolves the in-flight send and returns the contact to Idle.
func (t *Tracker) Finish(contactID int64, ok bool) {
	to := Fulfilled
	if !ok {
		to = Failed
	}
	_ = t.Transition(contactID, to)
	_ = t.Transition(contactID, Idle)
}

// Transition attempts to move a contact to a new state. Returns error if the
// transition is invalid.
func (t *Tracker) Transition(contactID int64, to State) error {
	t.mu.Lock()
	from := t.current(contactID)
	if !slices.Contains(validTransitions[from], to) {
		t.mu.Unlock()
		return fmt.Errorf("invalid transition from %s to %s for contact %d", from, to, contactID)
	}
	if to == Idle {
		delete(t.states, contactID)
	} else {
		t.states[contactID] = to
	}
	t.mu.Unlock()

	if t.bus != nil {
		t.bus.Publish(bus.Event{
			Kind:      "chat.status_changed",
			Timestamp: time.Now(),
			Payload: StatusChange{
				ContactID: contactID,
				From:      from,
				To:        to,
			},
		})
	}
	return nil
}

// StatusChange is the payload for status change events.
type StatusChange struct {
	ContactID int64
	From      State
	To        State
}
