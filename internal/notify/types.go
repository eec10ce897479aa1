// Package notify fans alarm events out to external senders such as a
// webhook.
package notify

import (
	"context"
	"time"

	"github.com/inovacc/clockr/internal/alarm"
)

// Event is one alarm transition.
type Event struct {
	// Type is the transition (armed, fired, dismissed, cancelled)
	Type string

	// Status is the scheduler status right after the transition
	Status alarm.Status

	// Timestamp is when the transition was observed
	Timestamp time.Time
}

// Sender is the interface for notification senders.
type Sender interface {
	// Send delivers a notification for the given event.
	Send(ctx context.Context, event *Event) error

	// Name returns the sender's name for logging purposes.
	Name() string
}

// Event types.
const (
	EventArmed     = "armed"
	EventFired     = "fired"
	EventDismissed = "dismissed"
	EventCancelled = "cancelled"
)

// NewEvent creates an event of the given type for st.
func NewEvent(eventType string, st alarm.Status, at time.Time) *Event {
	return &Event{
		Type:      eventType,
		Status:    st,
		Timestamp: at,
	}
}

// Transition names the change from prev to next, if any.
func Transition(prev, next alarm.Status) (string, bool) {
	switch {
	case next.Ringing && !prev.Ringing:
		return EventFired, true
	case next.State == alarm.Armed && (prev.State != alarm.Armed || prev.ID != next.ID):
		// a new alarm, even when it silenced a ringing one
		return EventArmed, true
	case prev.Ringing && !next.Ringing && prev.State == next.State:
		return EventDismissed, true
	case prev.State == alarm.Armed && next.State == alarm.Idle:
		return EventCancelled, true
	}

	return "", false
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc struct {
	name string
	fn   func(ctx context.Context, event *Event) error
}

// NewSenderFunc wraps fn as a Sender called name.
func NewSenderFunc(name string, fn func(ctx context.Context, event *Event) error) SenderFunc {
	return SenderFunc{name: name, fn: fn}
}

func (s SenderFunc) Send(ctx context.Context, event *Event) error {
	return s.fn(ctx, event)
}

func (s SenderFunc) Name() string {
	return s.name
}
