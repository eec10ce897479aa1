package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/inovacc/clockr/internal/alarm"
)

// SendTimeout bounds a single Send call.
const SendTimeout = 30 * time.Second

// Dispatcher routes events to registered senders.
type Dispatcher struct {
	senders []Sender
	mu      sync.RWMutex
	async   bool
	logger  *slog.Logger
	wg      sync.WaitGroup

	// last status seen by Observe
	lastMu sync.Mutex
	last   alarm.Status
}

// NewDispatcher creates a new notification dispatcher.
// If async is true, notifications are sent in goroutines.
func NewDispatcher(async bool, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		senders: make([]Sender, 0),
		async:   async,
		logger:  logger,
	}
}

// Register adds a sender to the dispatcher.
func (d *Dispatcher) Register(sender Sender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.senders = append(d.senders, sender)
}

// Observe compares st with the previous status and dispatches the matching
// event. It has the signature of an alarm change listener. Snapshots older
// than the last one observed are dropped.
func (d *Dispatcher) Observe(st alarm.Status) {
	d.lastMu.Lock()
	if st.Seq != 0 && st.Seq <= d.last.Seq {
		d.lastMu.Unlock()

		return
	}

	prev := d.last
	d.last = st
	d.lastMu.Unlock()

	eventType, ok := Transition(prev, st)
	if !ok {
		return
	}

	d.Dispatch(context.Background(), NewEvent(eventType, st, time.Now()))
}

// Dispatch sends an event to all registered senders.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) {
	d.mu.RLock()
	senders := make([]Sender, len(d.senders))
	copy(senders, d.senders)
	d.mu.RUnlock()

	if len(senders) == 0 {
		return
	}

	if d.async {
		for _, sender := range senders {
			d.wg.Add(1)

			go func() {
				defer d.wg.Done()
				d.sendWithRecover(ctx, sender, event)
			}()
		}
	} else {
		for _, sender := range senders {
			d.sendWithRecover(ctx, sender, event)
		}
	}
}

// Wait blocks until every asynchronous send has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// sendWithRecover sends an event and recovers from panics.
func (d *Dispatcher) sendWithRecover(ctx context.Context, sender Sender, event *Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notify: panic in sender", "sender", sender.Name(), "panic", r)
		}
	}()

	sendCtx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()

	if err := sender.Send(sendCtx, event); err != nil {
		d.logger.Warn("notify: send failed", "sender", sender.Name(), "event", event.Type, "error", err)

		return
	}

	d.logger.Debug("notify: sent", "sender", sender.Name(), "event", event.Type)
}

// HasSenders returns true if any senders are registered.
func (d *Dispatcher) HasSenders() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.senders) > 0
}

// Senders returns a copy of the registered senders.
func (d *Dispatcher) Senders() []Sender {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]Sender, len(d.senders))
	copy(result, d.senders)
	return result
}
