// Package stopwatch implements the elapsed-time engine behind the stopwatch
// and lap-timer views.
//
// The engine never schedules anything itself. Starting it opens a tick
// generation; the caller schedules repeating callbacks stamped with that
// generation and feeds them back through Tick. Stopping or resetting closes
// the generation, so a late callback from an earlier run is ignored. This
// keeps at most one live repeating interval per engine no matter how the
// callbacks are delivered.
package stopwatch

import (
	"slices"
	"time"
)

// DefaultInterval is the logical tick granularity.
const DefaultInterval = 10 * time.Millisecond

// Control labels for the start/stop affordance.
const (
	LabelStart = "Start"
	LabelStop  = "Stop"
)

// Lap is a snapshot of the elapsed time taken while running.
type Lap struct {
	Index   int
	Elapsed time.Duration
}

// Engine owns one elapsed counter and its lap sequence.
type Engine struct {
	interval time.Duration
	elapsed  time.Duration
	running  bool
	gen      uint64
	laps     []Lap
}

// Option configures an Engine.
type Option func(*Engine)

// WithInterval overrides the tick granularity. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// New returns a stopped engine at zero.
func New(opts ...Option) *Engine {
	e := &Engine{interval: DefaultInterval}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// StartStop toggles the engine and returns the generation ticks must carry.
// The returned generation is only meaningful when the engine is now running.
func (e *Engine) StartStop() uint64 {
	if e.running {
		e.stop()

		return e.gen
	}

	e.gen++
	e.running = true

	return e.gen
}

// Tick advances the counter by one interval if gen belongs to the current
// run. It reports whether the tick was applied; callers stop rescheduling
// once it returns false.
func (e *Engine) Tick(gen uint64) bool {
	if !e.running || gen != e.gen {
		return false
	}

	e.elapsed += e.interval

	return true
}

// Reset stops the engine and zeroes the counter. Laps are kept; see ClearLaps.
func (e *Engine) Reset() {
	if e.running {
		e.stop()
	}

	e.elapsed = 0
}

// Lap records the current elapsed time. It does nothing unless the engine is
// running.
func (e *Engine) Lap() (Lap, bool) {
	if !e.running {
		return Lap{}, false
	}

	lap := Lap{Index: len(e.laps) + 1, Elapsed: e.elapsed}
	e.laps = append(e.laps, lap)

	return lap, true
}

// ClearLaps empties the lap sequence.
func (e *Engine) ClearLaps() {
	e.laps = nil
}

// Laps returns the laps in creation order.
func (e *Engine) Laps() []Lap {
	return slices.Clone(e.laps)
}

// LapsNewestFirst returns the laps in display order, most recent first.
func (e *Engine) LapsNewestFirst() []Lap {
	out := slices.Clone(e.laps)
	slices.Reverse(out)

	return out
}

// Elapsed is the counted time: ticks applied times the interval.
func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

// Running reports whether the engine accepts ticks.
func (e *Engine) Running() bool {
	return e.running
}

// Interval is the duration each accepted tick adds.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Generation identifies the current run.
func (e *Engine) Generation() uint64 {
	return e.gen
}

// Label is the text of the start/stop control.
func (e *Engine) Label() string {
	if e.running {
		return LabelStop
	}

	return LabelStart
}

// Display is the formatted elapsed time.
func (e *Engine) Display() string {
	return Format(e.elapsed)
}

func (e *Engine) stop() {
	e.running = false
	// Closing the generation invalidates ticks already in flight.
	e.gen++
}
