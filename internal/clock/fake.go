package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a Clock whose time only moves when Advance or Set is called.
// AfterFunc callbacks run synchronously inside Advance, in due order, on
// the caller's goroutine. Ticker channels have capacity 1; ticks are
// dropped when the consumer falls behind.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	timers  []*fakeTimer
	tickers []*fakeTicker
}

// NewFake creates a Fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	t := &fakeTimer{clock: f, when: f.now.Add(d), fn: fn, seq: f.seq}
	f.timers = append(f.timers, t)

	return t
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTicker{clock: f, period: d, next: f.now.Add(d), ch: make(chan time.Time, 1)}
	f.tickers = append(f.tickers, t)

	return t
}

// Pending returns the number of AfterFunc callbacks that have neither fired
// nor been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.timers)
}

// Set jumps the clock to t, firing everything due on the way.
func (f *Fake) Set(t time.Time) {
	f.Advance(t.Sub(f.Now()))
}

// Advance moves the clock forward by d. Each due callback runs with Now
// reporting its scheduled time; ticks are delivered in the same pass.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()

		next := f.nextTimerLocked(target)
		if next == nil {
			f.deliverTicksLocked(target)
			f.now = target
			f.mu.Unlock()

			return
		}

		f.deliverTicksLocked(next.when)

		if next.when.After(f.now) {
			f.now = next.when
		}

		f.removeLocked(next)
		f.mu.Unlock()

		next.fn()
	}
}

func (f *Fake) nextTimerLocked(limit time.Time) *fakeTimer {
	due := make([]*fakeTimer, 0, len(f.timers))

	for _, t := range f.timers {
		if !t.when.After(limit) {
			due = append(due, t)
		}
	}

	if len(due) == 0 {
		return nil
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].when.Equal(due[j].when) {
			return due[i].seq < due[j].seq
		}

		return due[i].when.Before(due[j].when)
	})

	return due[0]
}

func (f *Fake) deliverTicksLocked(limit time.Time) {
	for _, t := range f.tickers {
		if t.stopped {
			continue
		}

		for !t.next.After(limit) {
			select {
			case t.ch <- t.next:
			default:
			}

			t.next = t.next.Add(t.period)
		}
	}
}

func (f *Fake) removeLocked(t *fakeTimer) bool {
	for i, pending := range f.timers {
		if pending == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)

			return true
		}
	}

	return false
}

type fakeTimer struct {
	clock *Fake
	when  time.Time
	fn    func()
	seq   int
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	return t.clock.removeLocked(t)
}

type fakeTicker struct {
	clock   *Fake
	period  time.Duration
	next    time.Time
	ch      chan time.Time
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	t.stopped = true
}
