// Package alarm implements the wall-clock alarm: a two-state scheduler
// (Idle, Armed) firing a one-shot callback at the next occurrence of a time
// of day, with a once-per-second check as a backstop.
//
// The scheduler is the single owner of firing. Both trigger paths ask it to
// fire the occurrence it is waiting for, so each occurrence sounds once.
package alarm

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/clockr/internal/clock"
	"github.com/inovacc/clockr/internal/sound"
)

const (
	// TimeOfDayLayout is the accepted alarm input format.
	TimeOfDayLayout = "15:04"

	LabelSet    = "Set Alarm"
	LabelCancel = "Cancel Alarm"

	MessageRinging = "ALARM!"
)

// ErrInvalidTime is returned when the alarm input cannot be parsed as HH:MM.
var ErrInvalidTime = errors.New("invalid alarm time")

// Status is a snapshot of the scheduler for display.
type Status struct {
	ID        string
	State     State
	TimeOfDay string
	Next      time.Time
	Ringing   bool
	Message   string

	// Seq increases with every change; listeners use it to drop stale
	// snapshots delivered out of order.
	Seq uint64
}

// Label is the text of the set/cancel control.
func (s Status) Label() string {
	if s.State == Armed {
		return LabelCancel
	}

	return LabelSet
}

// Scheduler owns the alarm configuration and its pending callback.
type Scheduler struct {
	mu       sync.Mutex
	clock    clock.Clock
	sound    sound.Player
	policy   RingPolicy
	logger   *slog.Logger
	onChange func(Status)

	id        string
	state     State
	hour      int
	minute    int
	timeOfDay string
	next      time.Time
	pending   clock.Timer
	gen       uint64
	ringing   bool
	message   string
	seq       uint64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

func WithSound(p sound.Player) Option {
	return func(s *Scheduler) { s.sound = p }
}

func WithPolicy(p RingPolicy) Option {
	return func(s *Scheduler) { s.policy = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithOnChange registers fn to be called after every transition and every
// firing. fn runs without the scheduler lock held, on whichever goroutine
// caused the change; firings from the one-shot callback arrive on the
// clock's goroutine.
func WithOnChange(fn func(Status)) Option {
	return func(s *Scheduler) { s.onChange = fn }
}

// New returns an Idle scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:  clock.Real(),
		sound:  sound.Nop{},
		policy: PolicyRearm,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ParseTimeOfDay parses an HH:MM input.
func ParseTimeOfDay(value string) (hour, minute int, err error) {
	t, err := time.Parse(TimeOfDayLayout, value)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w: %w", value, ErrInvalidTime, err)
	}

	return t.Hour(), t.Minute(), nil
}

// NextOccurrence returns today at hour:minute in now's location, or the same
// time on the following day when that is not after now.
func NextOccurrence(now time.Time, hour, minute int) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}

	return target
}

// Arm schedules the alarm for the next occurrence of value (HH:MM).
// Arming while Armed replaces the previous alarm.
func (s *Scheduler) Arm(value string) (Status, error) {
	hour, minute, err := ParseTimeOfDay(value)
	if err != nil {
		return s.Status(), err
	}

	s.mu.Lock()

	s.cancelPendingLocked()
	s.silenceLocked()

	s.id = uuid.NewString()
	s.state = Armed
	s.hour, s.minute = hour, minute
	s.timeOfDay = fmt.Sprintf("%02d:%02d", hour, minute)
	s.message = "Alarm set for " + s.timeOfDay

	now := s.clock.Now()
	s.scheduleLocked(now)

	st := s.changedLocked()
	s.mu.Unlock()

	s.logger.Info("alarm armed",
		slog.String("id", st.ID),
		slog.String("time", st.TimeOfDay),
		slog.Time("target", st.Next),
		slog.Duration("in", st.Next.Sub(now)),
	)
	s.notify(st)

	return st, nil
}

// Cancel removes the pending alarm, silences the sound and clears the
// display. The scheduler is Idle afterwards.
func (s *Scheduler) Cancel() Status {
	s.mu.Lock()

	wasArmed := s.state == Armed
	id := s.id

	s.cancelPendingLocked()
	s.silenceLocked()

	s.state = Idle
	s.timeOfDay = ""
	s.next = time.Time{}
	s.message = ""

	st := s.changedLocked()
	s.mu.Unlock()

	if wasArmed {
		s.logger.Info("alarm cancelled", slog.String("id", id))
	}

	s.notify(st)

	return st
}

// Toggle is the single set/cancel control: it cancels an armed alarm and
// arms an idle one.
func (s *Scheduler) Toggle(value string) (Status, error) {
	if s.Status().State == Armed {
		return s.Cancel(), nil
	}

	return s.Arm(value)
}

// Dismiss silences a ringing alarm without disarming it.
func (s *Scheduler) Dismiss() Status {
	s.mu.Lock()

	wasRinging := s.ringing
	s.silenceLocked()

	if s.state == Armed {
		s.message = "Alarm set for " + s.timeOfDay
	} else {
		s.message = ""
	}

	st := s.changedLocked()
	s.mu.Unlock()

	if wasRinging {
		s.logger.Info("alarm dismissed", slog.String("id", st.ID))
		s.notify(st)
	}

	return st
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.statusLocked()
}

func (s *Scheduler) statusLocked() Status {
	return Status{
		ID:        s.id,
		State:     s.state,
		TimeOfDay: s.timeOfDay,
		Next:      s.next,
		Ringing:   s.ringing,
		Message:   s.message,
		Seq:       s.seq,
	}
}

// changedLocked records a change and returns the new snapshot.
func (s *Scheduler) changedLocked() Status {
	s.seq++

	return s.statusLocked()
}

// scheduleLocked starts a one-shot callback for the first occurrence after from.
func (s *Scheduler) scheduleLocked(from time.Time) {
	now := s.clock.Now()
	target := NextOccurrence(from, s.hour, s.minute)

	s.gen++
	gen := s.gen
	s.next = target
	s.pending = s.clock.AfterFunc(target.Sub(now), func() {
		s.fire(gen, target)
	})
}

func (s *Scheduler) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}

	// A callback already running when Stop was called sees a stale generation.
	s.gen++
}

func (s *Scheduler) silenceLocked() {
	if err := s.sound.Pause(); err != nil {
		s.logger.Warn("failed to pause alarm sound", slog.String("error", err.Error()))
	}

	if err := s.sound.Rewind(); err != nil {
		s.logger.Warn("failed to rewind alarm sound", slog.String("error", err.Error()))
	}

	s.ringing = false
}

// fire is the one-shot callback.
func (s *Scheduler) fire(gen uint64, occurrence time.Time) {
	s.mu.Lock()

	if gen != s.gen || s.state != Armed {
		s.mu.Unlock()

		return
	}

	st := s.ringLocked(occurrence, "timer")
	s.mu.Unlock()

	s.notify(st)
}

// ringLocked performs the firing side effects for occurrence and applies
// the ring policy.
func (s *Scheduler) ringLocked(occurrence time.Time, source string) Status {
	s.ringing = true
	s.message = MessageRinging

	if err := s.sound.Play(); err != nil {
		s.logger.Warn("failed to play alarm sound", slog.String("error", err.Error()))
	}

	s.logger.Info("alarm fired",
		slog.String("id", s.id),
		slog.String("source", source),
		slog.Time("occurrence", occurrence),
		slog.String("policy", string(s.policy)),
	)

	switch s.policy {
	case PolicyDisarm:
		s.cancelPendingLocked()
		s.state = Idle
		s.timeOfDay = ""
		s.next = time.Time{}
	default:
		s.cancelPendingLocked()
		s.scheduleLocked(occurrence)
	}

	return s.changedLocked()
}

func (s *Scheduler) notify(st Status) {
	if s.onChange != nil {
		s.onChange(st)
	}
}
