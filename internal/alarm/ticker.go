package alarm

import (
	"context"
	"strings"
	"time"
)

// CheckInterval is the period of the backstop check.
const CheckInterval = time.Second

// Check compares now (as HH:MM:SS) with the armed HH:MM by prefix and, on a
// match, fires the occurrence the scheduler is waiting for. It reports
// whether it fired. An occurrence already fired by the one-shot callback is
// no longer pending, so the rest of the matching minute is a no-op.
func (s *Scheduler) Check(now time.Time) bool {
	s.mu.Lock()

	if s.state != Armed || !strings.HasPrefix(now.Format("15:04:05"), s.timeOfDay) {
		s.mu.Unlock()

		return false
	}

	occurrence := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !occurrence.Equal(s.next) {
		s.mu.Unlock()

		return false
	}

	st := s.ringLocked(occurrence, "ticker")
	s.mu.Unlock()

	s.notify(st)

	return true
}

// Watch runs Check every period on the scheduler's clock until ctx is done.
func (s *Scheduler) Watch(ctx context.Context, period time.Duration) error {
	if period <= 0 {
		period = CheckInterval
	}

	t := s.clock.NewTicker(period)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C():
			s.Check(now)
		}
	}
}
