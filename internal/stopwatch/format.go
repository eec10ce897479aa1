package stopwatch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidElapsed is returned by ParseElapsed for text not produced by Format.
var ErrInvalidElapsed = errors.New("invalid elapsed time")

// maxHours is the largest hour field whose total still fits a time.Duration.
const maxHours = int64(math.MaxInt64/time.Hour) - 1

// Format renders d as HH:MM:SS.cc. Hours are not capped: 100 hours and more
// simply widen the field. cc is hundredths of a second, truncated.
// Negative durations render as zero.
func Format(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}

	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000
	seconds := (ms % 60000) / 1000
	hundredths := (ms % 1000) / 10

	return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, seconds, hundredths)
}

// ParseElapsed reverses Format at hundredth-of-a-second precision.
func ParseElapsed(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidElapsed)
	}

	secs, hundredths, ok := strings.Cut(parts[2], ".")
	if !ok || len(hundredths) != 2 || len(parts[1]) != 2 || len(secs) != 2 || len(parts[0]) < 2 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidElapsed)
	}

	fields := [4]string{parts[0], parts[1], secs, hundredths}
	limits := [4]int64{-1, 60, 60, 100}

	var values [4]int64

	for i, field := range fields {
		v, err := strconv.ParseUint(field, 10, 63)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", s, ErrInvalidElapsed)
		}

		if limits[i] > 0 && int64(v) >= limits[i] {
			return 0, fmt.Errorf("%q: field %q out of range: %w", s, field, ErrInvalidElapsed)
		}

		values[i] = int64(v)
	}

	if values[0] > maxHours {
		return 0, fmt.Errorf("%q: hours out of range: %w", s, ErrInvalidElapsed)
	}

	return time.Duration(values[0])*time.Hour +
		time.Duration(values[1])*time.Minute +
		time.Duration(values[2])*time.Second +
		time.Duration(values[3])*10*time.Millisecond, nil
}
