package alarm

import (
	"errors"
	"fmt"
	"strings"
)

// State of the scheduler.
type State int

const (
	Idle State = iota
	Armed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// RingPolicy decides what happens to an alarm once it has fired.
type RingPolicy string

const (
	// PolicyRearm keeps the alarm armed and schedules the same time of day
	// on the following day.
	PolicyRearm RingPolicy = "rearm"

	// PolicyDisarm returns the scheduler to Idle after firing. The sound
	// keeps playing until dismissed, cancelled or replaced by a new alarm.
	PolicyDisarm RingPolicy = "disarm"
)

// ErrInvalidPolicy is returned by ParsePolicy for unknown policy names.
var ErrInvalidPolicy = errors.New("invalid ring policy")

// ParsePolicy converts a configuration value to a RingPolicy.
func ParsePolicy(s string) (RingPolicy, error) {
	switch p := RingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyRearm, PolicyDisarm:
		return p, nil
	case "":
		return PolicyRearm, nil
	default:
		return "", fmt.Errorf("%q (want %s or %s): %w", s, PolicyRearm, PolicyDisarm, ErrInvalidPolicy)
	}
}
