// Package tabs keeps track of which content pane is visible. Exactly one
// pane is active at any time; activating a pane deactivates all others.
package tabs

import (
	"errors"
	"fmt"
)

// Pane identifiers shared by the tab buttons and the panes they show.
const (
	Stopwatch = "stopwatch"
	LapTimer  = "laptimer"
	Alarm     = "alarm"
)

// ErrUnknownTab is returned when a button references a pane that is not
// part of the layout.
var ErrUnknownTab = errors.New("unknown tab")

// Controller holds the fixed set of panes and the active one.
type Controller struct {
	ids    []string
	active int
}

// New creates a controller over ids with initial marked active.
func New(initial string, ids ...string) (*Controller, error) {
	c := &Controller{ids: append([]string(nil), ids...)}

	idx := c.indexOf(initial)
	if idx < 0 {
		return nil, fmt.Errorf("initial pane %q: %w", initial, ErrUnknownTab)
	}

	c.active = idx

	return c, nil
}

// Default returns the stopwatch / lap timer / alarm layout.
func Default(initial string) (*Controller, error) {
	return New(initial, Stopwatch, LapTimer, Alarm)
}

// Activate shows the pane identified by id and hides every other one.
// The active pane is left unchanged when id is unknown.
func (c *Controller) Activate(id string) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("activate %q: %w", id, ErrUnknownTab)
	}

	c.active = idx

	return nil
}

// Next activates the pane after the current one, wrapping around.
func (c *Controller) Next() string {
	c.active = (c.active + 1) % len(c.ids)

	return c.Active()
}

// Prev activates the pane before the current one, wrapping around.
func (c *Controller) Prev() string {
	c.active = (c.active - 1 + len(c.ids)) % len(c.ids)

	return c.Active()
}

// Active returns the id of the visible pane.
func (c *Controller) Active() string {
	return c.ids[c.active]
}

func (c *Controller) IsActive(id string) bool {
	return c.Active() == id
}

// IDs returns the pane ids in layout order.
func (c *Controller) IDs() []string {
	return append([]string(nil), c.ids...)
}

func (c *Controller) indexOf(id string) int {
	for i, candidate := range c.ids {
		if candidate == id {
			return i
		}
	}

	return -1
}
