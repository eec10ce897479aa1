// Package sound provides the playable alarm sound. A Player must tolerate
// repeated Play calls: every firing path may call it.
package sound

import (
	"io"
	"sync"
)

// Player is a rewindable sound resource.
type Player interface {
	Play() error
	Pause() error
	Rewind() error
	Close() error
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) Play() error   { return nil }
func (Nop) Pause() error  { return nil }
func (Nop) Rewind() error { return nil }
func (Nop) Close() error  { return nil }

// Bell rings the terminal bell once per ringing period.
type Bell struct {
	mu      sync.Mutex
	w       io.Writer
	ringing bool
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play writes BEL unless the bell is already ringing.
func (b *Bell) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ringing {
		return nil
	}

	b.ringing = true

	_, err := io.WriteString(b.w, "\a")

	return err
}

func (b *Bell) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ringing = false

	return nil
}

// Rewind has nothing to seek; it only re-arms the bell like Pause.
func (b *Bell) Rewind() error {
	return b.Pause()
}

func (b *Bell) Close() error {
	return nil
}
