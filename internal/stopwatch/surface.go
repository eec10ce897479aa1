package stopwatch

// Surface is one view bound to an engine. Several surfaces may share an
// engine; only surfaces with Laps set can record and clear laps.
type Surface struct {
	ID     string
	Engine *Engine
	Laps   bool
}

// Surfaces builds the stopwatch and lap-timer surfaces. With shared set
// both views drive the same counter, otherwise each gets its own engine.
func Surfaces(stopwatchID, lapTimerID string, shared bool, opts ...Option) (Surface, Surface) {
	sw := New(opts...)

	lt := sw
	if !shared {
		lt = New(opts...)
	}

	return Surface{ID: stopwatchID, Engine: sw}, Surface{ID: lapTimerID, Engine: lt, Laps: true}
}

func (s Surface) StartStop() uint64 {
	return s.Engine.StartStop()
}

// Reset zeroes the counter and, on a lap surface, clears its laps.
func (s Surface) Reset() {
	s.Engine.Reset()

	if s.Laps {
		s.Engine.ClearLaps()
	}
}

// Lap records a lap on lap surfaces while running.
func (s Surface) Lap() (Lap, bool) {
	if !s.Laps {
		return Lap{}, false
	}

	return s.Engine.Lap()
}
