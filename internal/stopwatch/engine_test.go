package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_StartStopKeepsElapsed(t *testing.T) {
	e := New()

	gen := e.StartStop()
	require.True(t, e.Running())
	assert.Equal(t, LabelStop, e.Label())

	for range 25 {
		require.True(t, e.Tick(gen))
	}

	atStop := e.Elapsed()
	e.StartStop()

	assert.False(t, e.Running())
	assert.Equal(t, LabelStart, e.Label())
	assert.Equal(t, 250*time.Millisecond, atStop)
	assert.Equal(t, atStop, e.Elapsed())
}

func TestEngine_ImmediateStop(t *testing.T) {
	e := New()

	e.StartStop()
	e.StartStop()

	assert.Equal(t, time.Duration(0), e.Elapsed())
	assert.Equal(t, "Start", e.Label())
}

func TestEngine_StaleTicksRejected(t *testing.T) {
	e := New()

	first := e.StartStop()
	e.StartStop()
	second := e.StartStop()

	assert.NotEqual(t, first, second)
	assert.False(t, e.Tick(first), "tick from a cancelled run must not count")
	assert.True(t, e.Tick(second))
	assert.Equal(t, DefaultInterval, e.Elapsed())

	e.Reset()
	assert.False(t, e.Tick(second), "reset cancels the active run")
	assert.Equal(t, time.Duration(0), e.Elapsed())
}

func TestEngine_WithInterval(t *testing.T) {
	e := New(WithInterval(time.Second), WithInterval(-1))
	assert.Equal(t, time.Second, e.Interval())

	gen := e.StartStop()
	e.Tick(gen)
	assert.Equal(t, "00:00:01.00", e.Display())
}

func TestEngine_Laps(t *testing.T) {
	e := New()

	_, ok := e.Lap()
	assert.False(t, ok, "lap requires a running engine")

	gen := e.StartStop()

	const n = 5
	for i := range n {
		e.Tick(gen)

		lap, ok := e.Lap()
		require.True(t, ok)
		assert.Equal(t, i+1, lap.Index)
	}

	laps := e.Laps()
	require.Len(t, laps, n)

	for i, lap := range laps {
		assert.Equal(t, i+1, lap.Index)
		assert.Equal(t, time.Duration(i+1)*DefaultInterval, lap.Elapsed)
	}

	newest := e.LapsNewestFirst()
	assert.Equal(t, n, newest[0].Index)
	assert.Equal(t, 1, newest[n-1].Index)

	// display order must not disturb the stored order
	assert.Equal(t, 1, e.Laps()[0].Index)
}

func TestSurface_ResetClearsLapsOnlyOnLapSurface(t *testing.T) {
	sw, lt := Surfaces("stopwatch", "laptimer", true)
	require.Same(t, sw.Engine, lt.Engine)

	gen := lt.StartStop()
	lt.Engine.Tick(gen)
	lt.Lap()
	lt.Lap()

	_, ok := sw.Lap()
	assert.False(t, ok, "stopwatch surface cannot record laps")

	sw.Reset()
	assert.Equal(t, time.Duration(0), lt.Engine.Elapsed())
	assert.Len(t, lt.Engine.Laps(), 2)

	lt.Reset()
	assert.Empty(t, lt.Engine.Laps())
	assert.False(t, lt.Engine.Running())
	assert.Equal(t, LabelStart, lt.Engine.Label())
}

func TestSurfaces_Independent(t *testing.T) {
	sw, lt := Surfaces("stopwatch", "laptimer", false)
	require.NotSame(t, sw.Engine, lt.Engine)

	gen := sw.StartStop()
	sw.Engine.Tick(gen)

	assert.Equal(t, DefaultInterval, sw.Engine.Elapsed())
	assert.Equal(t, time.Duration(0), lt.Engine.Elapsed())
	assert.False(t, lt.Engine.Running())
}
