package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 14, 8, 0, 0, 0, time.Local)

func TestFake_AfterFuncFiresWhenDue(t *testing.T) {
	c := NewFake(epoch)

	var firedAt time.Time

	c.AfterFunc(5*time.Second, func() { firedAt = c.Now() })

	c.Advance(4 * time.Second)
	assert.True(t, firedAt.IsZero())
	assert.Equal(t, 1, c.Pending())

	c.Advance(time.Second)
	assert.Equal(t, epoch.Add(5*time.Second), firedAt)
	assert.Equal(t, 0, c.Pending())
}

func TestFake_StoppedTimerNeverFires(t *testing.T) {
	c := NewFake(epoch)

	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(time.Hour)
	assert.False(t, fired)
}

func TestFake_FiresInDueOrder(t *testing.T) {
	c := NewFake(epoch)

	var order []string

	c.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	c.AfterFunc(1*time.Second, func() { order = append(order, "a") })
	c.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	c.AfterFunc(2*time.Second, func() { order = append(order, "b2") })

	c.Advance(10 * time.Second)
	assert.Equal(t, []string{"a", "b", "b2", "c"}, order)
	assert.Equal(t, epoch.Add(10*time.Second), c.Now())
}

func TestFake_CallbackCanReschedule(t *testing.T) {
	c := NewFake(epoch)

	count := 0

	var again func()
	again = func() {
		count++
		if count < 3 {
			c.AfterFunc(time.Second, again)
		}
	}

	c.AfterFunc(time.Second, again)
	c.Advance(10 * time.Second)

	assert.Equal(t, 3, count)
}

func TestFake_TickerDropsWhenFull(t *testing.T) {
	c := NewFake(epoch)
	tk := c.NewTicker(time.Second)

	c.Advance(3 * time.Second)

	select {
	case got := <-tk.C():
		assert.Equal(t, epoch.Add(time.Second), got)
	default:
		require.Fail(t, "expected a tick")
	}

	select {
	case <-tk.C():
		require.Fail(t, "ticks beyond capacity should be dropped")
	default:
	}

	tk.Stop()
	c.Advance(3 * time.Second)

	select {
	case <-tk.C():
		require.Fail(t, "stopped ticker delivered a tick")
	default:
	}
}

func TestReal_NowIsCurrent(t *testing.T) {
	before := time.Now()
	got := Real().Now()

	assert.False(t, got.Before(before))
}
