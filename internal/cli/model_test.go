package cli

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/clockr/internal/alarm"
	"github.com/inovacc/clockr/internal/clock"
	"github.com/inovacc/clockr/internal/sound"
	"github.com/inovacc/clockr/internal/stopwatch"
	"github.com/inovacc/clockr/internal/tabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 10, 17, 7, 59, 0, 0, time.Local)

func newTestModel(t *testing.T, shared bool) (Model, *clock.Fake) {
	t.Helper()

	c := clock.NewFake(start)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tc, err := tabs.Default(tabs.Stopwatch)
	require.NoError(t, err)

	sw, lt := stopwatch.Surfaces(tabs.Stopwatch, tabs.LapTimer, shared)

	m := New(Options{
		Clock:     c,
		Tabs:      tc,
		Stopwatch: sw,
		LapTimer:  lt,
		Scheduler: alarm.New(alarm.WithClock(c), alarm.WithSound(sound.Nop{}), alarm.WithLogger(logger)),
		Logger:    logger,
	})

	return m, c
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)

	next, ok := updated.(Model)
	require.True(t, ok)

	return next, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()

	for _, k := range keys {
		m, _ = send(t, m, keyMsg(k))
	}

	return m
}

func tick(t *testing.T, m Model, s stopwatch.Surface, n int) Model {
	t.Helper()

	for range n {
		m, _ = send(t, m, timerTickMsg{surface: s.ID, gen: s.Engine.Generation()})
	}

	return m
}

func TestModel_StartStop(t *testing.T) {
	m, _ := newTestModel(t, false)

	m, cmd := send(t, m, keyMsg(" "))
	require.NotNil(t, cmd, "starting schedules the first tick")
	assert.True(t, m.stopwatch.Engine.Running())
	assert.Contains(t, m.View(), "[ Stop ]")

	m = tick(t, m, m.stopwatch, 3)
	assert.Contains(t, m.View(), "00:00:00.03")

	stale := m.stopwatch.Engine.Generation()

	m, cmd = send(t, m, keyMsg(" "))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "[ Start ]")

	m, cmd = send(t, m, timerTickMsg{surface: tabs.Stopwatch, gen: stale})
	assert.Nil(t, cmd, "tick from a stopped run is dropped")
	assert.Equal(t, 30*time.Millisecond, m.stopwatch.Engine.Elapsed())
}

func TestModel_LapTimer(t *testing.T) {
	m, _ := newTestModel(t, false)

	m = press(t, m, "2", " ")
	require.True(t, m.tabs.IsActive(tabs.LapTimer))
	require.True(t, m.lapTimer.Engine.Running())

	for range 3 {
		m = tick(t, m, m.lapTimer, 10)
		m = press(t, m, "l")
	}

	items := m.laps.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "Lap 3  00:00:00.30", items[0].(lapItem).String())
	assert.Equal(t, "Lap 1  00:00:00.10", items[2].(lapItem).String())
	assert.Contains(t, m.View(), "Lap 3")

	m = press(t, m, "r")
	assert.Empty(t, m.laps.Items())
	assert.Empty(t, m.lapTimer.Engine.Laps())
	assert.Equal(t, time.Duration(0), m.lapTimer.Engine.Elapsed())
	assert.Contains(t, m.View(), "No laps recorded")
	assert.Contains(t, m.View(), "[ Start ]")
}

func TestModel_LapIgnoredWhenStoppedOrOnStopwatch(t *testing.T) {
	m, _ := newTestModel(t, false)

	m = press(t, m, " ", "l")
	assert.Empty(t, m.lapTimer.Engine.Laps())

	m = press(t, m, "2", "l")
	assert.Empty(t, m.lapTimer.Engine.Laps(), "lap timer is not running")
}

func TestModel_SharedCounter(t *testing.T) {
	m, _ := newTestModel(t, true)

	m = press(t, m, " ")
	m = tick(t, m, m.stopwatch, 5)
	m = press(t, m, "2")

	assert.Contains(t, m.View(), "00:00:00.05")
	assert.Contains(t, m.View(), "[ Stop ]")

	m = press(t, m, "l")
	assert.Len(t, m.lapTimer.Engine.Laps(), 1)

	m = press(t, m, "1", "r")
	assert.Len(t, m.lapTimer.Engine.Laps(), 1, "stopwatch reset keeps laps")
	assert.False(t, m.lapTimer.Engine.Running())
}

func TestModel_TabNavigation(t *testing.T) {
	m, _ := newTestModel(t, false)

	m = press(t, m, "tab")
	assert.Equal(t, tabs.LapTimer, m.tabs.Active())

	m = press(t, m, "tab")
	assert.Equal(t, tabs.Alarm, m.tabs.Active())
	assert.True(t, m.input.Focused())

	// digits are alarm input on the alarm pane, not tab shortcuts
	m = press(t, m, "1")
	assert.Equal(t, tabs.Alarm, m.tabs.Active())
	assert.Equal(t, "1", m.input.Value())

	m = press(t, m, "shift+tab")
	assert.Equal(t, tabs.LapTimer, m.tabs.Active())
	assert.False(t, m.input.Focused())

	m = press(t, m, "3")
	assert.Equal(t, tabs.Alarm, m.tabs.Active())
}

func TestModel_AlarmArmFireCancel(t *testing.T) {
	m, c := newTestModel(t, false)

	m = press(t, m, "3", "0", "8", ":", "0", "0", "enter")
	require.NoError(t, m.alarmErr)

	st := m.scheduler.Status()
	require.Equal(t, alarm.Armed, st.State)
	assert.Equal(t, "08:00", st.TimeOfDay)
	assert.Contains(t, m.View(), "[ Cancel Alarm ]")
	assert.Contains(t, m.View(), "Alarm set for 08:00")

	c.Advance(time.Minute)
	m, _ = send(t, m, alarmChangedMsg(m.scheduler.Status()))
	assert.True(t, m.scheduler.Status().Ringing)
	assert.Contains(t, m.View(), "ALARM!")

	m = press(t, m, "enter")
	assert.Equal(t, alarm.Idle, m.scheduler.Status().State)
	assert.Contains(t, m.View(), "[ Set Alarm ]")
	assert.NotContains(t, m.View(), "ALARM!")
	assert.Empty(t, m.input.Value())
}

func TestModel_AlarmInvalidInput(t *testing.T) {
	m, _ := newTestModel(t, false)

	m = press(t, m, "3", "9", "9", "enter")
	assert.ErrorIs(t, m.alarmErr, alarm.ErrInvalidTime)
	assert.Equal(t, alarm.Idle, m.scheduler.Status().State)

	// letters other than commands never reach the input
	m = press(t, m, "x")
	assert.Equal(t, "99", m.input.Value())
}

func TestModel_ClockTick(t *testing.T) {
	m, c := newTestModel(t, false)

	c.Advance(90 * time.Second)

	m, cmd := send(t, m, clockTickMsg(c.Now()))
	assert.NotNil(t, cmd, "clock keeps ticking")
	assert.Contains(t, m.View(), "08:00:30")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, false)

	m, cmd := send(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
}

func TestRelay_ForwardWithoutProgram(t *testing.T) {
	var r Relay

	assert.NotPanics(t, func() { r.Forward(alarm.Status{}) })
}

func TestIsTimeInput(t *testing.T) {
	assert.True(t, isTimeInput(keyMsg("0")))
	assert.True(t, isTimeInput(keyMsg(":")))
	assert.True(t, isTimeInput(keyMsg("backspace")))
	assert.False(t, isTimeInput(keyMsg("d")))
	assert.False(t, isTimeInput(keyMsg("enter")))
}
