package cli

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/clockr/internal/alarm"
	"github.com/inovacc/clockr/internal/clock"
	"github.com/inovacc/clockr/internal/stopwatch"
	"github.com/inovacc/clockr/internal/tabs"
)

// timerTickMsg is one tick of a running engine, stamped with the run that
// scheduled it.
type timerTickMsg struct {
	surface string
	gen     uint64
}

// clockTickMsg drives the wall clock and the alarm backstop.
type clockTickMsg time.Time

// Options wires the model to its collaborators.
type Options struct {
	Clock         clock.Clock
	Tabs          *tabs.Controller
	Stopwatch     stopwatch.Surface
	LapTimer      stopwatch.Surface
	Scheduler     *alarm.Scheduler
	CheckInterval time.Duration
	Logger        *slog.Logger
}

// Model is the root clockr program.
type Model struct {
	clock         clock.Clock
	tabs          *tabs.Controller
	stopwatch     stopwatch.Surface
	lapTimer      stopwatch.Surface
	scheduler     *alarm.Scheduler
	checkInterval time.Duration
	logger        *slog.Logger

	input    textinput.Model
	laps     list.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	now      time.Time
	alarmErr error
	quitting bool
}

// New builds the model. Missing optional collaborators get defaults.
func New(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.CheckInterval <= 0 {
		opts.CheckInterval = alarm.CheckInterval
	}

	ti := textinput.New()
	ti.Placeholder = "07:30"
	ti.CharLimit = 5
	ti.Width = 8
	ti.Prompt = "⏰ "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := Model{
		clock:         opts.Clock,
		tabs:          opts.Tabs,
		stopwatch:     opts.Stopwatch,
		lapTimer:      opts.LapTimer,
		scheduler:     opts.Scheduler,
		checkInterval: opts.CheckInterval,
		logger:        opts.Logger,
		input:         ti,
		laps:          newLapList(),
		spinner:       s,
		help:          help.New(),
		keys:          defaultKeyMap(),
		now:           opts.Clock.Now(),
	}

	m.laps.SetItems(lapItems(m.lapTimer.Engine))
	m.paneChanged()

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.clockTick(), m.spinner.Tick}

	if m.tabs.IsActive(tabs.Alarm) {
		cmds = append(cmds, textinput.Blink)
	}

	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.laps.SetWidth(msg.Width)

		return m, nil

	case timerTickMsg:
		s := m.surface(msg.surface)
		if !s.Engine.Tick(msg.gen) {
			// stopped or reset since this tick was scheduled
			return m, nil
		}

		return m, timerTick(s.ID, msg.gen, s.Engine.Interval())

	case clockTickMsg:
		m.now = m.clock.Now()
		m.scheduler.Check(m.now)

		return m, m.clockTick()

	case alarmChangedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.tabs.Next()

		return m, m.paneChanged()

	case key.Matches(msg, m.keys.PrevTab):
		m.tabs.Prev()

		return m, m.paneChanged()
	}

	if m.tabs.IsActive(tabs.Alarm) {
		return m.handleAlarmKey(msg)
	}

	return m.handleTimerKey(msg)
}

func (m Model) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.surface(m.tabs.Active())

	switch {
	case key.Matches(msg, m.keys.Stopwatch):
		return m.activate(tabs.Stopwatch)

	case key.Matches(msg, m.keys.LapTimer):
		return m.activate(tabs.LapTimer)

	case key.Matches(msg, m.keys.Alarm):
		return m.activate(tabs.Alarm)

	case key.Matches(msg, m.keys.StartStop):
		gen := s.StartStop()
		m.logger.Debug("timer toggled",
			slog.String("surface", s.ID),
			slog.Bool("running", s.Engine.Running()),
			slog.String("elapsed", s.Engine.Display()),
		)

		if !s.Engine.Running() {
			return m, nil
		}

		return m, timerTick(s.ID, gen, s.Engine.Interval())

	case key.Matches(msg, m.keys.Reset):
		s.Reset()
		m.logger.Debug("timer reset", slog.String("surface", s.ID))

		return m, m.laps.SetItems(lapItems(m.lapTimer.Engine))

	case key.Matches(msg, m.keys.Lap):
		lap, ok := s.Lap()
		if !ok {
			return m, nil
		}

		m.logger.Debug("lap recorded", slog.Int("lap", lap.Index), slog.String("elapsed", stopwatch.Format(lap.Elapsed)))

		cmd := m.laps.SetItems(lapItems(m.lapTimer.Engine))
		m.laps.Select(0)

		return m, cmd
	}

	if s.Laps {
		var cmd tea.Cmd

		m.laps, cmd = m.laps.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m Model) handleAlarmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SetAlarm):
		st, err := m.scheduler.Toggle(m.input.Value())
		m.alarmErr = err

		if err == nil && st.State == alarm.Idle {
			m.input.SetValue("")
		}

		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.scheduler.Dismiss()

		return m, nil
	}

	if !isTimeInput(msg) {
		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) activate(pane string) (tea.Model, tea.Cmd) {
	if err := m.tabs.Activate(pane); err != nil {
		m.logger.Error("failed to switch pane", slog.String("error", err.Error()))

		return m, nil
	}

	return m, m.paneChanged()
}

// paneChanged adapts key bindings and input focus to the active pane.
func (m *Model) paneChanged() tea.Cmd {
	pane := m.tabs.Active()
	m.keys.forPane(pane)

	if pane == tabs.Alarm {
		return m.input.Focus()
	}

	m.input.Blur()

	return nil
}

func (m Model) surface(id string) stopwatch.Surface {
	if id == m.lapTimer.ID {
		return m.lapTimer
	}

	return m.stopwatch
}

func (m Model) clockTick() tea.Cmd {
	return tea.Tick(m.checkInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func timerTick(surface string, gen uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return timerTickMsg{surface: surface, gen: gen}
	})
}

// isTimeInput reports whether msg edits the HH:MM field.
func isTimeInput(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != ':' {
				return false
			}
		}

		return len(msg.Runes) > 0
	default:
		return false
	}
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
