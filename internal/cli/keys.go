package cli

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/inovacc/clockr/internal/tabs"
)

type keyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	Stopwatch key.Binding
	LapTimer  key.Binding
	Alarm     key.Binding
	StartStop key.Binding
	Reset     key.Binding
	Lap       key.Binding
	SetAlarm  key.Binding
	Dismiss   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Stopwatch: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "stopwatch"),
		),
		LapTimer: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "lap timer"),
		),
		Alarm: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "alarm"),
		),
		StartStop: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space", "start/stop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Lap: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "lap"),
		),
		SetAlarm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "set/cancel alarm"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// forPane enables only the bindings that do something on pane. Disabled
// bindings neither match nor show up in help.
func (k *keyMap) forPane(pane string) {
	onTimer := pane == tabs.Stopwatch || pane == tabs.LapTimer
	onAlarm := pane == tabs.Alarm

	k.Stopwatch.SetEnabled(onTimer)
	k.LapTimer.SetEnabled(onTimer)
	k.Alarm.SetEnabled(onTimer)
	k.StartStop.SetEnabled(onTimer)
	k.Reset.SetEnabled(onTimer)
	k.Lap.SetEnabled(pane == tabs.LapTimer)
	k.SetAlarm.SetEnabled(onAlarm)
	k.Dismiss.SetEnabled(onAlarm)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.StartStop, k.Lap, k.Reset, k.SetAlarm, k.Dismiss, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Stopwatch, k.LapTimer, k.Alarm},
		{k.StartStop, k.Reset, k.Lap},
		{k.SetAlarm, k.Dismiss},
		{k.Help, k.Quit},
	}
}
