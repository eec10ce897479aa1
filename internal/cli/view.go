package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/clockr/internal/alarm"
	"github.com/inovacc/clockr/internal/stopwatch"
	"github.com/inovacc/clockr/internal/tabs"
)

var tabTitles = map[string]string{
	tabs.Stopwatch: "Stopwatch",
	tabs.LapTimer:  "Lap Timer",
	tabs.Alarm:     "Alarm",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("clockr"),
		"   ",
		clockStyle.Render(m.now.Format("15:04:05")),
	)

	var body string

	switch pane := m.tabs.Active(); pane {
	case tabs.Alarm:
		body = m.alarmView()
	default:
		body = m.timerView(m.surface(pane))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		header,
		"",
		m.tabBar(),
		paneStyle.Render(body),
		m.help.View(m.keys),
	) + "\n"
}

func (m Model) tabBar() string {
	rendered := make([]string, 0, len(m.tabs.IDs()))

	for _, id := range m.tabs.IDs() {
		style := inactiveTabStyle
		if m.tabs.IsActive(id) {
			style = activeTabStyle
		}

		rendered = append(rendered, style.Render(tabTitles[id]))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) timerView(s stopwatch.Surface) string {
	var b strings.Builder

	b.WriteString(displayStyle.Render(s.Engine.Display()))
	b.WriteString("\n\n")
	b.WriteString(buttonStyle.Render(button(s.Engine.Label())))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(button("Reset")))

	if !s.Laps {
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(button("Lap")))
	b.WriteString("\n\n")

	if len(m.laps.Items()) == 0 {
		b.WriteString(mutedStyle.Render("No laps recorded"))
	} else {
		b.WriteString(m.laps.View())
	}

	return b.String()
}

func (m Model) alarmView() string {
	st := m.scheduler.Status()

	var b strings.Builder

	b.WriteString(mutedStyle.Render("Alarm time (HH:MM)"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(buttonStyle.Render(button(st.Label())))
	b.WriteString("\n\n")

	switch {
	case st.Ringing:
		b.WriteString(ringingStyle.Render(st.Message))
	case st.Message != "":
		b.WriteString(st.Message)
	}

	if st.State == alarm.Armed {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("next "+st.Next.Format("Mon 02 Jan 15:04"))))
	}

	if m.alarmErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", m.alarmErr)))
	}

	return b.String()
}

func button(label string) string {
	return "[ " + label + " ]"
}
