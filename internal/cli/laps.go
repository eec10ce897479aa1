package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/clockr/internal/stopwatch"
)

type lapItem struct {
	lap stopwatch.Lap
}

func (i lapItem) FilterValue() string { return "" }

func (i lapItem) String() string {
	return fmt.Sprintf("Lap %d  %s", i.lap.Index, stopwatch.Format(i.lap.Elapsed))
}

type lapDelegate struct{}

func (d lapDelegate) Height() int                             { return 1 }
func (d lapDelegate) Spacing() int                            { return 0 }
func (d lapDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d lapDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(lapItem)
	if !ok {
		return
	}

	fn := lapIndexStyle.Render
	if index == 0 {
		// newest lap is always first
		fn = lapLatestStyle.Render
	}

	_, _ = fmt.Fprint(w, fn(i.String()))
}

func newLapList() list.Model {
	const (
		defaultWidth  = 30
		defaultHeight = 8
	)

	l := list.New(nil, lapDelegate{}, defaultWidth, defaultHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = paginationStyle

	return l
}

// lapItems converts laps to list items, most recent first.
func lapItems(engine *stopwatch.Engine) []list.Item {
	laps := engine.LapsNewestFirst()
	items := make([]list.Item, len(laps))

	for i, lap := range laps {
		items[i] = lapItem{lap: lap}
	}

	return items
}
