package cli

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/clockr/internal/alarm"
)

// alarmChangedMsg carries a scheduler snapshot into the event loop.
type alarmChangedMsg alarm.Status

// Relay forwards scheduler changes into a running program. Pass Forward to
// alarm.WithOnChange and Attach the program once it exists.
type Relay struct {
	program atomic.Pointer[tea.Program]
}

func (r *Relay) Attach(p *tea.Program) {
	r.program.Store(p)
}

// Forward sends st to the attached program. It never blocks: changes made
// from inside Update would otherwise wait on the loop that is running them.
func (r *Relay) Forward(st alarm.Status) {
	p := r.program.Load()
	if p == nil {
		return
	}

	go p.Send(alarmChangedMsg(st))
}
