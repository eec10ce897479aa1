// Package cli provides the terminal user interface for clockr.
//
// The package uses [Bubbletea] for the event loop and [Lipgloss] for
// styling. Every mutation of the timers and the alarm happens inside
// Update, one message at a time, so the domain packages need no locking on
// behalf of the UI.
//
// # Panes
//
//   - Stopwatch: elapsed display with start/stop and reset
//   - Lap timer: the same controls plus lap recording and a lap list
//   - Alarm: HH:MM input, set/cancel control, ringing indicator
//
// # Timing
//
// Timer ticks are tea.Tick commands stamped with the engine generation
// that scheduled them; an engine rejects ticks from an earlier run, so a
// stop or reset cancels the outstanding tick without tracking a handle.
// The wall clock and the alarm backstop share a second tea.Tick loop.
// Alarm firings from the scheduler's own timer reach the loop through a
// [Relay].
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
