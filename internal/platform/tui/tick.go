// Package tui provides the Bubble Tea surfaces for terragen: the live
// generation viewer, the run history browser, and the SSH server that hosts
// them for remote sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent when viewer ID is ready for its next snapshot.
type TickMsg struct {
	ID   int
	Time time.Time
}

// tickCmd waits delay before asking for the next snapshot.
func tickCmd(id int, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return TickMsg{ID: id, Time: time.Now()} }
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
