package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg is sent on the poll interval to reload coordination state.
type tickMsg time.Time

// refreshMsg is sent by the data directory watcher between polls.
type refreshMsg struct{}

// snapshotMsg carries a freshly loaded view of the coordination state.
type snapshotMsg snapshot

// tick returns a command that sends a tickMsg after the poll interval.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
