// Package tui provides the Bubble Tea integration for Cookie Crunch.
// It handles the terminal UI loop, input mapping, level menu and scoreboard.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. ID names the tick loop
// so a model ignores ticks started by a model it replaced.
type TickMsg struct {
	At time.Time
	ID uint64
}

var tickLoops atomic.Uint64

func newTickLoop() uint64 {
	return tickLoops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, id uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, ID: id}
	})
}
