// Package tui provides the Bubble Tea front end for the pinball table.
// It maps terminal input to simulation actions and draws published
// snapshots; the physics itself runs on the simulation's own goroutine.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent to trigger a redraw of the latest snapshot.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends a frame message after period.
func frameCmd(period time.Duration) tea.Cmd {
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// simStoppedMsg reports that the simulation goroutine has returned.
type simStoppedMsg struct{}
