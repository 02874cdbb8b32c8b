// Package tui runs arcade games in a terminal through Bubble Tea. It owns
// the tick loop, key and mouse mapping, the launcher screens and the SSH
// front end.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation step of the game model that scheduled it.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickGen numbers tick chains so a game left in the launcher stops
// receiving ticks when another one starts.
var tickGen atomic.Uint64

func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd schedules the next tick at the given rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
