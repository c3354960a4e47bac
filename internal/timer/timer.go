// Package timer measures session time from phase transitions.
package timer

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiabc/internal/session"
)

const tickInterval = 100 * time.Millisecond

// Timer wraps a stopwatch that is started and stopped by session phases.
type Timer struct {
	sw stopwatch.Model
}

// New returns a stopped timer.
func New() Timer {
	return Timer{sw: stopwatch.NewWithInterval(tickInterval)}
}

// Control returns the stopwatch command for a phase change from prev to next.
// Returning to idle swaps in a fresh stopwatch so ticks still in flight from
// the previous run are ignored.
func (t *Timer) Control(prev, next session.Status) tea.Cmd {
	if prev == next {
		return nil
	}
	switch {
	case next == session.StatusIdle:
		t.sw = stopwatch.NewWithInterval(tickInterval)
		return nil
	case prev == session.StatusIdle && next == session.StatusTyping:
		return t.sw.Start()
	case next == session.StatusFinished:
		return t.sw.Stop()
	}
	return nil
}

// Update forwards stopwatch messages.
func (t Timer) Update(msg tea.Msg) (Timer, tea.Cmd) {
	var cmd tea.Cmd
	t.sw, cmd = t.sw.Update(msg)
	return t, cmd
}

// Elapsed returns the measured time.
func (t Timer) Elapsed() time.Duration {
	return t.sw.Elapsed()
}

// ID identifies the underlying stopwatch.
func (t Timer) ID() int {
	return t.sw.ID()
}

// Running reports whether the stopwatch is ticking.
func (t Timer) Running() bool {
	return t.sw.Running()
}

// View renders the elapsed time.
func (t Timer) View() string {
	return FormatElapsed(t.sw.Elapsed())
}

// FormatElapsed renders d as m:ss.t.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := d.Milliseconds() / 100
	minutes := tenths / 600
	seconds := (tenths / 10) % 60
	return fmt.Sprintf("%d:%02d.%d", minutes, seconds, tenths%10)
}
