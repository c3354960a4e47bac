package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiabc/internal/session"
	"github.com/verte-zerg/tuiabc/internal/stats"
	"github.com/verte-zerg/tuiabc/internal/timer"
)

const minVisible = 3

var (
	tileStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Foreground(lipgloss.Color("#8C8C8C"))
	activeTileStyle = tileStyle.
			BorderForeground(lipgloss.Color("#C89A3A")).
			Foreground(lipgloss.Color("#C89A3A")).
			Bold(true)
	correctTileStyle = tileStyle.Foreground(lipgloss.Color("#F0F0F0"))
	errorTileStyle   = tileStyle.
				BorderForeground(lipgloss.Color("#FF4D4F")).
				Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// tileWidth is the rendered width of a single letter tile.
var tileWidth = lipgloss.Width(tileStyle.Render("A"))

// View implements tea.Model.
func (m *Model) View() string {
	state := m.session.State()
	var content string
	if state.Finished() && m.last != nil {
		content = m.renderResult()
	} else {
		content = lipgloss.JoinVertical(lipgloss.Center,
			m.renderTiles(state),
			"",
			statusStyle.Render(m.statusLine(state)),
		)
	}
	footer := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderTiles(state session.State) string {
	start, end := ScrollWindow(state.Step, m.visibleTiles(), session.Len)
	tiles := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		tiles = append(tiles, renderTile(state, i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func renderTile(state session.State, i int) string {
	entry := state.Items[i]
	style := tileStyle
	switch {
	case state.IsActive(i) && !state.Finished():
		style = activeTileStyle
	case entry.Status == session.LetterError:
		style = errorTileStyle
	case entry.Status == session.LetterCorrect:
		style = correctTileStyle
	}
	if state.IsActive(i) && entry.Status == session.LetterError && !state.Finished() {
		style = style.BorderForeground(lipgloss.Color("#FF4D4F"))
	}
	return style.Render(strings.ToUpper(string(entry.Letter)))
}

// visibleTiles returns how many tiles fit, odd so the active tile can sit in
// the middle.
func (m *Model) visibleTiles() int {
	visible := m.config.Visible
	if visible < minVisible {
		visible = minVisible
	}
	if m.width > 0 && tileWidth > 0 {
		fit := m.width / tileWidth
		if fit < visible {
			visible = fit
		}
	}
	if visible%2 == 0 {
		visible--
	}
	if visible < 1 {
		visible = 1
	}
	return visible
}

// ScrollWindow returns the [start, end) range of tiles to show so that step
// stays centred while the strip is not at either edge.
func ScrollWindow(step, visible, total int) (start, end int) {
	if visible >= total || visible <= 0 {
		return 0, total
	}
	start = step - visible/2
	if start < 0 {
		start = 0
	}
	if start > total-visible {
		start = total - visible
	}
	return start, start + visible
}

func (m *Model) statusLine(state session.State) string {
	line := fmt.Sprintf("%s  ·  Mistakes %d  ·  %d/%d",
		m.timer.View(), state.Mistakes, m.typedCount(state), session.Len)
	if m.hasBest {
		line += "  ·  Best " + timer.FormatElapsed(m.best)
	}
	if m.width > 0 {
		line = runewidth.Truncate(line, m.width, "…")
	}
	return line
}

func (m *Model) typedCount(state session.State) int {
	if state.Finished() {
		return session.Len
	}
	return state.Step
}

func (m *Model) renderResult() string {
	r := m.last
	duration := time.Duration(r.DurationMs) * time.Millisecond
	lpm, acc := stats.ResultMetrics(r.Mistakes, r.DurationMs)
	rows := [][2]string{
		{"Time", timer.FormatElapsed(duration)},
		{"Mistakes", fmt.Sprintf("%d", r.Mistakes)},
		{"Accuracy", fmt.Sprintf("%.1f%%", acc*100)},
		{"Letters/min", fmt.Sprintf("%.1f", lpm)},
	}
	if m.hasBest {
		best := timer.FormatElapsed(m.best)
		if m.newBest {
			best += " (new)"
		}
		rows = append(rows, [2]string{"Best", best})
	}
	lines := []string{titleStyle.Render("A–Z complete"), ""}
	for _, row := range rows {
		label := runewidth.FillRight(row[0], 12)
		lines = append(lines, labelStyle.Render(label)+valueStyle.Render(row[1]))
	}
	lines = append(lines, "", statusStyle.Render("press enter to go again"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
