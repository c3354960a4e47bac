package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiabc/internal/session"
)

func TestScrollWindow(t *testing.T) {
	tests := []struct {
		step, visible       int
		wantStart, wantEnd int
	}{
		{step: 0, visible: 7, wantStart: 0, wantEnd: 7},
		{step: 3, visible: 7, wantStart: 0, wantEnd: 7},
		{step: 10, visible: 7, wantStart: 7, wantEnd: 14},
		{step: 25, visible: 7, wantStart: 19, wantEnd: 26},
		{step: 5, visible: 30, wantStart: 0, wantEnd: 26},
	}
	for _, tt := range tests {
		start, end := ScrollWindow(tt.step, tt.visible, session.Len)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Fatalf("ScrollWindow(%d, %d) = %d, %d; want %d, %d", tt.step, tt.visible, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestVisibleTilesFitsWidth(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.config.Visible = 11
	if got := m.visibleTiles(); got != 11 {
		t.Fatalf("expected 11 tiles without a width, got %d", got)
	}
	m.Update(tea.WindowSizeMsg{Width: tileWidth * 4, Height: 20})
	if got := m.visibleTiles(); got != 3 {
		t.Fatalf("expected 3 tiles for a narrow window, got %d", got)
	}
}

func TestRenderTileStyles(t *testing.T) {
	state := session.New()
	state = session.Transition(state, session.SubmitLetter{Key: 'a'})
	state = session.Transition(state, session.SubmitLetter{Key: 'x'})

	if got := renderTile(state, 0); got != correctTileStyle.Render("A") {
		t.Fatalf("expected correct style for A")
	}
	if got := renderTile(state, 2); got != tileStyle.Render("C") {
		t.Fatalf("expected idle style for C")
	}
	if active := renderTile(state, 1); !strings.Contains(active, "B") {
		t.Fatalf("expected active tile to show B, got %q", active)
	}
}

func TestStatusLine(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, "aq")
	line := m.statusLine(m.State())
	for _, want := range []string{"0:00.0", "Mistakes 1", "1/26"} {
		if !strings.Contains(line, want) {
			t.Fatalf("status line missing %q: %s", want, line)
		}
	}
	m.width = 10
	if got := m.statusLine(m.State()); len([]rune(got)) > 10 {
		t.Fatalf("expected truncated status line, got %q", got)
	}
}
