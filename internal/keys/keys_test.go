package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiabc/internal/session"
)

func TestClassify(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   session.Action
		wantOK bool
	}{
		{name: "letter", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}, want: session.SubmitLetter{Key: 'c'}, wantOK: true},
		{name: "upper letter", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Q'}}, want: session.SubmitLetter{Key: 'q'}, wantOK: true},
		{name: "backspace", msg: tea.KeyMsg{Type: tea.KeyBackspace}, want: session.Backspace{}, wantOK: true},
		{name: "delete", msg: tea.KeyMsg{Type: tea.KeyDelete}, want: session.Backspace{}, wantOK: true},
		{name: "enter", msg: tea.KeyMsg{Type: tea.KeyEnter}, want: session.Reset{}, wantOK: true},
		{name: "digit", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'7'}}},
		{name: "accented", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'é'}}},
		{name: "paste", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}},
		{name: "alt letter", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}},
		{name: "space", msg: tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}},
		{name: "arrow", msg: tea.KeyMsg{Type: tea.KeyLeft}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.Classify(tt.msg)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestShortHelpListsBindings(t *testing.T) {
	km := DefaultKeyMap()
	if got := len(km.ShortHelp()); got != 4 {
		t.Fatalf("expected 4 bindings, got %d", got)
	}
	if got := km.Letters.Help().Key; got != "a-z" {
		t.Fatalf("unexpected letters help key %q", got)
	}
}
