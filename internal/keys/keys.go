// Package keys maps terminal key presses to session actions.
package keys

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiabc/internal/session"
)

// KeyMap holds the bindings the practice screen reacts to.
type KeyMap struct {
	Letters   key.Binding
	Backspace key.Binding
	Restart   key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Letters: key.NewBinding(
			key.WithKeys(strings.Split(session.Alphabet, "")...),
			key.WithHelp("a-z", "type"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "back"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Letters, k.Backspace, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Classify turns a key press into a session action. Keys outside the alphabet
// that are not bound produce no action.
func (k KeyMap) Classify(msg tea.KeyMsg) (session.Action, bool) {
	switch {
	case key.Matches(msg, k.Backspace):
		return session.Backspace{}, true
	case key.Matches(msg, k.Restart):
		return session.Reset{}, true
	}
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return nil, false
	}
	r := unicode.ToLower(msg.Runes[0])
	if session.Position(r) < 0 {
		return nil, false
	}
	return session.SubmitLetter{Key: r}, true
}
