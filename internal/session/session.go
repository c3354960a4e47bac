// Package session implements the alphabet practice state machine.
package session

// Alphabet is the fixed sequence the user has to type.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// Len is the number of letters in Alphabet.
const Len = len(Alphabet)

// LetterStatus marks how a letter was last answered.
type LetterStatus string

// Letter statuses.
const (
	LetterIdle    LetterStatus = "idle"
	LetterCorrect LetterStatus = "correct"
	LetterError   LetterStatus = "error"
)

// Status is the overall session phase.
type Status string

// Session phases.
const (
	StatusIdle     Status = "idle"
	StatusTyping   Status = "typing"
	StatusFinished Status = "finished"
)

// LetterEntry tracks one alphabet position.
type LetterEntry struct {
	Letter rune
	Status LetterStatus
}

// State is a snapshot of a practice session. Values returned by Transition
// never share their Items slice with the input state when it changes.
type State struct {
	Status   Status
	Step     int
	Mistakes int
	Items    []LetterEntry
}

// New returns the canonical initial state.
func New() State {
	items := make([]LetterEntry, Len)
	for i, r := range Alphabet {
		items[i] = LetterEntry{Letter: r, Status: LetterIdle}
	}
	return State{
		Status: StatusIdle,
		Items:  items,
	}
}

// Active returns the letter expected next.
func (s State) Active() rune {
	return rune(Alphabet[clampStep(s.Step)])
}

// IsActive reports whether the entry at index i is the active one.
func (s State) IsActive(i int) bool {
	return i == clampStep(s.Step)
}

// Finished reports whether the whole alphabet was typed.
func (s State) Finished() bool {
	return s.Status == StatusFinished
}

// Position returns the alphabet index of r, or -1 when r is not a letter of it.
func Position(r rune) int {
	if r < 'a' || r > 'z' {
		return -1
	}
	return int(r - 'a')
}

func clampStep(step int) int {
	if step < 0 {
		return 0
	}
	if step > Len-1 {
		return Len - 1
	}
	return step
}
