package session

// Action is one of Reset, Backspace or SubmitLetter.
type Action interface {
	isAction()
}

// Reset discards all progress.
type Reset struct{}

// Backspace moves the expected position one letter back.
type Backspace struct{}

// SubmitLetter answers the active letter with Key.
type SubmitLetter struct {
	Key rune
}

func (Reset) isAction()        {}
func (Backspace) isAction()    {}
func (SubmitLetter) isAction() {}

// Transition computes the state that follows s after action. Actions whose
// preconditions do not hold return s unchanged.
func Transition(s State, action Action) State {
	switch a := action.(type) {
	case Reset:
		return New()
	case Backspace:
		if s.Status != StatusTyping || s.Step == 0 {
			return s
		}
		s.Step--
		return s
	case SubmitLetter:
		return submit(s, a.Key)
	default:
		return s
	}
}

func submit(s State, key rune) State {
	// A finished session only leaves through Reset.
	if s.Status == StatusFinished {
		return s
	}
	step := clampStep(s.Step)
	active := rune(Alphabet[step])
	correct := key == active

	letterStatus := LetterError
	if correct {
		letterStatus = LetterCorrect
	}
	items := make([]LetterEntry, len(s.Items))
	for i, entry := range s.Items {
		if entry.Letter == active {
			entry.Status = letterStatus
		}
		items[i] = entry
	}

	next := State{
		Status:   StatusTyping,
		Step:     step,
		Mistakes: s.Mistakes,
		Items:    items,
	}
	switch {
	case correct && step == Len-1:
		next.Status = StatusFinished
	case correct:
		next.Step = clampStep(step + 1)
	default:
		next.Mistakes++
	}
	return next
}

// Outcome classifies what a dispatched action did.
type Outcome int

// Dispatch outcomes.
const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeWrong
	OutcomeBackspace
	OutcomeReset
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeBackspace:
		return "backspace"
	case OutcomeReset:
		return "reset"
	default:
		return "none"
	}
}

// Classify derives the outcome of applying action to prev, which produced next.
func Classify(prev, next State, action Action) Outcome {
	switch action.(type) {
	case Reset:
		return OutcomeReset
	case Backspace:
		if next.Step < prev.Step {
			return OutcomeBackspace
		}
	case SubmitLetter:
		if next.Mistakes > prev.Mistakes {
			return OutcomeWrong
		}
		if next.Step > prev.Step || (next.Finished() && !prev.Finished()) {
			return OutcomeCorrect
		}
	}
	return OutcomeNone
}

// Session owns a State and applies actions to it one at a time.
type Session struct {
	state State
}

// NewSession returns a session in the initial state.
func NewSession() *Session {
	return &Session{state: New()}
}

// State returns the current snapshot.
func (s *Session) State() State {
	return s.state
}

// Dispatch applies action and reports the new state and its outcome.
func (s *Session) Dispatch(action Action) (State, Outcome) {
	prev := s.state
	s.state = Transition(prev, action)
	return s.state, Classify(prev, s.state, action)
}
