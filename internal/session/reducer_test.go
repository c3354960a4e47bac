package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeAll(t *testing.T, s State, keys string) State {
	t.Helper()
	for _, r := range keys {
		s = Transition(s, SubmitLetter{Key: r})
	}
	return s
}

func TestNewState(t *testing.T) {
	s := New()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, 0, s.Step)
	assert.Equal(t, 0, s.Mistakes)
	require.Len(t, s.Items, Len)
	for i, entry := range s.Items {
		assert.Equal(t, rune(Alphabet[i]), entry.Letter)
		assert.Equal(t, LetterIdle, entry.Status)
	}
	assert.Equal(t, 'a', s.Active())
	assert.True(t, s.IsActive(0))
}

func TestTypingWholeAlphabetFinishes(t *testing.T) {
	s := typeAll(t, New(), Alphabet)

	assert.Equal(t, StatusFinished, s.Status)
	assert.Equal(t, 0, s.Mistakes)
	assert.Equal(t, Len-1, s.Step)
	for _, entry := range s.Items {
		assert.Equal(t, LetterCorrect, entry.Status, "letter %c", entry.Letter)
	}
}

func TestFirstSubmitStartsTyping(t *testing.T) {
	for _, key := range []rune{'a', 'q'} {
		s := Transition(New(), SubmitLetter{Key: key})
		assert.Equal(t, StatusTyping, s.Status, "key %c", key)
	}
}

func TestIncorrectSubmit(t *testing.T) {
	s := typeAll(t, New(), "abc")
	next := Transition(s, SubmitLetter{Key: 'x'})

	assert.Equal(t, s.Step, next.Step)
	assert.Equal(t, s.Mistakes+1, next.Mistakes)
	assert.Equal(t, LetterError, next.Items[s.Step].Status)
	assert.Equal(t, StatusTyping, next.Status)
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	s := New()
	_ = Transition(s, SubmitLetter{Key: 'a'})
	_ = Transition(s, SubmitLetter{Key: 'z'})
	assert.Equal(t, New(), s)
}

func TestResetFromAnyState(t *testing.T) {
	states := map[string]State{
		"idle":     New(),
		"typing":   typeAll(t, New(), "abxc"),
		"finished": typeAll(t, New(), "aqb"+Alphabet[2:]),
	}
	for name, s := range states {
		t.Run(name, func(t *testing.T) {
			once := Transition(s, Reset{})
			assert.Equal(t, New(), once)
			assert.Equal(t, once, Transition(once, Reset{}))
		})
	}
}

func TestBackspaceNoop(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{name: "idle", state: New()},
		{name: "typing at start", state: Transition(New(), SubmitLetter{Key: 'x'})},
		{name: "finished", state: typeAll(t, New(), Alphabet)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transition(tt.state, Backspace{})
			assert.Equal(t, tt.state, got)
		})
	}
}

func TestBackspaceAfterAdvance(t *testing.T) {
	s := typeAll(t, New(), "abxc")
	got := Transition(s, Backspace{})

	assert.Equal(t, s.Step-1, got.Step)
	assert.Equal(t, s.Mistakes, got.Mistakes)
	assert.Equal(t, s.Items, got.Items)
	assert.Equal(t, StatusTyping, got.Status)
}

func TestScenario(t *testing.T) {
	s := New()

	s = Transition(s, SubmitLetter{Key: 'a'})
	require.Equal(t, 1, s.Step)
	require.Equal(t, StatusTyping, s.Status)
	require.Equal(t, LetterCorrect, s.Items[0].Status)

	s = Transition(s, SubmitLetter{Key: 'x'})
	require.Equal(t, 1, s.Step)
	require.Equal(t, 1, s.Mistakes)
	require.Equal(t, LetterError, s.Items[1].Status)

	s = Transition(s, SubmitLetter{Key: 'b'})
	require.Equal(t, 2, s.Step)
	require.Equal(t, LetterCorrect, s.Items[1].Status)

	s = Transition(s, Backspace{})
	require.Equal(t, 1, s.Step)

	s = Transition(s, SubmitLetter{Key: 'b'})
	require.Equal(t, 2, s.Step)

	s = typeAll(t, s, Alphabet[2:])
	assert.Equal(t, StatusFinished, s.Status)
	assert.Equal(t, 25, s.Step)
	assert.Equal(t, 1, s.Mistakes)
}

func TestSubmitAfterFinishIsIgnored(t *testing.T) {
	s := typeAll(t, New(), Alphabet)
	got := Transition(s, SubmitLetter{Key: 'q'})
	assert.Equal(t, s, got)
}

func TestClassify(t *testing.T) {
	sess := NewSession()

	_, out := sess.Dispatch(Backspace{})
	assert.Equal(t, OutcomeNone, out)

	_, out = sess.Dispatch(SubmitLetter{Key: 'a'})
	assert.Equal(t, OutcomeCorrect, out)

	_, out = sess.Dispatch(SubmitLetter{Key: 'a'})
	assert.Equal(t, OutcomeWrong, out)

	_, out = sess.Dispatch(Backspace{})
	assert.Equal(t, OutcomeBackspace, out)

	for _, r := range Alphabet[:Len-1] {
		sess.Dispatch(SubmitLetter{Key: r})
	}
	state, out := sess.Dispatch(SubmitLetter{Key: 'z'})
	assert.Equal(t, OutcomeCorrect, out)
	assert.True(t, state.Finished())

	_, out = sess.Dispatch(SubmitLetter{Key: 'a'})
	assert.Equal(t, OutcomeNone, out)

	state, out = sess.Dispatch(Reset{})
	assert.Equal(t, OutcomeReset, out)
	assert.Equal(t, New(), state)
	assert.Equal(t, "reset", out.String())
}

func TestSessionsAreIndependent(t *testing.T) {
	a := NewSession()
	b := NewSession()
	a.Dispatch(SubmitLetter{Key: 'a'})
	assert.Equal(t, 1, a.State().Step)
	assert.Equal(t, New(), b.State())
}

func TestPosition(t *testing.T) {
	assert.Equal(t, 0, Position('a'))
	assert.Equal(t, 25, Position('z'))
	assert.Equal(t, -1, Position('A'))
	assert.Equal(t, -1, Position('1'))
}
