// Package sound provides keystroke feedback effects.
package sound

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verte-zerg/tuiabc/internal/session"
)

// Effect names a feedback sound.
type Effect int

// Effects, one per dispatch outcome.
const (
	Click Effect = iota
	Wrong
	Backspace
	Restart
)

// Mode selects which effects are audible.
type Mode string

// Sound modes.
const (
	ModeOff    Mode = "off"
	ModeErrors Mode = "errors"
	ModeAll    Mode = "all"
)

// ParseMode validates a mode name.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeOff:
		return ModeOff, nil
	case ModeErrors:
		return ModeErrors, nil
	case ModeAll:
		return ModeAll, nil
	default:
		return "", fmt.Errorf("unknown sound mode %q (want off, errors or all)", value)
	}
}

// Player plays effects without blocking the caller.
type Player interface {
	Play(Effect)
}

// EffectFor maps a dispatch outcome to its effect.
func EffectFor(outcome session.Outcome) (Effect, bool) {
	switch outcome {
	case session.OutcomeCorrect:
		return Click, true
	case session.OutcomeWrong:
		return Wrong, true
	case session.OutcomeBackspace:
		return Backspace, true
	case session.OutcomeReset:
		return Restart, true
	default:
		return 0, false
	}
}

// Silent discards every effect.
type Silent struct{}

// Play implements Player.
func (Silent) Play(Effect) {}

// Bell rings the terminal bell.
type Bell struct {
	out  io.Writer
	mode Mode
	logf func(format string, args ...any)
}

// NewPlayer returns a player for mode writing to out.
func NewPlayer(mode Mode, out io.Writer) Player {
	if mode == ModeOff || out == nil {
		return Silent{}
	}
	return &Bell{out: out, mode: mode, logf: logErrf}
}

// Play implements Player.
func (b *Bell) Play(effect Effect) {
	if b.mode == ModeErrors && effect != Wrong {
		return
	}
	if _, err := io.WriteString(b.out, "\a"); err != nil {
		b.logf("failed to ring bell: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
