// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiabc/internal/keys"
	"github.com/verte-zerg/tuiabc/internal/model"
	"github.com/verte-zerg/tuiabc/internal/session"
	"github.com/verte-zerg/tuiabc/internal/sound"
	"github.com/verte-zerg/tuiabc/internal/store"
	"github.com/verte-zerg/tuiabc/internal/timer"
)

type letterStat struct {
	mistakes     int
	latencyMs    int64
	latencyCount int64
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	config model.Config
	store  *store.Store
	player sound.Player
	keys   keys.KeyMap
	help   help.Model
	now    func() time.Time

	session *session.Session
	timer   timer.Timer

	width  int
	height int

	startedAt     time.Time
	prevCorrectAt time.Time
	letterStats   map[rune]*letterStat

	last    *model.Result
	best    time.Duration
	hasBest bool
	newBest bool
}

// NewModel constructs a practice model. st may be nil to skip recording.
func NewModel(cfg model.Config, st *store.Store, player sound.Player) *Model {
	if player == nil {
		player = sound.Silent{}
	}
	m := &Model{
		config:  cfg,
		store:   st,
		player:  player,
		keys:    keys.DefaultKeyMap(),
		help:    help.New(),
		now:     time.Now,
		session: session.NewSession(),
		timer:   timer.New(),
	}
	m.resetTracking()
	m.loadBest()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		action, ok := m.keys.Classify(msg)
		if !ok {
			return m, nil
		}
		return m, m.dispatch(action)
	default:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd
	}
}

// State returns the current session snapshot.
func (m *Model) State() session.State {
	return m.session.State()
}

func (m *Model) dispatch(action session.Action) tea.Cmd {
	prev := m.session.State()
	next, outcome := m.session.Dispatch(action)
	if effect, ok := sound.EffectFor(outcome); ok {
		m.player.Play(effect)
	}
	m.track(prev, outcome)

	cmd := m.timer.Control(prev.Status, next.Status)
	switch {
	case next.Status == session.StatusIdle:
		m.resetTracking()
	case prev.Status == session.StatusIdle && next.Status == session.StatusTyping:
		m.startedAt = m.now()
	}
	if next.Finished() && !prev.Finished() {
		m.finishSession(next)
	}
	return cmd
}

func (m *Model) track(prev session.State, outcome session.Outcome) {
	active := prev.Active()
	switch outcome {
	case session.OutcomeWrong:
		m.letterEntry(active).mistakes++
	case session.OutcomeCorrect:
		now := m.now()
		// A letter typed again after backspace keeps its first sample.
		retyped := prev.Items[prev.Step].Status == session.LetterCorrect
		if !m.prevCorrectAt.IsZero() && !retyped {
			entry := m.letterEntry(active)
			entry.latencyMs += now.Sub(m.prevCorrectAt).Milliseconds()
			entry.latencyCount++
		}
		m.prevCorrectAt = now
	}
}

func (m *Model) letterEntry(r rune) *letterStat {
	entry, ok := m.letterStats[r]
	if !ok {
		entry = &letterStat{}
		m.letterStats[r] = entry
	}
	return entry
}

func (m *Model) resetTracking() {
	m.startedAt = time.Time{}
	m.prevCorrectAt = time.Time{}
	m.letterStats = map[rune]*letterStat{}
}

func (m *Model) loadBest() {
	if m.store == nil {
		return
	}
	best, ok, err := m.store.BestDuration(context.Background())
	if err != nil {
		logErrf("failed to load best time: %v\n", err)
		return
	}
	m.best = best
	m.hasBest = ok
}

func (m *Model) finishSession(state session.State) {
	endedAt := m.now()
	startedAt := m.startedAt
	if startedAt.IsZero() {
		startedAt = endedAt
	}
	result := model.Result{
		RunID:      store.NewRunID(endedAt),
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		DurationMs: endedAt.Sub(startedAt).Milliseconds(),
		Mistakes:   state.Mistakes,
		Sound:      m.config.Sound,
	}
	m.last = &result

	duration := time.Duration(result.DurationMs) * time.Millisecond
	m.newBest = !m.hasBest || duration < m.best
	if m.newBest {
		m.best = duration
		m.hasBest = true
	}

	if m.store == nil || !m.config.Record {
		return
	}
	letters := make([]model.LetterStats, 0, session.Len)
	for _, r := range session.Alphabet {
		entry := m.letterEntry(r)
		letters = append(letters, model.LetterStats{
			Letter:       string(r),
			Mistakes:     entry.mistakes,
			LatencyMs:    entry.latencyMs,
			LatencyCount: entry.latencyCount,
		})
	}
	if _, err := m.store.InsertResult(context.Background(), result, letters); err != nil {
		logErrf("failed to save result: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
