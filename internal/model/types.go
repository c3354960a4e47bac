// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Sound   string
	Record  bool
	Visible int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since *time.Time
	Last  int
}

// Result captures a completed alphabet run.
type Result struct {
	RunID      string
	StartedAt  time.Time
	EndedAt    time.Time
	DurationMs int64
	Mistakes   int
	Sound      string
}

// LetterStats stores per-letter stats for a run.
type LetterStats struct {
	Letter       string
	Mistakes     int
	LatencyMs    int64
	LatencyCount int64
}

// LetterAggregate aggregates letter stats across runs.
type LetterAggregate struct {
	Letter       string
	Runs         int
	Mistakes     int
	LatencySumMs int64
	LatencyCount int64
}

// ResultAggregate summarizes a run for reporting.
type ResultAggregate struct {
	ID         int64
	RunID      string
	EndedAt    time.Time
	DurationMs int64
	Mistakes   int
}
