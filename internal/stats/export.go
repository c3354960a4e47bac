package stats

import (
	"fmt"
	"io"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

type exportDoc struct {
	Runs    []exportRun    `yaml:"runs"`
	Letters []exportLetter `yaml:"letters,omitempty"`
	Weak    []string       `yaml:"weak,omitempty"`
}

type exportRun struct {
	RunID      string  `yaml:"run_id"`
	EndedAt    string  `yaml:"ended_at"`
	DurationMs int64   `yaml:"duration_ms"`
	Mistakes   int     `yaml:"mistakes"`
	LPM        float64 `yaml:"letters_per_minute"`
	Accuracy   float64 `yaml:"accuracy"`
}

type exportLetter struct {
	Letter       string  `yaml:"letter"`
	Mistakes     int     `yaml:"mistakes"`
	AvgLatencyMs float64 `yaml:"avg_latency_ms"`
}

// ExportYAML writes the report as a YAML document.
func ExportYAML(w io.Writer, report Report) error {
	doc := exportDoc{
		Runs: make([]exportRun, 0, len(report.Results)),
		Weak: report.Weak,
	}
	for _, r := range report.Results {
		lpm, acc := ResultMetrics(r.Mistakes, r.DurationMs)
		doc.Runs = append(doc.Runs, exportRun{
			RunID:      r.RunID,
			EndedAt:    r.EndedAt.UTC().Format(time.RFC3339),
			DurationMs: r.DurationMs,
			Mistakes:   r.Mistakes,
			LPM:        round2(lpm),
			Accuracy:   round2(acc),
		})
	}
	for _, agg := range report.LetterAggs {
		doc.Letters = append(doc.Letters, exportLetter{
			Letter:       agg.Letter,
			Mistakes:     agg.Mistakes,
			AvgLatencyMs: round2(avgLatency(agg)),
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
