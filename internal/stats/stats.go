// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/tuiabc/internal/model"
	"github.com/verte-zerg/tuiabc/internal/session"
)

const (
	sparkChars          = " .:-=+*#%@"
	minTrendWidth       = 10
	terminalWidthBackup = 80
)

// ResultMetrics computes letters per minute and accuracy for a run.
func ResultMetrics(mistakes int, durationMs int64) (lpm, accuracy float64) {
	accuracy = Accuracy(session.Len, mistakes)
	if durationMs <= 0 {
		return 0, accuracy
	}
	minutes := float64(durationMs) / 60000.0
	return float64(session.Len) / minutes, accuracy
}

// Accuracy returns the share of correct keystrokes among all submissions.
func Accuracy(correct, mistakes int) float64 {
	den := correct + mistakes
	if den <= 0 {
		return 0
	}
	return float64(correct) / float64(den)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Summary holds averages over a set of runs.
type Summary struct {
	Runs        int
	BestMs      int64
	AvgLPM      float64
	AvgMistakes float64
	AvgAccuracy float64
}

// Summarize averages the runs. The zero Summary is returned for no runs.
func Summarize(results []model.ResultAggregate) Summary {
	if len(results) == 0 {
		return Summary{}
	}
	var totalLPM, totalAcc float64
	var totalMistakes int
	best := results[0].DurationMs
	for _, r := range results {
		lpm, acc := ResultMetrics(r.Mistakes, r.DurationMs)
		totalLPM += lpm
		totalAcc += acc
		totalMistakes += r.Mistakes
		best = min(best, r.DurationMs)
	}
	count := float64(len(results))
	return Summary{
		Runs:        len(results),
		BestMs:      best,
		AvgLPM:      totalLPM / count,
		AvgMistakes: float64(totalMistakes) / count,
		AvgAccuracy: totalAcc / count,
	}
}

// RenderSummary prints a summary of the runs.
func RenderSummary(w io.Writer, results []model.ResultAggregate) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	sum := Summarize(results)
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d", sum.Runs),
		fmt.Sprintf("Best time: %s", formatDuration(sum.BestMs)),
		fmt.Sprintf("Avg letters/min: %.1f", sum.AvgLPM),
		fmt.Sprintf("Avg mistakes: %.2f", sum.AvgMistakes),
		fmt.Sprintf("Avg accuracy: %.2f%%", sum.AvgAccuracy*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints a moving-average sparkline of letters per minute. A width
// of zero sizes the line to the terminal.
func RenderTrend(w io.Writer, results []model.ResultAggregate, window, width int) error {
	if len(results) == 0 {
		return nil
	}
	values := make([]float64, len(results))
	for i, r := range results {
		values[i], _ = ResultMetrics(r.Mistakes, r.DurationMs)
	}
	values = MovingAverage(values, window)
	if width <= 0 {
		width = terminalWidth(w)
	}
	width = max(width, minTrendWidth)
	if len(values) > width {
		values = values[len(values)-width:]
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	lines := []string{
		fmt.Sprintf("Letters/min trend (window %d)", window),
		Sparkline(values),
		fmt.Sprintf("min=%.1f max=%.1f", minVal, maxVal),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func avgLatency(agg model.LetterAggregate) float64 {
	if agg.LatencyCount == 0 {
		return 0
	}
	return float64(agg.LatencySumMs) / float64(agg.LatencyCount)
}

func formatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return d.Round(100 * time.Millisecond).String()
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
