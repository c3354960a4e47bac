package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiabc/internal/model"
)

// LetterColumns names the per-letter table columns. Every column after the
// letter is numeric.
var LetterColumns = []string{"Letter", "Mistakes", "Per run", "Avg Latency (ms)"}

// LetterRows formats aggregates as LetterColumns rows, most mistakes first.
func LetterRows(aggs []model.LetterAggregate) [][]string {
	sorted := append([]model.LetterAggregate(nil), aggs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Mistakes == sorted[j].Mistakes {
			return sorted[i].Letter < sorted[j].Letter
		}
		return sorted[i].Mistakes > sorted[j].Mistakes
	})
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		perRun := 0.0
		if agg.Runs > 0 {
			perRun = float64(agg.Mistakes) / float64(agg.Runs)
		}
		rows = append(rows, []string{
			agg.Letter,
			fmt.Sprintf("%d", agg.Mistakes),
			fmt.Sprintf("%.2f", perRun),
			fmt.Sprintf("%.1f", avgLatency(agg)),
		})
	}
	return rows
}

// RenderLetterTable prints per-letter aggregates, most mistakes first.
func RenderLetterTable(w io.Writer, aggs []model.LetterAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No letter stats found.")
		return err
	}
	lines := append([]string{"Per-Letter"}, alignColumns(append([][]string{LetterColumns}, LetterRows(aggs)...))...)
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// alignColumns lays rows out in space-separated columns. The first column is
// left aligned and the rest are right aligned.
func alignColumns(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	if len(widths) == 0 {
		return nil
	}
	lines := make([]string, 0, len(rows))
	cells := make([]string, len(widths))
	for _, row := range rows {
		for i, width := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == 0 {
				cells[i] = runewidth.FillRight(cell, width)
			} else {
				cells[i] = runewidth.FillLeft(cell, width)
			}
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}
