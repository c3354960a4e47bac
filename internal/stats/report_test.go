package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tuiabc/internal/model"
	"github.com/verte-zerg/tuiabc/internal/store"
)

func seededStore(t *testing.T) (*store.Store, []int64) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "tuiabc.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(13 * time.Second)
		result := model.Result{
			StartedAt:  start,
			EndedAt:    end,
			DurationMs: end.Sub(start).Milliseconds(),
			Mistakes:   i,
			Sound:      "off",
		}
		letters := []model.LetterStats{
			{Letter: "q", Mistakes: i},
			{Letter: "x", Mistakes: 1, LatencyMs: 400, LatencyCount: 1},
		}
		id, err := st.InsertResult(ctx, result, letters)
		if err != nil {
			t.Fatalf("insert result: %v", err)
		}
		ids = append(ids, id)
	}
	return st, ids
}

func TestBuildReport(t *testing.T) {
	st, ids := seededStore(t)

	report, err := BuildReport(context.Background(), st, model.StatsConfig{Last: 2}, 1)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].ID != ids[1] || report.Results[1].ID != ids[2] {
		t.Fatalf("unexpected result ids: %+v", report.Results)
	}
	if len(report.LetterAggs) != 2 {
		t.Fatalf("expected 2 letter aggregates, got %d", len(report.LetterAggs))
	}
	// q: 3 mistakes over 2 runs beats x: 2 over 2.
	if len(report.Weak) != 1 || report.Weak[0] != "q" {
		t.Fatalf("unexpected weak letters: %v", report.Weak)
	}
}

func TestExportYAML(t *testing.T) {
	st, _ := seededStore(t)
	report, err := BuildReport(context.Background(), st, model.StatsConfig{}, 0)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportYAML(&buf, report); err != nil {
		t.Fatalf("export: %v", err)
	}
	var doc exportDoc
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if len(doc.Runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(doc.Runs))
	}
	if doc.Runs[0].LPM != 120 {
		t.Fatalf("expected 120 letters/min for a 13s run, got %v", doc.Runs[0].LPM)
	}
	if !strings.Contains(buf.String(), "run_id: ") {
		t.Fatalf("expected run ids in export:\n%s", buf.String())
	}
}
