package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuiabc/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "tuiabc.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertRun(t *testing.T, st *Store, i int, duration time.Duration, mistakes int) int64 {
	t.Helper()
	start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Minute)
	end := start.Add(duration)
	id, err := st.InsertResult(context.Background(), model.Result{
		StartedAt:  start,
		EndedAt:    end,
		DurationMs: duration.Milliseconds(),
		Mistakes:   mistakes,
		Sound:      "off",
	}, []model.LetterStats{
		{Letter: "a", Mistakes: mistakes, LatencyMs: 0, LatencyCount: 0},
		{Letter: "b", Mistakes: 0, LatencyMs: 300, LatencyCount: 1},
	})
	if err != nil {
		t.Fatalf("insert result: %v", err)
	}
	return id
}

func TestInsertAndListResults(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		ids = append(ids, insertRun(t, st, i, time.Duration(10+i)*time.Second, i))
	}

	all, err := st.ListResults(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 results, got %d", len(all))
	}
	for i, r := range all {
		if r.ID != ids[i] {
			t.Fatalf("unexpected order: %+v", all)
		}
		if len(r.RunID) != 26 {
			t.Fatalf("expected ULID run id, got %q", r.RunID)
		}
	}

	last, err := st.ListResults(ctx, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("list last results: %v", err)
	}
	if len(last) != 2 || last[0].ID != ids[1] {
		t.Fatalf("unexpected last results: %+v", last)
	}

	since := time.Unix(0, 0).UTC().Add(2 * time.Minute)
	recent, err := st.ListResults(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list recent results: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != ids[2] {
		t.Fatalf("unexpected recent results: %+v", recent)
	}
}

func TestBestDuration(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.BestDuration(ctx); err != nil || ok {
		t.Fatalf("expected no best duration, got ok=%v err=%v", ok, err)
	}
	insertRun(t, st, 0, 12*time.Second, 0)
	insertRun(t, st, 1, 9*time.Second, 2)
	best, ok, err := st.BestDuration(ctx)
	if err != nil || !ok {
		t.Fatalf("best duration: ok=%v err=%v", ok, err)
	}
	if best != 9*time.Second {
		t.Fatalf("expected 9s, got %v", best)
	}
}

func TestListLetterAggregates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id1 := insertRun(t, st, 0, 10*time.Second, 1)
	id2 := insertRun(t, st, 1, 10*time.Second, 3)

	aggs, err := st.ListLetterAggregates(ctx, []int64{id1, id2})
	if err != nil {
		t.Fatalf("list aggregates: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 letters, got %d", len(aggs))
	}
	if aggs[0].Letter != "a" || aggs[0].Mistakes != 4 || aggs[0].Runs != 2 {
		t.Fatalf("unexpected aggregate for a: %+v", aggs[0])
	}
	if aggs[1].LatencySumMs != 600 || aggs[1].LatencyCount != 2 {
		t.Fatalf("unexpected aggregate for b: %+v", aggs[1])
	}

	none, err := st.ListLetterAggregates(ctx, nil)
	if err != nil || none != nil {
		t.Fatalf("expected nil for no ids, got %v %v", none, err)
	}
}

func TestNewRunIDSortsByTime(t *testing.T) {
	early := NewRunID(time.Unix(100, 0))
	late := NewRunID(time.Unix(200, 0))
	if early >= late {
		t.Fatalf("expected %s < %s", early, late)
	}
}
