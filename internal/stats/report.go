package stats

import (
	"context"

	"github.com/verte-zerg/tuiabc/internal/model"
	"github.com/verte-zerg/tuiabc/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Results    []model.ResultAggregate
	LetterAggs []model.LetterAggregate
	Weak       []string
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, weakTop int) (Report, error) {
	results, err := st.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	ids := make([]int64, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	aggs, err := st.ListLetterAggregates(ctx, ids)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Results:    results,
		LetterAggs: aggs,
		Weak:       SelectWeakLetters(aggs, weakTop),
	}, nil
}
