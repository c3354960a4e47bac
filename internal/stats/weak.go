package stats

import (
	"sort"

	"github.com/verte-zerg/tuiabc/internal/model"
)

// SelectWeakLetters returns up to top letters with the most mistakes per run.
// Letters without mistakes are never weak.
func SelectWeakLetters(aggs []model.LetterAggregate, top int) []string {
	candidates := make([]model.LetterAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Mistakes > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ri := mistakeRate(candidates[i])
		rj := mistakeRate(candidates[j])
		if ri == rj {
			return candidates[i].Letter < candidates[j].Letter
		}
		return ri > rj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	out := make([]string, 0, top)
	for _, agg := range candidates[:top] {
		out = append(out, agg.Letter)
	}
	return out
}

func mistakeRate(agg model.LetterAggregate) float64 {
	if agg.Runs == 0 {
		return float64(agg.Mistakes)
	}
	return float64(agg.Mistakes) / float64(agg.Runs)
}
