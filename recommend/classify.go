package recommend

import (
	"cmp"
	"slices"

	"github.com/poiesic/unifinder/core"
)

// Classify splits results into strong (score >= threshold) and weak, each
// sorted by descending score. Equal scores keep their input order.
func Classify(results []*core.ScoredResult, threshold float64) (strong, weak []*core.ScoredResult) {
	strong = make([]*core.ScoredResult, 0, len(results))
	weak = make([]*core.ScoredResult, 0, len(results))
	for _, r := range results {
		if r.Score >= threshold {
			strong = append(strong, r)
		} else {
			weak = append(weak, r)
		}
	}

	byScoreDesc := func(a, b *core.ScoredResult) int {
		return cmp.Compare(b.Score, a.Score)
	}
	slices.SortStableFunc(strong, byScoreDesc)
	slices.SortStableFunc(weak, byScoreDesc)
	return strong, weak
}
