package stats

import (
	"github.com/verte-zerg/vocadrill/internal/model"
)

// WeakWeights maps deck indices of the top weak items to a draw weight of
// 1 + failures*factor. Items not in the result keep the default weight.
func WeakWeights(pairs []model.WordPair, aggs []model.MissAggregate, top int, factor float64) map[int]float64 {
	weights := map[int]float64{}
	if len(pairs) == 0 || len(aggs) == 0 || factor <= 0 {
		return weights
	}
	weakest := TopMisses(aggs, len(aggs))
	if top > 0 && top < len(weakest) {
		weakest = weakest[:top]
	}
	failures := make(map[model.WordPair]int, len(weakest))
	for _, agg := range weakest {
		failures[model.WordPair{Word: agg.Word, Expected: agg.Expected}] = agg.Failures
	}
	for i, p := range pairs {
		if f, ok := failures[p]; ok && f > 0 {
			weights[i] = 1 + float64(f)*factor
		}
	}
	return weights
}
