package stats

import (
	"sort"

	"github.com/verte-zerg/vocadrill/internal/model"
)

// TopMisses returns the n items with the most failures. Ties go to the item
// missed in more runs, then alphabetically by word.
func TopMisses(aggs []model.MissAggregate, n int) []model.MissAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.MissAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Failures != items[j].Failures {
			return items[i].Failures > items[j].Failures
		}
		if items[i].Runs != items[j].Runs {
			return items[i].Runs > items[j].Runs
		}
		if items[i].Word != items[j].Word {
			return items[i].Word < items[j].Word
		}
		return items[i].Expected < items[j].Expected
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
