package deck

import "github.com/verte-zerg/vocadrill/internal/model"

// FilterFunc returns true when a parsed pair should be kept.
type FilterFunc func(model.WordPair) bool

// Complete keeps pairs with both a word and an expected value.
func Complete(p model.WordPair) bool {
	return p.Word != "" && p.Expected != "" && p.Expected != `""`
}

func keep(p model.WordPair, filters []FilterFunc) bool {
	for _, f := range filters {
		if !f(p) {
			return false
		}
	}
	return true
}
