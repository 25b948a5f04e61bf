// Package generator decides the order in which quiz items are asked.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces item orderings from a caller-owned random source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with seed. A zero seed uses the current time.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Order returns the indices 0..n-1 in random order.
func (g *Generator) Order(n int) []int {
	if n <= 0 {
		return nil
	}
	return g.rnd.Perm(n)
}

// Sample returns at most limit indices of a random order of n items.
// A non-positive limit keeps every item.
func (g *Generator) Sample(n, limit int) []int {
	return truncate(g.Order(n), limit)
}

// SampleWeighted is Sample drawn with OrderWeighted.
func (g *Generator) SampleWeighted(n, limit int, weights map[int]float64) []int {
	return truncate(g.OrderWeighted(n, weights), limit)
}

func truncate(order []int, limit int) []int {
	if limit > 0 && len(order) > limit {
		return order[:limit]
	}
	return order
}

// OrderWeighted returns 0..n-1 in an order drawn without replacement, where
// each item's chance of coming next is proportional to its weight. Items
// without a weight count as 1.
func (g *Generator) OrderWeighted(n int, weights map[int]float64) []int {
	if n <= 0 {
		return nil
	}
	pool := make([]int, n)
	w := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		pool[i] = i
		w[i] = 1.0
		if v, ok := weights[i]; ok && v > 0 {
			w[i] = v
		}
		total += w[i]
	}

	result := make([]int, 0, n)
	for len(pool) > 0 {
		r := g.rnd.Float64() * total
		acc := 0.0
		pick := len(pool) - 1
		for j := range pool {
			acc += w[j]
			if r < acc {
				pick = j
				break
			}
		}
		result = append(result, pool[pick])
		total -= w[pick]
		pool = append(pool[:pick], pool[pick+1:]...)
		w = append(w[:pick], w[pick+1:]...)
	}
	return result
}
