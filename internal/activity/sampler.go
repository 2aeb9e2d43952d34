package activity

import (
	"math/rand"

	"github.com/petmall/opsdatagen/internal/promotion"
)

// sampleBoundedCount draws from a normal distribution, truncates to an
// integer and clamps into [min, max]. It never fails: a draw below min
// (including negative ones) clamps to min.
func sampleBoundedCount(r *rand.Rand, p promotion.SampleParams) int {
	n := int(r.NormFloat64()*p.StdDev + p.Mean)
	if n < p.Min {
		return p.Min
	}
	if n > p.Max {
		return p.Max
	}
	return n
}

// weightedCategory picks a category by cumulative-probability selection over
// the promotion type's weight table.
func weightedCategory(r *rand.Rand, weights []promotion.CategoryWeight) string {
	var total float64
	for _, w := range weights {
		total += w.Weight
	}

	target := r.Float64() * total
	var cumulative float64
	for _, w := range weights {
		cumulative += w.Weight
		if target < cumulative {
			return w.Category
		}
	}

	// Floating point slack lands on the last entry.
	return weights[len(weights)-1].Category
}
