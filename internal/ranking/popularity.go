// Package ranking orders catalog items by Bayesian-weighted popularity.
package ranking

import (
	"math"
	"sort"

	"github.com/abelbrown/picks/internal/ratings"
)

// RankedItem is one row of a popularity ranking.
type RankedItem struct {
	ItemID   int
	Weighted float64 // shrinkage-adjusted rating
	R        float64 // the item's own mean rating
	V        int     // vote count
}

// Thresholds are the global statistics the weighting blends against.
type Thresholds struct {
	C float64 // mean of R across all summarized items (the prior)
	M float64 // 90th percentile of vote counts (the popularity floor)
}

// ComputeThresholds derives C and M from per-item summaries.
// An empty summary set yields zero thresholds and ok=false.
func ComputeThresholds(sums []ratings.Summary) (Thresholds, bool) {
	if len(sums) == 0 {
		return Thresholds{}, false
	}

	totalR := 0.0
	votes := make([]float64, len(sums))
	for i, s := range sums {
		totalR += s.R
		votes[i] = float64(s.V)
	}

	return Thresholds{
		C: totalR / float64(len(sums)),
		M: percentile(votes, 0.90),
	}, true
}

// WeightedRating blends an item's own mean with the global prior in
// proportion to its vote count: few votes regress toward C, many votes
// converge to R. v+m == 0 degenerates to the prior.
func WeightedRating(r float64, v int, th Thresholds) float64 {
	fv := float64(v)
	if fv+th.M == 0 {
		return th.C
	}
	return (fv/(fv+th.M))*r + (th.M/(fv+th.M))*th.C
}

// Top ranks the summarized items by weighted rating and returns at most n.
//
// Items below the popularity floor (v < m) are excluded before ranking, even
// when their weighted rating would place them high: near-zero-evidence items
// never qualify. Ties keep the input summary order (stable sort). An empty
// summary set returns an empty ranking; a negative n returns the whole
// qualified set.
func Top(sums []ratings.Summary, n int) []RankedItem {
	th, ok := ComputeThresholds(sums)
	if !ok {
		return nil
	}

	qualified := make([]RankedItem, 0, len(sums))
	for _, s := range sums {
		if float64(s.V) < th.M {
			continue
		}
		qualified = append(qualified, RankedItem{
			ItemID:   s.ItemID,
			Weighted: WeightedRating(s.R, s.V, th),
			R:        s.R,
			V:        s.V,
		})
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Weighted > qualified[j].Weighted
	})

	if n >= 0 && len(qualified) > n {
		qualified = qualified[:n]
	}
	return qualified
}

// percentile returns the q-th quantile (0..1) of values using linear
// interpolation between order statistics, matching the quantile definition
// the summary statistics were originally tuned with. values is not modified.
func percentile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
