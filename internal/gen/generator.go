// Package gen synthesizes a plausible sparse rating table for a catalog.
package gen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/abelbrown/picks/internal/ratings"
)

// Config controls rating generation.
type Config struct {
	// MinPerItem and MaxPerItem bound the target rating count drawn for each
	// item (inclusive range). The actual count can fall short when the
	// eligible user pool runs dry.
	MinPerItem int
	MaxPerItem int

	// Weights is the relative sampling weight for each rating value 0..5.
	// Weights need not sum to 1.
	Weights [ratings.MaxValue + 1]float64

	// MaxPerUser caps how many distinct items one user may rate. It also
	// sizes the synthetic user universe: numItems * MaxPerUser users.
	MaxPerUser int
}

// DefaultConfig matches the distribution the rest of the system was tuned
// against: 0-80 ratings per item, skewed toward high ratings, 3 per user.
func DefaultConfig() Config {
	return Config{
		MinPerItem: 0,
		MaxPerItem: 80,
		Weights:    [6]float64{0.02, 0.08, 0.10, 0.15, 0.30, 0.35},
		MaxPerUser: 3,
	}
}

// WeightsFromSlice converts a configured weight slice to the fixed-size
// array Config carries. ok is false when the length does not match, in
// which case the defaults are returned unchanged.
func WeightsFromSlice(ws []float64) (w [ratings.MaxValue + 1]float64, ok bool) {
	w = DefaultConfig().Weights
	if len(ws) != len(w) {
		return w, false
	}
	copy(w[:], ws)
	return w, true
}

func (c Config) validate() error {
	if c.MinPerItem < 0 || c.MaxPerItem < c.MinPerItem {
		return fmt.Errorf("invalid per-item range [%d,%d]", c.MinPerItem, c.MaxPerItem)
	}
	if c.MaxPerUser < 1 {
		return fmt.Errorf("max ratings per user must be >= 1, got %d", c.MaxPerUser)
	}
	total := 0.0
	for i, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("negative weight %f for rating value %d", w, i)
		}
		total += w
	}
	if total == 0 {
		return fmt.Errorf("rating value weights sum to zero")
	}
	return nil
}

// Generate produces rating triples for the given catalog item ids.
//
// Items are processed in ascending id order. For each item a target count is
// drawn uniformly from [MinPerItem, MaxPerItem], then users are drawn
// uniformly from the currently eligible set: users below their MaxPerUser
// quota who have not yet rated this item. Each draw consumes one unit of the
// chosen user's capacity, so eligibility shrinks as the item fills. When the
// pool empties before the target is reached the item is simply under-filled.
//
// The rng is the only source of randomness; a fixed seed reproduces the
// table exactly. A nil or empty item list yields an empty table. Duplicate
// ids in the input are collapsed to one item.
func Generate(itemIDs []int, cfg Config, rng *rand.Rand) ([]ratings.Rating, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("generator config: %w", err)
	}

	seen := make(map[int]bool, len(itemIDs))
	ids := make([]int, 0, len(itemIDs))
	for _, id := range itemIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Ints(ids)

	numUsers := len(ids) * cfg.MaxPerUser
	capacity := make([]int, numUsers)
	for u := range capacity {
		capacity[u] = cfg.MaxPerUser
	}

	var out []ratings.Rating
	for _, itemID := range ids {
		target := cfg.MinPerItem + rng.Intn(cfg.MaxPerItem-cfg.MinPerItem+1)

		// Pool of eligible users for this item: anyone with capacity left.
		// A user leaves the pool the moment they are drawn, which also
		// guarantees they cannot rate the same item twice.
		pool := make([]int, 0, numUsers)
		for u := 0; u < numUsers; u++ {
			if capacity[u] > 0 {
				pool = append(pool, u)
			}
		}

		for drawn := 0; drawn < target && len(pool) > 0; drawn++ {
			i := rng.Intn(len(pool))
			user := pool[i]
			pool[i] = pool[len(pool)-1]
			pool = pool[:len(pool)-1]

			capacity[user]--
			out = append(out, ratings.Rating{
				UserID: user,
				ItemID: itemID,
				Value:  sampleValue(cfg.Weights, rng),
			})
		}
	}
	return out, nil
}

// sampleValue draws one rating value 0..5 from the weighted distribution.
func sampleValue(weights [ratings.MaxValue + 1]float64, rng *rand.Rand) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	r := rng.Float64() * total
	for v, w := range weights {
		r -= w
		if r < 0 {
			return v
		}
	}
	return ratings.MaxValue // float round-off lands on the last value
}
