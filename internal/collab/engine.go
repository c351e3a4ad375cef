// Package collab predicts ratings for a user from the ratings of similar users.
package collab

import (
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/picks/internal/ratings"
)

// Prediction is one unrated item with its similarity-weighted score.
type Prediction struct {
	ItemID int
	Score  float64
}

// Engine answers user-based collaborative queries over an immutable rating
// snapshot. Queries are read-only and safe for concurrent use.
//
// Known limitation, kept deliberately: user similarity treats a missing
// rating as 0 in the vector algebra, which biases similarity toward users
// who overlap on the same few items. "Unrated" is still tracked as absence,
// so an explicit 0 rating excludes the item from a user's candidates.
type Engine struct {
	table *ratings.Table
}

// NewEngine wraps a rating table. The table must not be mutated afterward.
func NewEngine(t *ratings.Table) *Engine {
	return &Engine{table: t}
}

// Recommend predicts scores for every item the target user has not rated
// and returns the top-n, descending by score. Ties break toward the lower
// item id. An unknown user id returns an empty result; a negative n returns
// every scored item.
//
// For each candidate item the score is the similarity-weighted mean of the
// ratings given by users with a nonzero rating for it. Items where no such
// rater carries positive similarity weight are omitted rather than scored.
func (e *Engine) Recommend(userID, n int) []Prediction {
	target, ok := e.table.UserRatings(userID)
	if !ok {
		return nil
	}

	users := e.table.Users()
	sims := e.similarities(userID, target, users)

	var preds []Prediction
	for _, itemID := range e.table.Items() {
		if _, rated := target[itemID]; rated {
			continue
		}

		num, den := 0.0, 0.0
		for i, u := range users {
			if u == userID {
				continue
			}
			other, _ := e.table.UserRatings(u)
			v, rated := other[itemID]
			if !rated || v == 0 {
				continue
			}
			num += float64(v) * sims[i]
			den += sims[i]
		}
		if den > 0 {
			preds = append(preds, Prediction{ItemID: itemID, Score: num / den})
		}
	}

	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Score > preds[j].Score
	})

	if n >= 0 && len(preds) > n {
		preds = preds[:n]
	}
	return preds
}

// similarities computes cosine similarity between the target user and every
// user in users, index-aligned with users. Per-user computations are
// independent, so they fan out across CPUs; the output order is fixed by
// the users slice, keeping results deterministic.
func (e *Engine) similarities(userID int, target map[int]int, users []int) []float64 {
	sims := make([]float64, len(users))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, u := range users {
		if u == userID {
			continue // self-similarity is never used
		}
		other, _ := e.table.UserRatings(u)
		g.Go(func() error {
			sims[i] = cosine(target, other)
			return nil
		})
	}
	g.Wait() // no worker returns an error

	return sims
}

// cosine compares two sparse rating vectors with missing entries taken as 0.
// Only overlapping items contribute to the dot product; each norm spans the
// user's full vector. Either user having zero norm yields 0.
func cosine(a, b map[int]int) float64 {
	dot := 0.0
	for itemID, va := range a {
		if vb, ok := b[itemID]; ok {
			dot += float64(va) * float64(vb)
		}
	}

	na, nb := 0.0, 0.0
	for _, v := range a {
		na += float64(v) * float64(v)
	}
	for _, v := range b {
		nb += float64(v) * float64(v)
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
