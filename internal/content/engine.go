// Package content ranks catalog items by feature-space cosine similarity.
package content

import (
	"math"
	"sort"

	"github.com/abelbrown/picks/internal/catalog"
)

// Match is one similar item with its cosine score.
type Match struct {
	ItemID     int
	Similarity float64
}

// selfSentinel replaces the reference item's own score so it can never be
// returned while row indexes stay aligned with the catalog.
const selfSentinel = -1.0

// Engine answers "items like this one" queries over normalized catalog
// features. Construction does all preprocessing; queries are read-only and
// safe for concurrent use.
type Engine struct {
	table    *catalog.Table
	features [][]float64 // min-max normalized, row-aligned with table
}

// NewEngine preprocesses the catalog feature matrix: missing (NaN) values
// are imputed with the column mean, then each column is min-max normalized
// independently. A column with no spread (max == min) contributes a constant
// 0 to every vector.
func NewEngine(t *catalog.Table) *Engine {
	features := t.FeatureMatrix()
	means := t.FeatureMeans()
	cols := len(catalog.FeatureNames)

	for _, row := range features {
		for j := 0; j < cols; j++ {
			if math.IsNaN(row[j]) {
				row[j] = means[j]
			}
		}
	}

	for j := 0; j < cols; j++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, row := range features {
			lo = math.Min(lo, row[j])
			hi = math.Max(hi, row[j])
		}
		for _, row := range features {
			if hi == lo {
				row[j] = 0
				continue
			}
			row[j] = (row[j] - lo) / (hi - lo)
		}
	}

	return &Engine{table: t, features: features}
}

// Similar returns the top-n catalog items most similar to the reference
// item, descending by cosine similarity. Ties keep catalog order. The
// reference item itself is never included. An unknown reference id returns
// an empty result; a negative n returns every other item ranked.
func (e *Engine) Similar(itemID, n int) []Match {
	refIdx, ok := e.table.Index(itemID)
	if !ok {
		return nil
	}

	ref := e.features[refIdx]
	matches := make([]Match, len(e.features))
	for i, row := range e.features {
		sim := cosine(ref, row)
		if i == refIdx {
			sim = selfSentinel
		}
		matches[i] = Match{ItemID: e.table.Items()[i].ID, Similarity: sim}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	// The sentinel sorts last, so dropping one row removes the reference.
	matches = matches[:len(matches)-1]
	if n >= 0 && len(matches) > n {
		matches = matches[:n]
	}
	return matches
}

// cosine is the normalized dot product of two equal-length vectors.
// Either vector having zero norm yields similarity 0.
func cosine(a, b []float64) float64 {
	dot, na, nb := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
