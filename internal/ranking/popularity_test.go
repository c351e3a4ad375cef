package ranking

import (
	"math"
	"testing"

	"github.com/abelbrown/picks/internal/ratings"
)

func TestTopWorkedExample(t *testing.T) {
	// A has overwhelming evidence, B sits below the popularity floor.
	sums := []ratings.Summary{
		{ItemID: 1, R: 5, V: 100},
		{ItemID: 2, R: 3, V: 5},
	}

	ranked := Top(sums, 5)
	if len(ranked) != 1 {
		t.Fatalf("expected only the qualified item, got %d results", len(ranked))
	}
	if ranked[0].ItemID != 1 {
		t.Fatalf("expected item 1, got %d", ranked[0].ItemID)
	}

	// C = (5+3)/2 = 4; A's weighted rating is pulled from 5 toward 4 but
	// stays much closer to 5 given v >> m.
	if ranked[0].Weighted <= 4.0 || ranked[0].Weighted >= 5.0 {
		t.Errorf("expected weighted rating strictly between C=4 and R=5, got %f", ranked[0].Weighted)
	}
	if 5.0-ranked[0].Weighted > ranked[0].Weighted-4.0 {
		t.Errorf("weighted rating %f should sit closer to R=5 than to C=4", ranked[0].Weighted)
	}
}

func TestWeightedRatingBetweenRAndC(t *testing.T) {
	th := Thresholds{C: 4.0, M: 50}

	tests := []struct {
		r float64
		v int
	}{
		{5, 1}, {5, 50}, {5, 10000}, {1, 3}, {1, 500}, {4, 7},
	}

	for _, tt := range tests {
		w := WeightedRating(tt.r, tt.v, th)
		lo, hi := math.Min(tt.r, th.C), math.Max(tt.r, th.C)
		if w < lo || w > hi {
			t.Errorf("WeightedRating(R=%f, v=%d) = %f, outside [%f,%f]", tt.r, tt.v, w, lo, hi)
		}
	}
}

func TestTopEqualVotesRankByOwnMean(t *testing.T) {
	// With identical v the shrinkage term is identical for every item, so
	// the ranking must reduce to ordering by R.
	sums := []ratings.Summary{
		{ItemID: 1, R: 2.0, V: 10},
		{ItemID: 2, R: 4.5, V: 10},
		{ItemID: 3, R: 3.0, V: 10},
	}

	ranked := Top(sums, -1)
	if len(ranked) != 3 {
		t.Fatalf("all items share v=m, all should qualify; got %d", len(ranked))
	}

	want := []int{2, 3, 1}
	for i, id := range want {
		if ranked[i].ItemID != id {
			t.Errorf("position %d: expected item %d, got %d", i, id, ranked[i].ItemID)
		}
	}
}

func TestTopQualifiedFloor(t *testing.T) {
	sums := []ratings.Summary{
		{ItemID: 1, R: 5, V: 1},
		{ItemID: 2, R: 5, V: 2},
		{ItemID: 3, R: 5, V: 3},
		{ItemID: 4, R: 5, V: 4},
		{ItemID: 5, R: 5, V: 100},
	}

	th, ok := ComputeThresholds(sums)
	if !ok {
		t.Fatal("thresholds should exist")
	}

	for _, r := range Top(sums, -1) {
		if float64(r.V) < th.M {
			t.Errorf("item %d with v=%d ranked despite floor m=%f", r.ItemID, r.V, th.M)
		}
	}
}

func TestTopEmptySummaries(t *testing.T) {
	if got := Top(nil, 5); len(got) != 0 {
		t.Errorf("expected empty ranking for empty input, got %d", len(got))
	}
	if _, ok := ComputeThresholds(nil); ok {
		t.Error("expected ok=false for empty summaries")
	}
}

func TestTopStableTieBreak(t *testing.T) {
	// Identical (R, v) everywhere: every weighted rating ties, so the input
	// order must be preserved.
	sums := []ratings.Summary{
		{ItemID: 30, R: 4, V: 10},
		{ItemID: 10, R: 4, V: 10},
		{ItemID: 20, R: 4, V: 10},
	}

	ranked := Top(sums, -1)
	want := []int{30, 10, 20}
	for i, id := range want {
		if ranked[i].ItemID != id {
			t.Errorf("position %d: expected item %d, got %d", i, id, ranked[i].ItemID)
		}
	}
}

func TestWeightedRatingDegenerate(t *testing.T) {
	th := Thresholds{C: 3.3, M: 0}
	if got := WeightedRating(4, 0, th); got != th.C {
		t.Errorf("v+m=0 should fall back to C=%f, got %f", th.C, got)
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"empty", nil, 0.9, 0},
		{"single value", []float64{7}, 0.9, 7},
		{"two values p90", []float64{5, 100}, 0.9, 90.5},
		{"median of three", []float64{3, 1, 2}, 0.5, 2},
		{"max", []float64{1, 2, 3}, 1.0, 3},
		{"min", []float64{1, 2, 3}, 0.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentile(tt.values, tt.q)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("percentile(%v, %f) = %f, want %f", tt.values, tt.q, got, tt.want)
			}
		})
	}
}
