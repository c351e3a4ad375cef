package collab

import (
	"math"
	"testing"

	"github.com/abelbrown/picks/internal/ratings"
)

func TestRecommendSingleRaterIdentity(t *testing.T) {
	// User 1 is the only rater of item 20 and shares item 10 with the
	// target, so the prediction must equal user 1's rating exactly.
	table := ratings.NewTable([]ratings.Rating{
		{UserID: 0, ItemID: 10, Value: 5},
		{UserID: 1, ItemID: 10, Value: 4},
		{UserID: 1, ItemID: 20, Value: 3},
	})

	preds := NewEngine(table).Recommend(0, 5)
	if len(preds) != 1 {
		t.Fatalf("expected 1 prediction, got %d", len(preds))
	}
	if preds[0].ItemID != 20 {
		t.Fatalf("expected item 20, got %d", preds[0].ItemID)
	}
	if math.Abs(preds[0].Score-3.0) > 1e-12 {
		t.Errorf("single-rater prediction should equal the rating 3, got %f", preds[0].Score)
	}
}

func TestRecommendUnknownUser(t *testing.T) {
	table := ratings.NewTable([]ratings.Rating{{UserID: 0, ItemID: 1, Value: 5}})

	if preds := NewEngine(table).Recommend(42, 5); len(preds) != 0 {
		t.Errorf("unknown user should yield empty result, got %d predictions", len(preds))
	}
}

func TestRecommendNoUnratedItems(t *testing.T) {
	// The target has rated everything in the table.
	table := ratings.NewTable([]ratings.Rating{
		{UserID: 0, ItemID: 1, Value: 5},
		{UserID: 0, ItemID: 2, Value: 3},
		{UserID: 1, ItemID: 1, Value: 4},
	})

	if preds := NewEngine(table).Recommend(0, 5); len(preds) != 0 {
		t.Errorf("expected empty prediction list, got %d", len(preds))
	}
}

func TestRecommendOmitsItemsWithoutWeight(t *testing.T) {
	// User 1 rated item 20 but shares nothing with the target, so the
	// similarity is 0 and item 20 must be omitted, not scored 0.
	table := ratings.NewTable([]ratings.Rating{
		{UserID: 0, ItemID: 10, Value: 5},
		{UserID: 1, ItemID: 20, Value: 4},
	})

	if preds := NewEngine(table).Recommend(0, 5); len(preds) != 0 {
		t.Errorf("disjoint rater should contribute no predictions, got %d", len(preds))
	}
}

func TestRecommendWeightsTowardSimilarUsers(t *testing.T) {
	// User 1 mirrors the target's tastes; user 2 is nearly orthogonal.
	// The prediction for item 30 should land nearer user 1's rating.
	table := ratings.NewTable([]ratings.Rating{
		{UserID: 0, ItemID: 1, Value: 5},
		{UserID: 0, ItemID: 2, Value: 1},

		{UserID: 1, ItemID: 1, Value: 5},
		{UserID: 1, ItemID: 2, Value: 1},
		{UserID: 1, ItemID: 30, Value: 5},

		{UserID: 2, ItemID: 1, Value: 1},
		{UserID: 2, ItemID: 2, Value: 5},
		{UserID: 2, ItemID: 30, Value: 1},
	})

	preds := NewEngine(table).Recommend(0, 5)
	if len(preds) != 1 {
		t.Fatalf("expected 1 prediction, got %d", len(preds))
	}
	if preds[0].Score <= 3.0 {
		t.Errorf("prediction %f should lean toward the similar user's rating 5", preds[0].Score)
	}
}

func TestRecommendDeterministicTieBreak(t *testing.T) {
	// Items 20 and 30 get identical predictions; the lower id must come first.
	table := ratings.NewTable([]ratings.Rating{
		{UserID: 0, ItemID: 10, Value: 4},
		{UserID: 1, ItemID: 10, Value: 4},
		{UserID: 1, ItemID: 30, Value: 5},
		{UserID: 1, ItemID: 20, Value: 5},
	})

	preds := NewEngine(table).Recommend(0, 5)
	if len(preds) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(preds))
	}
	if preds[0].ItemID != 20 || preds[1].ItemID != 30 {
		t.Errorf("tie should break toward lower item id, got [%d,%d]", preds[0].ItemID, preds[1].ItemID)
	}
}

func TestRecommendTopNTruncation(t *testing.T) {
	table := ratings.NewTable([]ratings.Rating{
		{UserID: 0, ItemID: 1, Value: 5},
		{UserID: 1, ItemID: 1, Value: 5},
		{UserID: 1, ItemID: 2, Value: 5},
		{UserID: 1, ItemID: 3, Value: 4},
		{UserID: 1, ItemID: 4, Value: 3},
	})

	preds := NewEngine(table).Recommend(0, 2)
	if len(preds) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(preds))
	}
	if preds[0].Score < preds[1].Score {
		t.Errorf("predictions not descending: %f then %f", preds[0].Score, preds[1].Score)
	}
}

func TestSparseCosine(t *testing.T) {
	a := map[int]int{1: 3, 2: 4}
	b := map[int]int{1: 3, 2: 4}
	if got := cosine(a, b); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("identical vectors should have cosine 1, got %f", got)
	}

	disjoint := map[int]int{9: 5}
	if got := cosine(a, disjoint); got != 0 {
		t.Errorf("disjoint vectors should have cosine 0, got %f", got)
	}

	if got := cosine(a, map[int]int{}); got != 0 {
		t.Errorf("empty vector should have cosine 0, got %f", got)
	}
}
