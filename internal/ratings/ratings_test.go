package ratings

import (
	"testing"

	"github.com/abelbrown/picks/internal/catalog"
)

func TestAggregateCounts(t *testing.T) {
	table := NewTable([]Rating{
		{UserID: 0, ItemID: 1, Value: 4},
		{UserID: 1, ItemID: 1, Value: 2},
		{UserID: 2, ItemID: 1, Value: 3},
		{UserID: 0, ItemID: 2, Value: 5},
	})

	sums := Aggregate(table)
	if len(sums) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(sums))
	}

	// Ordered by item id ascending
	if sums[0].ItemID != 1 || sums[1].ItemID != 2 {
		t.Fatalf("expected items [1,2], got [%d,%d]", sums[0].ItemID, sums[1].ItemID)
	}
	if sums[0].V != 3 {
		t.Errorf("item 1: expected 3 votes, got %d", sums[0].V)
	}
	if sums[0].R != 3.0 {
		t.Errorf("item 1: expected mean 3.0, got %f", sums[0].R)
	}
	if sums[1].V != 1 || sums[1].R != 5.0 {
		t.Errorf("item 2: expected (R=5, v=1), got (R=%f, v=%d)", sums[1].R, sums[1].V)
	}
}

func TestAggregateVoteCountIdentity(t *testing.T) {
	rows := []Rating{
		{0, 10, 1}, {1, 10, 5}, {2, 20, 0}, {3, 20, 4}, {4, 20, 4}, {5, 30, 2},
	}
	table := NewTable(rows)

	perItem := make(map[int]int)
	for _, r := range rows {
		perItem[r.ItemID]++
	}

	for _, s := range Aggregate(table) {
		if s.V != perItem[s.ItemID] {
			t.Errorf("item %d: summary v=%d, raw count=%d", s.ItemID, s.V, perItem[s.ItemID])
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	table := NewTable([]Rating{
		{0, 1, 3}, {1, 1, 4}, {2, 2, 5},
	})

	first := Aggregate(table)
	second := Aggregate(table)

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("summary %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestTableRejectsDuplicatePairs(t *testing.T) {
	table := NewTable([]Rating{
		{UserID: 0, ItemID: 1, Value: 4},
		{UserID: 0, ItemID: 1, Value: 1}, // duplicate pair, first wins
	})

	if table.Len() != 1 {
		t.Fatalf("expected 1 row after dedup, got %d", table.Len())
	}
	m, ok := table.UserRatings(0)
	if !ok {
		t.Fatal("user 0 missing")
	}
	if m[1] != 4 {
		t.Errorf("expected first rating to win, got %d", m[1])
	}
}

func TestTableUnknownUser(t *testing.T) {
	table := NewTable([]Rating{{0, 1, 3}})
	if _, ok := table.UserRatings(99); ok {
		t.Error("expected ok=false for unknown user")
	}
}

func TestAugmentNilForUnrated(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Title: "rated"},
		{ID: 2, Title: "unrated"},
	}
	sums := []Summary{{ItemID: 1, R: 4.5, V: 2}}

	out := Augment(items, sums)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}

	if out[0].AverageRating == nil {
		t.Fatal("rated item should carry an average")
	}
	if *out[0].AverageRating != 4.5 {
		t.Errorf("expected average 4.5, got %f", *out[0].AverageRating)
	}
	if out[1].AverageRating != nil {
		t.Errorf("unrated item should have nil average, got %f", *out[1].AverageRating)
	}
}

func TestAugmentPreservesCatalogOrder(t *testing.T) {
	items := []catalog.Item{{ID: 9}, {ID: 3}, {ID: 7}}
	out := Augment(items, nil)

	for i, it := range items {
		if out[i].ID != it.ID {
			t.Errorf("row %d: expected id %d, got %d", i, it.ID, out[i].ID)
		}
	}
}
