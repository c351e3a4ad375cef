// Package ratings models the sparse user-item rating table and its
// derived per-item summaries.
package ratings

import (
	"sort"

	"github.com/abelbrown/picks/internal/catalog"
)

// MaxValue is the highest rating a user can give. Values range 0..MaxValue.
const MaxValue = 5

// Rating is one (user, item, value) triple. Immutable once generated.
type Rating struct {
	UserID int
	ItemID int
	Value  int
}

// Table is an immutable snapshot of the rating table.
// "Unrated" is modeled as absence from the per-user map, never as a zero
// entry, so an explicit rating of 0 stays distinguishable from no rating.
type Table struct {
	rows   []Rating
	byUser map[int]map[int]int // user id -> item id -> value
	items  map[int]struct{}
}

// NewTable builds a Table from rating triples. The slice is copied.
// If a (user, item) pair appears twice the first triple wins.
func NewTable(rows []Rating) *Table {
	t := &Table{
		rows:   make([]Rating, 0, len(rows)),
		byUser: make(map[int]map[int]int),
		items:  make(map[int]struct{}),
	}
	for _, r := range rows {
		m := t.byUser[r.UserID]
		if m == nil {
			m = make(map[int]int)
			t.byUser[r.UserID] = m
		}
		if _, dup := m[r.ItemID]; dup {
			continue
		}
		m[r.ItemID] = r.Value
		t.items[r.ItemID] = struct{}{}
		t.rows = append(t.rows, r)
	}
	return t
}

// Len returns the number of rating triples.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the rating triples in insertion order. Read-only.
func (t *Table) Rows() []Rating { return t.rows }

// Users returns all user ids that appear in the table, ascending.
func (t *Table) Users() []int {
	ids := make([]int, 0, len(t.byUser))
	for id := range t.byUser {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Items returns all item ids that have at least one rating, ascending.
func (t *Table) Items() []int {
	ids := make([]int, 0, len(t.items))
	for id := range t.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// UserRatings returns the item->value map for a user, or ok=false if the
// user never rated anything. Callers must treat the map as read-only.
func (t *Table) UserRatings(userID int) (map[int]int, bool) {
	m, ok := t.byUser[userID]
	return m, ok
}

// Summary is the derived per-item rating statistic: mean R over V votes.
type Summary struct {
	ItemID int
	R      float64 // mean rating
	V      int     // vote count
}

// Aggregate reduces a rating table to per-item summaries, ordered by item id
// ascending. Items with zero ratings get no summary. The input table is not
// modified; calling Aggregate twice on the same table yields the same result.
func Aggregate(t *Table) []Summary {
	sums := make(map[int]int)
	counts := make(map[int]int)
	for _, r := range t.Rows() {
		sums[r.ItemID] += r.Value
		counts[r.ItemID]++
	}

	out := make([]Summary, 0, len(counts))
	for _, id := range t.Items() {
		out = append(out, Summary{
			ItemID: id,
			R:      float64(sums[id]) / float64(counts[id]),
			V:      counts[id],
		})
	}
	return out
}

// AugmentedItem is a catalog row joined with its average rating.
// AverageRating is nil when the item has no ratings; it is never imputed
// to zero at this layer.
type AugmentedItem struct {
	catalog.Item
	AverageRating *float64
}

// Augment joins catalog rows with per-item summaries, preserving catalog
// order. Items absent from the summaries keep a nil AverageRating.
func Augment(items []catalog.Item, sums []Summary) []AugmentedItem {
	byID := make(map[int]float64, len(sums))
	for _, s := range sums {
		byID[s.ItemID] = s.R
	}

	out := make([]AugmentedItem, len(items))
	for i, it := range items {
		out[i] = AugmentedItem{Item: it}
		if r, ok := byID[it.ID]; ok {
			avg := r
			out[i].AverageRating = &avg
		}
	}
	return out
}
