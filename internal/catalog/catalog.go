// Package catalog holds the immutable laptop table that every recommender reads.
package catalog

import "math"

// Item is one catalog row. Loaded once, read-only thereafter.
// Cores is NaN when the upstream cleaning pipeline has not imputed it yet;
// consumers that cannot tolerate NaN must impute before computing.
type Item struct {
	ID            int
	Title         string
	Price         float64
	StorageGB     float64
	MemoryGB      float64
	MemoryType    string // categorical, informational only
	DisplayInches float64
	Cores         float64
}

// FeatureNames lists the numeric feature columns in matrix order.
var FeatureNames = []string{"price", "storage_gb", "memory_gb", "display_inches", "cores"}

// Features returns the item's numeric feature vector in FeatureNames order.
func (it Item) Features() []float64 {
	return []float64{it.Price, it.StorageGB, it.MemoryGB, it.DisplayInches, it.Cores}
}

// Table is an immutable, index-aligned view of the catalog.
// Row order is the order items were loaded in; ids need not be contiguous.
// NOT safe to mutate after construction; all readers share one instance.
type Table struct {
	items []Item
	byID  map[int]int // item id -> row index
}

// NewTable builds a Table from a slice of items. The slice is copied.
// If an id appears twice the first row wins; later rows are dropped.
func NewTable(items []Item) *Table {
	t := &Table{
		items: make([]Item, 0, len(items)),
		byID:  make(map[int]int, len(items)),
	}
	for _, it := range items {
		if _, seen := t.byID[it.ID]; seen {
			continue
		}
		t.byID[it.ID] = len(t.items)
		t.items = append(t.items, it)
	}
	return t
}

// Len returns the number of catalog rows.
func (t *Table) Len() int { return len(t.items) }

// Items returns the underlying rows. Callers must treat the slice as read-only.
func (t *Table) Items() []Item { return t.items }

// Get returns the item with the given id, if present.
func (t *Table) Get(id int) (Item, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Item{}, false
	}
	return t.items[i], true
}

// Index returns the row index for an item id, if present.
func (t *Table) Index(id int) (int, bool) {
	i, ok := t.byID[id]
	return i, ok
}

// IDs returns the item ids in row order.
func (t *Table) IDs() []int {
	ids := make([]int, len(t.items))
	for i, it := range t.items {
		ids[i] = it.ID
	}
	return ids
}

// FeatureMatrix returns one numeric feature row per item, row-aligned with
// Items(). The matrix is freshly allocated on every call.
func (t *Table) FeatureMatrix() [][]float64 {
	m := make([][]float64, len(t.items))
	for i, it := range t.items {
		m[i] = it.Features()
	}
	return m
}

// FeatureMeans returns the per-column mean of the feature matrix, ignoring
// NaN entries. A column that is all-NaN yields mean 0.
func (t *Table) FeatureMeans() []float64 {
	means := make([]float64, len(FeatureNames))
	for j := range FeatureNames {
		sum, n := 0.0, 0
		for _, it := range t.items {
			v := it.Features()[j]
			if math.IsNaN(v) {
				continue
			}
			sum += v
			n++
		}
		if n > 0 {
			means[j] = sum / float64(n)
		}
	}
	return means
}
