package ordinal

import "sort"

// Item is an element of an ordered collection.
type Item struct {
	ID      string
	Ordinal int
}

// Apply returns a copy of items with the shift applied to the item whose ID
// is movedID, together with the number of items whose ordinal changed.
// The input slice is not modified.
func Apply(items []Item, movedID string, s Shift) ([]Item, int) {
	out := make([]Item, len(items))
	changed := 0
	for i, it := range items {
		next := s.Next(it.Ordinal, it.ID == movedID)
		if next != it.Ordinal {
			changed++
		}
		out[i] = Item{ID: it.ID, Ordinal: next}
	}
	return out, changed
}

// Sorted returns the item IDs ordered by ordinal, which is how clients
// derive display order.
func Sorted(items []Item) []string {
	cp := make([]Item, len(items))
	copy(cp, items)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Ordinal < cp[j].Ordinal })

	ids := make([]string, len(cp))
	for i, it := range cp {
		ids[i] = it.ID
	}
	return ids
}
