package model

import "sort"

// The furniture inventory is a multiset with two serialization views: the
// expanded list of repeats used in memory, and the compressed name->count
// form used by the inventory table. The views are chosen only at the
// persistence boundary.

// CompressInventory collapses a multiset into per-name quantities.
func CompressInventory(items []ItemName) map[ItemName]int {
	counts := make(map[ItemName]int, len(items))
	for _, name := range items {
		counts[name]++
	}
	return counts
}

// ExpandInventory repeats each name quantity times. Names are emitted in
// sorted order so a load is deterministic; the multiset itself is
// order-independent.
func ExpandInventory(counts map[ItemName]int) []ItemName {
	names := make([]ItemName, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	var items []ItemName
	for _, name := range names {
		for i := 0; i < counts[name]; i++ {
			items = append(items, name)
		}
	}
	return items
}
