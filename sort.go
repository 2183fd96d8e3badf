package countmap

import (
	"cmp"
	"slices"
)

// EntriesSortedByValue returns every entry ordered by value descending,
// ties broken by ascending key. An empty map yields an empty slice.
func (m *Map[K]) EntriesSortedByValue() []Entry[K] {
	entries := m.collect()
	slices.SortFunc(entries, func(a, b Entry[K]) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}

		return cmp.Compare(a.Key, b.Key)
	})

	return entries
}

// TopByValue returns the first n entries of EntriesSortedByValue, or all of
// them when the map holds fewer than n.
func (m *Map[K]) TopByValue(n int) []Entry[K] {
	return prefix(m.EntriesSortedByValue(), n)
}

// EntriesSortedByKey returns every entry ordered by ascending key. An empty
// map yields an empty slice.
func (m *Map[K]) EntriesSortedByKey() []Entry[K] {
	entries := m.collect()
	slices.SortFunc(entries, func(a, b Entry[K]) int {
		return cmp.Compare(a.Key, b.Key)
	})

	return entries
}

// TopByKey returns the first n entries of EntriesSortedByKey, or all of
// them when the map holds fewer than n.
func (m *Map[K]) TopByKey(n int) []Entry[K] {
	return prefix(m.EntriesSortedByKey(), n)
}

// collect materializes the live entries in traversal order.
func (m *Map[K]) collect() []Entry[K] {
	entries := make([]Entry[K], 0, m.size)
	for _, head := range m.buckets {
		for idx := head; idx != noEntry; idx = m.entries[idx].next {
			e := &m.entries[idx]
			entries = append(entries, Entry[K]{Key: e.key, Value: e.value})
		}
	}

	return entries
}

func prefix[K cmp.Ordered](entries []Entry[K], n int) []Entry[K] {
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}

	return entries[:n]
}
