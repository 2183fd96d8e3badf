// Package countmap provides a hash table from ordered keys to unboxed int
// values, built for counting and aggregation workloads such as term
// frequency tables.
package countmap

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"strings"
)

// Map is a hash table mapping keys to unboxed int values. Collisions are
// handled with singly linked chains over an entry arena; the bucket count
// is always a power of two and doubles once the load factor threshold is
// crossed.
//
// Map is not safe for concurrent use. Iterators are fail-fast: a structural
// change made while an iterator is live surfaces as
// ErrConcurrentModification on its next step.
type Map[K cmp.Ordered] struct {
	table[K]
}

// Entry is one key-value pair, as produced by the sorted-extraction
// helpers.
type Entry[K cmp.Ordered] struct {
	Key   K
	Value int
}

type Option[K cmp.Ordered] func(m *Map[K])

// Override default hash function.
func WithHashFunc[K cmp.Ordered](f HashFunc[K]) Option[K] {
	return func(m *Map[K]) {
		m.hashFunc = f
	}
}

// Override the default load factor (0.75).
func WithLoadFactor[K cmp.Ordered](f float64) Option[K] {
	return func(m *Map[K]) {
		m.loadFactor = f
	}
}

// New returns an empty map. capacity is rounded up to a power of two;
// zero means DefaultCapacity. A negative capacity or a non-positive or NaN
// load factor is a construction error.
func New[K cmp.Ordered](capacity int, opts ...Option[K]) (*Map[K], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}

	m := &Map[K]{}
	m.loadFactor = DefaultLoadFactor

	for _, opt := range opts {
		opt(m)
	}

	if m.loadFactor <= 0 || math.IsNaN(m.loadFactor) {
		return nil, ErrInvalidLoadFactor
	}

	m.init(capacity)

	return m, nil
}

// NewFrom returns a copy of other with the default load factor and a
// capacity sized to hold its mappings without resizing. The hash function
// is shared with other; keys and values are copied, entries are not.
func NewFrom[K cmp.Ordered](other *Map[K]) *Map[K] {
	capacity := max(int(float64(other.size)/DefaultLoadFactor)+1, DefaultCapacity)

	m := &Map[K]{}
	m.loadFactor = DefaultLoadFactor
	m.hashFunc = other.hashFunc
	m.init(capacity)

	for _, head := range other.buckets {
		for idx := head; idx != noEntry; idx = other.entries[idx].next {
			e := &other.entries[idx]
			m.putForCreate(e.key, e.value)
		}
	}

	return m
}

// FromEntries builds a map from a sequence of pairs through the bulk
// create path: the bucket store is sized once and entries are linked with
// no growth checks and no fail-fast bookkeeping. A collaborator that
// persisted capacity, size and pairs in traversal order reconstructs the
// map through here.
func FromEntries[K cmp.Ordered](capacity int, seq iter.Seq2[K, int]) (*Map[K], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}

	m := &Map[K]{}
	m.loadFactor = DefaultLoadFactor
	m.init(capacity)

	for k, v := range seq {
		m.putForCreate(k, v)
	}

	return m, nil
}

// Size returns the number of live entries.
func (m *Map[K]) Size() int {
	return m.size
}

func (m *Map[K]) IsEmpty() bool {
	return m.size == 0
}

// Get returns the value mapped to key. All integers are valid values, so
// absence is reported through the second result rather than a sentinel.
func (m *Map[K]) Get(key K) (int, bool) {
	return m.get(key)
}

func (m *Map[K]) ContainsKey(key K) bool {
	_, ok := m.get(key)
	return ok
}

// ContainsValue reports whether any entry holds value. Costs a full
// traversal.
func (m *Map[K]) ContainsValue(value int) bool {
	return m.containsValue(value)
}

// Put maps key to value, overwriting any previous value in place.
// Overwriting is not a structural change: it neither grows the table nor
// invalidates live iterators.
func (m *Map[K]) Put(key K, value int) {
	m.put(key, value)
}

// Remove deletes key's entry and returns the value it held.
func (m *Map[K]) Remove(key K) (int, bool) {
	return m.removeKey(key)
}

// RemoveMapping deletes key's entry only if it currently holds value, and
// reports whether it did. External collection views use this to drop an
// exact pair without clobbering an intervening overwrite.
func (m *Map[K]) RemoveMapping(key K, value int) bool {
	return m.removeMapping(key, value)
}

// PutAll copies every mapping of other into m, overwriting shared keys.
// Performs at most one resize up front.
func (m *Map[K]) PutAll(other *Map[K]) {
	m.putAll(&other.table)
}

// Clear removes every entry. Capacity is retained.
func (m *Map[K]) Clear() {
	m.clear()
}

// Capacity returns the current bucket count.
func (m *Map[K]) Capacity() int {
	return len(m.buckets)
}

func (m *Map[K]) LoadFactor() float64 {
	return m.loadFactor
}

// String renders the map as {k1=v1, k2=v2, ...} in traversal order.
func (m *Map[K]) String() string {
	if m.size == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteByte('{')

	first := true
	it := m.Iterate()
	for it.Next() {
		if !first {
			sb.WriteString(", ")
		}
		first = false

		fmt.Fprintf(&sb, "%v=%d", it.Key(), it.Value())
	}

	sb.WriteByte('}')

	return sb.String()
}
