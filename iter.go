package countmap

import (
	"cmp"
	"iter"
)

// Iterator walks the map's live entries: buckets in ascending index order,
// then chain order within a bucket. There is no global ordering guarantee.
//
// The iterator snapshots the map's modification counter at creation and
// fails fast: once a structural change is made to the map, the next step
// stops with ErrConcurrentModification. This is a safety net against
// mutation during iteration in a single thread, not a concurrency
// primitive. The one mutation allowed mid-traversal is the iterator's own
// Remove.
type Iterator[K cmp.Ordered] struct {
	m        *Map[K]
	expected uint64

	bucket int   // next bucket to scan
	next   int32 // next entry to yield
	curr   int32 // last yielded entry, noEntry once removed

	key   K
	value int
	err   error
}

// Iterate returns a fail-fast iterator over the live entries. The iterator
// is not restartable.
func (m *Map[K]) Iterate() *Iterator[K] {
	it := &Iterator[K]{
		m:        m,
		expected: m.modCount,
		next:     noEntry,
		curr:     noEntry,
	}
	it.advanceBucket()

	return it
}

// advanceBucket moves next to the head of the first non-empty bucket at or
// after it.bucket, or leaves it at noEntry when the table is exhausted.
func (it *Iterator[K]) advanceBucket() {
	t := &it.m.table
	for it.bucket < len(t.buckets) {
		head := t.buckets[it.bucket]
		it.bucket++

		if head != noEntry {
			it.next = head
			return
		}
	}

	it.next = noEntry
}

// Next advances to the next entry. It returns false when the entries are
// exhausted or when iteration failed; Err tells the two apart.
func (it *Iterator[K]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.expected != it.m.modCount {
		it.err = ErrConcurrentModification
		return false
	}
	if it.next == noEntry {
		return false
	}

	e := &it.m.entries[it.next]
	it.curr = it.next
	it.key = e.key
	it.value = e.value

	if e.next != noEntry {
		it.next = e.next
	} else {
		it.advanceBucket()
	}

	return true
}

// Key returns the key of the entry yielded by the last successful Next.
func (it *Iterator[K]) Key() K {
	return it.key
}

// Value returns the value of the entry yielded by the last successful Next.
func (it *Iterator[K]) Value() int {
	return it.value
}

// Err reports why iteration stopped: nil after normal exhaustion,
// ErrConcurrentModification when the map changed underneath the iterator.
func (it *Iterator[K]) Err() error {
	return it.err
}

// Remove deletes the entry yielded by the last Next and re-syncs the
// iterator's counter snapshot so traversal can continue. Calling it before
// the first Next, or twice for one entry, returns ErrIteratorState.
func (it *Iterator[K]) Remove() error {
	if it.err != nil {
		return it.err
	}
	if it.curr == noEntry {
		return ErrIteratorState
	}
	if it.expected != it.m.modCount {
		it.err = ErrConcurrentModification
		return it.err
	}

	it.m.removeKey(it.key)
	it.curr = noEntry
	it.expected = it.m.modCount

	return nil
}

// Keys returns a live view of the keys in iteration order. The sequence is
// fail-fast: it panics with ErrConcurrentModification if the map is
// structurally modified mid-range.
func (m *Map[K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		it := m.Iterate()
		for it.Next() {
			if !yield(it.key) {
				return
			}
		}

		if it.err != nil {
			panic(it.err)
		}
	}
}

// Values returns a live, fail-fast view of the values in iteration order.
func (m *Map[K]) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := m.Iterate()
		for it.Next() {
			if !yield(it.value) {
				return
			}
		}

		if it.err != nil {
			panic(it.err)
		}
	}
}

// Entries returns a live, fail-fast view of the key-value pairs in
// iteration order.
func (m *Map[K]) Entries() iter.Seq2[K, int] {
	return func(yield func(K, int) bool) {
		it := m.Iterate()
		for it.Next() {
			if !yield(it.key, it.value) {
				return
			}
		}

		if it.err != nil {
			panic(it.err)
		}
	}
}
