package countmap

import (
	"cmp"
	"math"
)

const (
	// DefaultCapacity is the initial bucket count when none is given.
	DefaultCapacity = 1024

	// MaxCapacity is the largest bucket count the table will grow to. Once
	// reached, growth is disabled and collision chains absorb the load.
	MaxCapacity = 1 << 30

	// DefaultLoadFactor is the load factor when none is given.
	DefaultLoadFactor = 0.75

	// noEntry marks an empty bucket, the end of a chain, or the end of the
	// arena free list.
	noEntry = -1
)

// entry is one key-value pair in the arena. The mixed hash is cached so
// chain walks can reject mismatches without comparing keys, and so resize
// never rehashes. next links the collision chain, or the free list while
// the slot is unused.
type entry[K cmp.Ordered] struct {
	key   K
	value int
	hash  uint64
	next  int32
}

// table is the bucket store. Entries live in an index-addressed arena
// rather than behind per-entry pointers; buckets hold arena indices of
// chain heads. len(buckets) is always a power of two.
type table[K cmp.Ordered] struct {
	buckets []int32    // chain heads, noEntry when empty
	entries []entry[K] // arena addressed by buckets and entry.next
	free    int32      // head of the free list threaded through next

	size       int
	threshold  int
	loadFactor float64

	// modCount is bumped on every structural change: insert of a new key,
	// removal, resize, clear. Iterators snapshot it to fail fast on
	// mutation mid-traversal. Overwriting an existing key's value is not
	// structural and does not bump it.
	modCount uint64

	hashFunc HashFunc[K]
}

// init sets up the bucket store. loadFactor must already be set; capacity
// must be positive and is rounded up to a power of two.
func (t *table[K]) init(capacity int) {
	if capacity > MaxCapacity {
		capacity = MaxCapacity
	}
	capacity = int(NextPowerOf2(uint32(capacity)))

	t.buckets = make([]int32, capacity)
	for i := range t.buckets {
		t.buckets[i] = noEntry
	}
	t.free = noEntry
	t.threshold = int(float64(capacity) * t.loadFactor)

	if t.hashFunc == nil {
		t.hashFunc = MakeDefaultHashFunc[K]()
	}
}

func (t *table[K]) get(key K) (int, bool) {
	h := mix(t.hashFunc(key))
	for idx := t.buckets[bucketIndex(h, len(t.buckets))]; idx != noEntry; idx = t.entries[idx].next {
		e := &t.entries[idx]
		if e.hash == h && e.key == key {
			return e.value, true
		}
	}

	return 0, false
}

func (t *table[K]) put(key K, value int) {
	h := mix(t.hashFunc(key))
	i := bucketIndex(h, len(t.buckets))

	for idx := t.buckets[i]; idx != noEntry; idx = t.entries[idx].next {
		e := &t.entries[idx]
		if e.hash == h && e.key == key {
			e.value = value
			return
		}
	}

	t.modCount++
	t.addEntry(h, key, value, i)
}

// add adds delta to the key's value, inserting the key with value delta
// when absent. Shared single-walk path for Increment and Merge.
func (t *table[K]) add(key K, delta int) {
	h := mix(t.hashFunc(key))
	i := bucketIndex(h, len(t.buckets))

	for idx := t.buckets[i]; idx != noEntry; idx = t.entries[idx].next {
		e := &t.entries[idx]
		if e.hash == h && e.key == key {
			e.value += delta
			return
		}
	}

	t.modCount++
	t.addEntry(h, key, delta, i)
}

// addEntry links a new entry at the head of bucket i and grows the table
// when the pre-insert size has reached the threshold.
func (t *table[K]) addEntry(h uint64, key K, value int, i int) {
	idx := t.alloc(h, key, value)
	t.entries[idx].next = t.buckets[i]
	t.buckets[i] = idx

	t.size++
	if t.size > t.threshold {
		t.resize(2 * len(t.buckets))
	}
}

// putForCreate is the bulk-create variant of put used by copy construction
// and deserialization: no growth check, no fail-fast bookkeeping.
func (t *table[K]) putForCreate(key K, value int) {
	h := mix(t.hashFunc(key))
	i := bucketIndex(h, len(t.buckets))

	for idx := t.buckets[i]; idx != noEntry; idx = t.entries[idx].next {
		e := &t.entries[idx]
		if e.hash == h && e.key == key {
			e.value = value
			return
		}
	}

	idx := t.alloc(h, key, value)
	t.entries[idx].next = t.buckets[i]
	t.buckets[i] = idx
	t.size++
}

// alloc takes a slot from the free list, or extends the arena.
func (t *table[K]) alloc(h uint64, key K, value int) int32 {
	if t.free != noEntry {
		idx := t.free
		e := &t.entries[idx]
		t.free = e.next
		e.key = key
		e.value = value
		e.hash = h

		return idx
	}

	t.entries = append(t.entries, entry[K]{key: key, value: value, hash: h})

	return int32(len(t.entries) - 1)
}

// release zeroes an arena slot and pushes it onto the free list.
func (t *table[K]) release(idx int32) {
	e := &t.entries[idx]
	var zero K
	e.key = zero
	e.value = 0
	e.hash = 0
	e.next = t.free
	t.free = idx
}

// removeKey unlinks the entry for key and returns its value.
func (t *table[K]) removeKey(key K) (int, bool) {
	h := mix(t.hashFunc(key))
	i := bucketIndex(h, len(t.buckets))

	prev := int32(noEntry)
	for idx := t.buckets[i]; idx != noEntry; idx = t.entries[idx].next {
		e := &t.entries[idx]
		if e.hash == h && e.key == key {
			value := e.value
			t.unlink(i, prev, idx)

			return value, true
		}

		prev = idx
	}

	return 0, false
}

// removeMapping unlinks only an exact (key, value) pair. Used by the
// iterator layer to drop a pair without clobbering a concurrent overwrite.
func (t *table[K]) removeMapping(key K, value int) bool {
	h := mix(t.hashFunc(key))
	i := bucketIndex(h, len(t.buckets))

	prev := int32(noEntry)
	for idx := t.buckets[i]; idx != noEntry; idx = t.entries[idx].next {
		e := &t.entries[idx]
		if e.hash == h && e.key == key && e.value == value {
			t.unlink(i, prev, idx)
			return true
		}

		prev = idx
	}

	return false
}

func (t *table[K]) unlink(bucket int, prev, idx int32) {
	if prev == noEntry {
		t.buckets[bucket] = t.entries[idx].next
	} else {
		t.entries[prev].next = t.entries[idx].next
	}

	t.release(idx)
	t.size--
	t.modCount++
}

func (t *table[K]) containsValue(value int) bool {
	for _, head := range t.buckets {
		for idx := head; idx != noEntry; idx = t.entries[idx].next {
			if t.entries[idx].value == value {
				return true
			}
		}
	}

	return false
}

// clear empties the table but keeps its capacity and the arena's backing
// storage.
func (t *table[K]) clear() {
	t.modCount++
	for i := range t.buckets {
		t.buckets[i] = noEntry
	}

	clear(t.entries)
	t.entries = t.entries[:0]
	t.free = noEntry
	t.size = 0
}

// resize doubles the bucket store and relinks every entry. At MaxCapacity
// the threshold is pinned instead, which disables growth for good.
func (t *table[K]) resize(newCapacity int) {
	if len(t.buckets) == MaxCapacity {
		t.threshold = math.MaxInt
		return
	}

	newBuckets := make([]int32, newCapacity)
	for i := range newBuckets {
		newBuckets[i] = noEntry
	}

	t.transfer(newBuckets)
	t.buckets = newBuckets
	t.threshold = int(float64(newCapacity) * t.loadFactor)
	t.modCount++
}

// transfer relinks every entry into newBuckets using its cached hash.
// Head insertion reverses each chain; chain order carries no meaning.
func (t *table[K]) transfer(newBuckets []int32) {
	for i, head := range t.buckets {
		t.buckets[i] = noEntry

		idx := head
		for idx != noEntry {
			e := &t.entries[idx]
			next := e.next

			j := bucketIndex(e.hash, len(newBuckets))
			e.next = newBuckets[j]
			newBuckets[j] = idx

			idx = next
		}
	}
}

// putAll copies every mapping of other into t, overwriting shared keys.
// When the incoming count alone crosses the threshold, the table is resized
// once up front instead of doubling repeatedly while entries stream in. The
// sizing is conservative on purpose: sizing from size+incoming could double
// twice when the key sets overlap.
func (t *table[K]) putAll(other *table[K]) {
	incoming := other.size
	if incoming == 0 {
		return
	}

	if incoming > t.threshold {
		target := int(float64(incoming)/t.loadFactor) + 1
		if target > MaxCapacity {
			target = MaxCapacity
		}

		newCapacity := len(t.buckets)
		for newCapacity < target {
			newCapacity <<= 1
		}

		if newCapacity > len(t.buckets) {
			t.resize(newCapacity)
		}
	}

	for _, head := range other.buckets {
		for idx := head; idx != noEntry; idx = other.entries[idx].next {
			e := &other.entries[idx]
			t.put(e.key, e.value)
		}
	}
}

func (t *table[K]) maxChainLen() int {
	longest := 0
	for _, head := range t.buckets {
		n := 0
		for idx := head; idx != noEntry; idx = t.entries[idx].next {
			n++
		}

		if n > longest {
			longest = n
		}
	}

	return longest
}
