package countmap

// Merge adds every entry of other into m: values of shared keys are summed,
// keys absent from m are inserted with other's value. Only m is mutated.
func (m *Map[K]) Merge(other *Map[K]) {
	for _, head := range other.buckets {
		for idx := head; idx != noEntry; idx = other.entries[idx].next {
			e := &other.entries[idx]
			m.add(e.key, e.value)
		}
	}
}

// Dot computes the dot product of the two maps: the sum over keys present
// in both of the product of their values. Keys present in only one map
// contribute nothing.
func (m *Map[K]) Dot(other *Map[K]) int {
	s := 0
	for _, head := range other.buckets {
		for idx := head; idx != noEntry; idx = other.entries[idx].next {
			e := &other.entries[idx]
			if v, ok := m.get(e.key); ok {
				s += v * e.value
			}
		}
	}

	return s
}

// Increment bumps key's count by one, inserting it with value 1 if absent.
func (m *Map[K]) Increment(key K) {
	m.add(key, 1)
}

// Add adds delta to key's value, inserting key with value delta if absent.
func (m *Map[K]) Add(key K, delta int) {
	m.add(key, delta)
}
