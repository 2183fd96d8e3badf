package countmap

import "errors"

var (
	// ErrInvalidCapacity is returned when a map is constructed with a
	// negative initial capacity.
	ErrInvalidCapacity = errors.New("negative initial capacity")

	// ErrInvalidLoadFactor is returned when a map is constructed with a
	// non-positive or NaN load factor.
	ErrInvalidLoadFactor = errors.New("non-positive load factor")

	// ErrConcurrentModification is reported by an iterator that observed a
	// structural change made after the iterator was created. The iteration
	// is dead; the caller must restart it.
	ErrConcurrentModification = errors.New("map modified during iteration")

	// ErrIteratorState is returned by Iterator.Remove when there is no
	// current entry: before the first Next, or after the entry was already
	// removed.
	ErrIteratorState = errors.New("iterator has no current entry")
)
