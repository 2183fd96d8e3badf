package countmap

import (
	"cmp"
	"hash/maphash"
)

type HashFunc[K cmp.Ordered] func(K) uint64

func MakeDefaultHashFunc[K cmp.Ordered]() HashFunc[K] {
	seed := maphash.MakeSeed()

	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// mix applies a supplemental scramble to a key's hash code. The table masks
// hashes with a power-of-two capacity, so hash functions that only differ in
// high bits would otherwise pile every key into a handful of buckets.
func mix(h uint64) uint64 {
	h ^= (h >> 20) ^ (h >> 12)
	return h ^ (h >> 7) ^ (h >> 4)
}

// bucketIndex derives the bucket slot for a mixed hash.
// capacity must be a power of two.
func bucketIndex(h uint64, capacity int) int {
	return int(h & uint64(capacity-1))
}
