package chainmap

import "math"

// ref is a handle into the entry arena. Slot 0 is the head sentinel of the
// sequence chain, so a zero ref ends a bucket's collision chain and a
// zero prev or next points back at the head.
type ref int32

const (
	// maxCapacity is the largest number of entries a table can hold:
	// every live entry and the head must be addressable by a ref.
	maxCapacity = math.MaxInt32 - 1

	// maxBucketLength is the largest power of two addressable by a ref.
	maxBucketLength = 1 << 30
)

// Entry is a key/value pair as seen by callers.
type Entry[K, V any] struct {
	Key   K
	Value V
}

type entry[K, V any] struct {
	key   K
	value V
	hash  uint64
	link  ref // next entry of the same bucket
	prev  ref
	next  ref
}

func (e *entry[K, V]) export() Entry[K, V] {
	return Entry[K, V]{Key: e.key, Value: e.value}
}

// arena owns the entry records. Released slots are threaded through next
// into a free list and reused before the slice grows.
type arena[K, V any] struct {
	entries []entry[K, V]
	free    ref
	freeLen int
}

func newArena[K, V any](sizeHint int) arena[K, V] {
	sizeHint = min(max(sizeHint, 0), maxCapacity)
	return arena[K, V]{entries: make([]entry[K, V], 1, sizeHint+1)}
}

// alloc stores a new detached entry and returns its handle. Pointers into
// the arena must not be held across alloc.
func (a *arena[K, V]) alloc(key K, value V, hash uint64) ref {
	if r := a.free; r != 0 {
		e := &a.entries[r]
		a.free = e.next
		a.freeLen--
		*e = entry[K, V]{key: key, value: value, hash: hash}
		return r
	}
	a.entries = append(a.entries, entry[K, V]{key: key, value: value, hash: hash})
	return ref(len(a.entries) - 1)
}

// release clears the slot so the arena does not retain the key or value.
func (a *arena[K, V]) release(r ref) {
	a.entries[r] = entry[K, V]{next: a.free}
	a.free = r
	a.freeLen++
}

// slack reports whether the arena holds memory a compaction would return.
func (a *arena[K, V]) slack() bool {
	return a.freeLen > 0 || cap(a.entries) > 2*len(a.entries)
}
