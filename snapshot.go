package chainmap

import (
	"github.com/benbjohnson/immutable"
)

// Snapshot is a persistent copy of a table's entries. It is unaffected
// by later changes to the table and safe for concurrent reads.
type Snapshot[K, V any] struct {
	order  *immutable.List[Entry[K, V]]
	lookup *immutable.Map[K, V]
}

// snapshotHasher lets the persistent map hash keys with a table's
// equality.
type snapshotHasher[K any] struct {
	eq Equality[K]
}

func (h snapshotHasher[K]) Hash(key K) uint32 {
	v := h.eq.Hash(key)
	return uint32(v ^ v>>32)
}

func (h snapshotHasher[K]) Equal(a, b K) bool {
	return h.eq.Equal(a, b)
}

// Immure returns a persistent snapshot of the entries in sequence order.
func (t *Table[K, V]) Immure() *Snapshot[K, V] {
	order := immutable.NewList[Entry[K, V]]()
	lookup := immutable.NewMap[K, V](snapshotHasher[K]{eq: t.eq})
	for r := t.chain.first(); r != 0; r = t.chain.entries[r].next {
		e := &t.chain.entries[r]
		order = order.Append(e.export())
		lookup = lookup.Set(e.key, e.value)
	}
	return &Snapshot[K, V]{order: order, lookup: lookup}
}

// Len returns the number of entries.
func (s *Snapshot[K, V]) Len() int {
	return s.order.Len()
}

// At returns the entry at index.
func (s *Snapshot[K, V]) At(index int) (Entry[K, V], error) {
	if index < 0 || index >= s.order.Len() {
		return Entry[K, V]{}, indexError(index, s.order.Len())
	}
	return s.order.Get(index), nil
}

// Get returns the value stored for key.
func (s *Snapshot[K, V]) Get(key K) (V, bool) {
	return s.lookup.Get(key)
}

// All returns an iterator over the entries in sequence order.
func (s *Snapshot[K, V]) All() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		for i := 0; i < s.order.Len(); i++ {
			e := s.order.Get(i)
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}
