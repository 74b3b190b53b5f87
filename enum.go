package chainmap

import (
	"fmt"
	"strings"
)

// Enum is an ordered set of keys backed by a Table without values.
type Enum[K any] struct {
	t *Table[K, struct{}]
}

// NewEnum returns an Enum comparing keys with ==.
func NewEnum[K comparable](options ...func(*Config)) *Enum[K] {
	return &Enum[K]{t: New[K, struct{}](options...)}
}

// NewCustomEnum returns an Enum that uses eq to hash and compare keys.
func NewCustomEnum[K any](eq Equality[K], options ...func(*Config)) *Enum[K] {
	return &Enum[K]{t: NewCustom[K, struct{}](eq, options...)}
}

// EnumOf returns an Enum holding keys in order, without duplicates.
func EnumOf[K comparable](keys ...K) *Enum[K] {
	e := NewEnum[K](WithPresize(len(keys)))
	e.AddAll(keys...)
	return e
}

// Table exposes the underlying table.
func (e *Enum[K]) Table() *Table[K, struct{}] {
	return e.t
}

// Size returns the number of keys.
func (e *Enum[K]) Size() int { return e.t.Size() }

// IsEmpty reports whether the enum has no keys.
func (e *Enum[K]) IsEmpty() bool { return e.t.IsEmpty() }

// Add adds key if absent and reports whether it was added.
func (e *Enum[K]) Add(key K) bool {
	return e.t.Add(key, struct{}{})
}

// Put adds key or replaces the stored representation of an equal key.
func (e *Enum[K]) Put(key K) bool {
	return e.t.Put(key, struct{}{})
}

// Prepend adds key at the start if it is absent.
func (e *Enum[K]) Prepend(key K) bool {
	return e.t.Prepend(key, struct{}{})
}

// Insert adds key at index if it is absent.
func (e *Enum[K]) Insert(index int, key K) (bool, error) {
	return e.t.Insert(index, key, struct{}{})
}

// AddAll adds the absent keys and returns how many were added.
func (e *Enum[K]) AddAll(keys ...K) int {
	n := 0
	for _, k := range keys {
		if e.Add(k) {
			n++
		}
	}
	return n
}

// Contains reports whether key is present.
func (e *Enum[K]) Contains(key K) bool {
	return e.t.ContainsKey(key)
}

// Get returns the stored key equal to key.
func (e *Enum[K]) Get(key K) (K, bool) {
	en, ok := e.t.Lookup(key)
	return en.Key, ok
}

// Remove removes key and reports whether it was present.
func (e *Enum[K]) Remove(key K) bool {
	return e.t.Remove(key)
}

// Clear removes all keys.
func (e *Enum[K]) Clear() { e.t.Clear() }

// All returns an iterator over the keys in sequence order.
func (e *Enum[K]) All() func(yield func(K) bool) {
	return e.t.Keys().All()
}

// At returns the key at index.
func (e *Enum[K]) At(index int) (K, error) {
	return e.t.Keys().At(index)
}

// IndexOf returns the position of key, or -1.
func (e *Enum[K]) IndexOf(key K) int {
	return e.t.IndexOf(key)
}

// ToSlice returns the keys in sequence order.
func (e *Enum[K]) ToSlice() []K {
	return e.t.Keys().ToSlice()
}

// Sort orders the keys by cmp. The sort is stable.
func (e *Enum[K]) Sort(cmp func(a, b K) int) {
	e.t.SortByKey(cmp)
}

// Reverse reverses the order of the keys.
func (e *Enum[K]) Reverse() { e.t.Reverse() }

// MoveToStart makes key the first key.
func (e *Enum[K]) MoveToStart(key K) bool { return e.t.MoveToStart(key) }

// MoveToEnd makes key the last key.
func (e *Enum[K]) MoveToEnd(key K) bool { return e.t.MoveToEnd(key) }

// RemoveRange removes the keys of a signed-length range.
func (e *Enum[K]) RemoveRange(offset, length int) error {
	return e.t.RemoveRange(offset, length)
}

// RemoveBy removes the keys satisfying pred.
func (e *Enum[K]) RemoveBy(pred func(K) bool) int {
	return e.t.RemoveBy(func(k K, _ struct{}) bool { return pred(k) })
}

// Copy returns an Enum with the same keys in the same order.
func (e *Enum[K]) Copy() *Enum[K] {
	return &Enum[K]{t: e.t.Copy()}
}

// EnsureCapacity grows the index so that n keys fit without a rebuild.
func (e *Enum[K]) EnsureCapacity(n int) error { return e.t.EnsureCapacity(n) }

// Optimize resizes the index to the current size.
func (e *Enum[K]) Optimize() int { return e.t.Optimize() }

// Rehash recomputes all hashes and drops keys that became duplicates.
func (e *Enum[K]) Rehash() int { return e.t.Rehash() }

// Verify checks the internal consistency of the enum.
func (e *Enum[K]) Verify() error { return e.t.Verify() }

// EqualsContent reports whether other holds equal keys in the same order.
func (e *Enum[K]) EqualsContent(other *Enum[K]) bool {
	return e.t.EqualsContent(other.t, func(struct{}, struct{}) bool { return true })
}

// String returns the keys in order as [k1, k2].
func (e *Enum[K]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	i := 0
	for k := range e.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, k)
		i++
	}
	sb.WriteByte(']')
	return sb.String()
}
