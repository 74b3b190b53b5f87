package chainmap

// KeyView is a live projection of a table's keys. It shares the table's
// chain, so reordering through the view reorders the table.
type KeyView[K, V any] struct {
	t *Table[K, V]
}

// Keys returns the key projection of t.
func (t *Table[K, V]) Keys() KeyView[K, V] {
	return KeyView[K, V]{t: t}
}

// Len returns the number of keys.
func (v KeyView[K, V]) Len() int {
	return v.t.chain.size
}

// All returns an iterator over the keys in sequence order.
func (v KeyView[K, V]) All() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		c := &v.t.chain
		for r := c.first(); r != 0; r = c.entries[r].next {
			if !yield(c.entries[r].key) {
				return
			}
		}
	}
}

// At returns the key at index.
func (v KeyView[K, V]) At(index int) (K, error) {
	e, err := v.t.At(index)
	return e.Key, err
}

// First returns the first key.
func (v KeyView[K, V]) First() (K, bool) {
	e, ok := v.t.First()
	return e.Key, ok
}

// Last returns the last key.
func (v KeyView[K, V]) Last() (K, bool) {
	e, ok := v.t.Last()
	return e.Key, ok
}

// Contains looks key up in the bucket index.
func (v KeyView[K, V]) Contains(key K) bool {
	return v.t.ContainsKey(key)
}

// IndexOf returns the position of key, or -1.
func (v KeyView[K, V]) IndexOf(key K) int {
	return v.t.IndexOf(key)
}

// Remove removes key and its value from the table.
func (v KeyView[K, V]) Remove(key K) bool {
	return v.t.Remove(key)
}

// Sort orders the table by key.
func (v KeyView[K, V]) Sort(cmp func(a, b K) int) {
	v.t.SortByKey(cmp)
}

// IsSorted reports whether the keys are ordered by cmp.
func (v KeyView[K, V]) IsSorted(cmp func(a, b K) int) bool {
	return v.t.chain.isSorted(func(a, b *entry[K, V]) int {
		return cmp(a.key, b.key)
	})
}

// Min returns the smallest key under cmp, the first one on ties.
func (v KeyView[K, V]) Min(cmp func(a, b K) int) (K, bool) {
	return extreme(v.All(), func(a, b K) bool { return cmp(a, b) < 0 })
}

// Max returns the largest key under cmp, the first one on ties.
func (v KeyView[K, V]) Max(cmp func(a, b K) int) (K, bool) {
	return extreme(v.All(), func(a, b K) bool { return cmp(a, b) > 0 })
}

// ToSlice returns the keys in sequence order.
func (v KeyView[K, V]) ToSlice() []K {
	out := make([]K, 0, v.Len())
	for k := range v.All() {
		out = append(out, k)
	}
	return out
}

// CopyRange returns the keys of a signed-length range in its direction.
func (v KeyView[K, V]) CopyRange(offset, length int) ([]K, error) {
	var out []K
	err := v.t.IterateRange(offset, length, func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out, err
}

// ValueView is a live projection of a table's values in sequence order.
type ValueView[K, V any] struct {
	t *Table[K, V]
}

// Values returns the value projection of t.
func (t *Table[K, V]) Values() ValueView[K, V] {
	return ValueView[K, V]{t: t}
}

// Len returns the number of values.
func (v ValueView[K, V]) Len() int {
	return v.t.chain.size
}

// All returns an iterator over the values in sequence order.
func (v ValueView[K, V]) All() func(yield func(V) bool) {
	return func(yield func(V) bool) {
		c := &v.t.chain
		for r := c.first(); r != 0; r = c.entries[r].next {
			if !yield(c.entries[r].value) {
				return
			}
		}
	}
}

// At returns the value at index.
func (v ValueView[K, V]) At(index int) (V, error) {
	e, err := v.t.At(index)
	return e.Value, err
}

// Set replaces the value at index and returns the previous one.
func (v ValueView[K, V]) Set(index int, value V) (V, error) {
	c := &v.t.chain
	if err := c.checkIndex(index); err != nil {
		var zero V
		return zero, err
	}
	e := c.at(c.entryAt(index))
	old := e.value
	e.value = value
	return old, nil
}

// SetRange replaces the values starting at offset with values.
func (v ValueView[K, V]) SetRange(offset int, values ...V) error {
	c := &v.t.chain
	s, err := c.rangeOf(offset, len(values))
	if err != nil {
		return err
	}
	i := 0
	c.visit(s, func(r ref) bool {
		c.entries[r].value = values[i]
		i++
		return true
	})
	return nil
}

// Fill sets the values of a signed-length range.
func (v ValueView[K, V]) Fill(offset, length int, value V) error {
	return v.t.FillRange(offset, length, value)
}

// Sort orders the table by value. The sort is stable.
func (v ValueView[K, V]) Sort(cmp func(a, b V) int) {
	v.t.sortBlock(v.t.chain.first(), v.t.chain.last(), func(a, b *entry[K, V]) int {
		return cmp(a.value, b.value)
	})
}

// IsSorted reports whether the values are ordered by cmp.
func (v ValueView[K, V]) IsSorted(cmp func(a, b V) int) bool {
	return v.t.chain.isSorted(func(a, b *entry[K, V]) int {
		return cmp(a.value, b.value)
	})
}

// IndexOf returns the position of the first value satisfying pred, or -1.
func (v ValueView[K, V]) IndexOf(pred func(V) bool) int {
	i := 0
	for value := range v.All() {
		if pred(value) {
			return i
		}
		i++
	}
	return -1
}

// Contains reports whether a value satisfies pred.
func (v ValueView[K, V]) Contains(pred func(V) bool) bool {
	return v.IndexOf(pred) >= 0
}

// Count returns the number of values satisfying pred.
func (v ValueView[K, V]) Count(pred func(V) bool) int {
	n := 0
	for value := range v.All() {
		if pred(value) {
			n++
		}
	}
	return n
}

// Min returns the smallest value under cmp, the first one on ties.
func (v ValueView[K, V]) Min(cmp func(a, b V) int) (V, bool) {
	return extreme(v.All(), func(a, b V) bool { return cmp(a, b) < 0 })
}

// Max returns the largest value under cmp, the first one on ties.
func (v ValueView[K, V]) Max(cmp func(a, b V) int) (V, bool) {
	return extreme(v.All(), func(a, b V) bool { return cmp(a, b) > 0 })
}

// ReplaceAll sets every value satisfying pred to value and returns how
// many were replaced.
func (v ValueView[K, V]) ReplaceAll(pred func(V) bool, value V) int {
	c := &v.t.chain
	n := 0
	for r := c.first(); r != 0; r = c.entries[r].next {
		if e := &c.entries[r]; pred(e.value) {
			e.value = value
			n++
		}
	}
	return n
}

// Substitute replaces every value with fn's result.
func (v ValueView[K, V]) Substitute(fn func(V) V) {
	c := &v.t.chain
	for r := c.first(); r != 0; r = c.entries[r].next {
		e := &c.entries[r]
		e.value = fn(e.value)
	}
}

// ToSlice returns the values in sequence order.
func (v ValueView[K, V]) ToSlice() []V {
	out := make([]V, 0, v.Len())
	for value := range v.All() {
		out = append(out, value)
	}
	return out
}

// CopyRange returns the values of a signed-length range in its direction.
func (v ValueView[K, V]) CopyRange(offset, length int) ([]V, error) {
	var out []V
	err := v.t.IterateRange(offset, length, func(_ K, value V) bool {
		out = append(out, value)
		return true
	})
	return out, err
}

func extreme[T any](seq func(yield func(T) bool), better func(a, b T) bool) (best T, ok bool) {
	for x := range seq {
		if !ok || better(x, best) {
			best, ok = x, true
		}
	}
	return best, ok
}
