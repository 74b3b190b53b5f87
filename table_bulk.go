package chainmap

// Iterate calls fn for every entry in sequence order until fn returns
// false.
func (t *Table[K, V]) Iterate(fn func(key K, value V) bool) {
	for r := t.chain.first(); r != 0; r = t.chain.entries[r].next {
		e := &t.chain.entries[r]
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Range is Iterate under the name the range-over-func loop expects.
func (t *Table[K, V]) Range(yield func(K, V) bool) {
	t.Iterate(yield)
}

// All returns an iterator over all entries in sequence order.
//
// Example:
//
//	for k, v := range t.All() {
//	    fmt.Println(k, v)
//	}
func (t *Table[K, V]) All() func(yield func(K, V) bool) {
	return t.Range
}

// Backward returns an iterator over all entries from last to first.
func (t *Table[K, V]) Backward() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		for r := t.chain.last(); r != 0; r = t.chain.entries[r].prev {
			e := &t.chain.entries[r]
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// IterateIndexed is Iterate with the position of each entry.
func (t *Table[K, V]) IterateIndexed(fn func(index int, key K, value V) bool) {
	i := 0
	for r := t.chain.first(); r != 0; r = t.chain.entries[r].next {
		e := &t.chain.entries[r]
		if !fn(i, e.key, e.value) {
			return
		}
		i++
	}
}

// Entries returns all entries in sequence order.
func (t *Table[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, t.chain.size)
	for r := t.chain.first(); r != 0; r = t.chain.entries[r].next {
		out = append(out, t.chain.at(r).export())
	}
	return out
}

// AddAll adds the entries whose keys are absent and returns how many were
// added.
func (t *Table[K, V]) AddAll(entries ...Entry[K, V]) int {
	n := 0
	for _, e := range entries {
		if t.Add(e.Key, e.Value) {
			n++
		}
	}
	return n
}

// PutAll puts every entry and returns how many were new.
func (t *Table[K, V]) PutAll(entries ...Entry[K, V]) int {
	n := 0
	for _, e := range entries {
		if t.Put(e.Key, e.Value) {
			n++
		}
	}
	return n
}

// sweep walks the chain and removes each entry for which take returns
// true. A take returning stop ends the sweep without removing the current
// entry. Entries removed before a panic in take stay removed.
func (t *Table[K, V]) sweep(take func(e *entry[K, V]) (remove, stop bool)) int {
	n := 0
	defer t.afterMutation()
	for r := t.chain.first(); r != 0; {
		next := t.chain.entries[r].next
		remove, stop := take(&t.chain.entries[r])
		if stop {
			break
		}
		if remove {
			t.remove(r)
			n++
		}
		r = next
	}
	return n
}

// RemoveBy removes every entry satisfying pred and returns how many were
// removed.
func (t *Table[K, V]) RemoveBy(pred func(key K, value V) bool) int {
	return t.sweep(func(e *entry[K, V]) (bool, bool) {
		return pred(e.key, e.value), false
	})
}

// RetainBy removes every entry not satisfying pred.
func (t *Table[K, V]) RetainBy(pred func(key K, value V) bool) int {
	return t.sweep(func(e *entry[K, V]) (bool, bool) {
		return !pred(e.key, e.value), false
	})
}

// Process hands every entry to fn and removes it afterwards. When fn
// returns false the sweep stops and the current entry is kept. It returns
// the number of removed entries.
func (t *Table[K, V]) Process(fn func(key K, value V) bool) int {
	return t.sweep(func(e *entry[K, V]) (bool, bool) {
		ok := fn(e.key, e.value)
		return ok, !ok
	})
}

// MoveTo hands every entry satisfying pred to target and removes it. When
// target returns false the sweep stops and the current entry is kept.
func (t *Table[K, V]) MoveTo(target func(key K, value V) bool, pred func(key K, value V) bool) int {
	return t.sweep(func(e *entry[K, V]) (bool, bool) {
		if !pred(e.key, e.value) {
			return false, false
		}
		ok := target(e.key, e.value)
		return ok, !ok
	})
}

// MoveRange hands the entries of a signed-length range to target in the
// range's direction and removes them. When target returns false the
// sweep stops and the current entry is kept.
func (t *Table[K, V]) MoveRange(offset, length int, target func(key K, value V) bool) (int, error) {
	s, err := t.chain.rangeOf(offset, length)
	if err != nil {
		return 0, err
	}
	n := 0
	defer t.afterMutation()
	t.chain.visit(s, func(r ref) bool {
		e := &t.chain.entries[r]
		if !target(e.key, e.value) {
			return false
		}
		t.remove(r)
		n++
		return true
	})
	return n, nil
}
