package chainmap

import (
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// At returns the entry at index.
func (t *Table[K, V]) At(index int) (Entry[K, V], error) {
	if err := t.chain.checkIndex(index); err != nil {
		return Entry[K, V]{}, err
	}
	return t.chain.at(t.chain.entryAt(index)).export(), nil
}

// First returns the first entry in sequence order.
func (t *Table[K, V]) First() (Entry[K, V], bool) {
	if r := t.chain.first(); r != 0 {
		return t.chain.at(r).export(), true
	}
	return Entry[K, V]{}, false
}

// Last returns the last entry in sequence order.
func (t *Table[K, V]) Last() (Entry[K, V], bool) {
	if r := t.chain.last(); r != 0 {
		return t.chain.at(r).export(), true
	}
	return Entry[K, V]{}, false
}

// IndexOf returns the position of key, or -1.
func (t *Table[K, V]) IndexOf(key K) int {
	r := t.lookup(key)
	if r == 0 {
		return -1
	}
	return t.chain.indexOf(r)
}

// Prepend stores the entry at the start of the sequence if key is absent.
// It reports whether the entry was added.
func (t *Table[K, V]) Prepend(key K, value V) bool {
	hash := t.eq.Hash(key)
	if t.find(key, hash) != 0 {
		return false
	}
	t.insertFront(key, value, hash)
	return true
}

// Preput stores the entry at the start of the sequence, or replaces key and
// value of an existing entry in place like Put. It reports whether a new
// entry was added.
func (t *Table[K, V]) Preput(key K, value V) bool {
	hash := t.eq.Hash(key)
	if r := t.find(key, hash); r != 0 {
		e := t.chain.at(r)
		e.key, e.value = key, value
		return false
	}
	t.insertFront(key, value, hash)
	return true
}

// PrependAll adds the absent entries in front of the current first entry,
// keeping their given order. It returns how many were added.
func (t *Table[K, V]) PrependAll(entries ...Entry[K, V]) int {
	return t.insertAllBefore(t.chain.first(), false, entries)
}

// PreputAll is PrependAll with the replacing semantics of Preput.
func (t *Table[K, V]) PreputAll(entries ...Entry[K, V]) int {
	return t.insertAllBefore(t.chain.first(), true, entries)
}

func (t *Table[K, V]) insertAllBefore(pos ref, replace bool, entries []Entry[K, V]) int {
	n := 0
	for _, in := range entries {
		hash := t.eq.Hash(in.Key)
		if r := t.find(in.Key, hash); r != 0 {
			if replace {
				e := t.chain.at(r)
				e.key, e.value = in.Key, in.Value
			}
			continue
		}
		t.chain.insertBefore(t.newEntry(in.Key, in.Value, hash), pos)
		n++
	}
	if n > 0 {
		t.afterMutation()
	}
	return n
}

// Insert stores the entry at index if key is absent, shifting the entries
// from index on. index may equal Size() to append. It reports whether the
// entry was added.
func (t *Table[K, V]) Insert(index int, key K, value V) (bool, error) {
	if index < 0 || index > t.chain.size {
		return false, indexError(index, t.chain.size)
	}
	hash := t.eq.Hash(key)
	if t.find(key, hash) != 0 {
		return false, nil
	}
	var pos ref
	if index < t.chain.size {
		pos = t.chain.entryAt(index)
	}
	t.chain.insertBefore(t.newEntry(key, value, hash), pos)
	t.afterMutation()
	return true, nil
}

// RemoveAt deletes the entry at index and returns it.
func (t *Table[K, V]) RemoveAt(index int) (Entry[K, V], error) {
	if err := t.chain.checkIndex(index); err != nil {
		return Entry[K, V]{}, err
	}
	return t.removeRef(t.chain.entryAt(index)), nil
}

// RemoveFirst deletes the first entry and returns it.
func (t *Table[K, V]) RemoveFirst() (Entry[K, V], bool) {
	if r := t.chain.first(); r != 0 {
		return t.removeRef(r), true
	}
	return Entry[K, V]{}, false
}

// RemoveLast deletes the last entry and returns it.
func (t *Table[K, V]) RemoveLast() (Entry[K, V], bool) {
	if r := t.chain.last(); r != 0 {
		return t.removeRef(r), true
	}
	return Entry[K, V]{}, false
}

func (t *Table[K, V]) removeRef(r ref) Entry[K, V] {
	e := t.chain.at(r).export()
	t.remove(r)
	t.afterMutation()
	return e
}

// RemoveDuplicates keeps the first of every group of entries that equal
// reports as equal and removes the others. It returns how many were
// removed.
func (t *Table[K, V]) RemoveDuplicates(equal func(a, b Entry[K, V]) bool) int {
	n := 0
	for a := t.chain.first(); a != 0; a = t.chain.entries[a].next {
		ea := t.chain.at(a).export()
		for b := t.chain.entries[a].next; b != 0; {
			next := t.chain.entries[b].next
			if equal(ea, t.chain.at(b).export()) {
				t.remove(b)
				n++
			}
			b = next
		}
	}
	if n > 0 {
		t.afterMutation()
	}
	return n
}

// MoveToStart makes the entry for key the first one. It reports false if
// key is absent or already first.
func (t *Table[K, V]) MoveToStart(key K) bool {
	r := t.lookup(key)
	if r == 0 {
		return false
	}
	return t.chain.moveToStart(r)
}

// MoveToEnd makes the entry for key the last one. It reports false if key
// is absent or already last.
func (t *Table[K, V]) MoveToEnd(key K) bool {
	r := t.lookup(key)
	if r == 0 {
		return false
	}
	return t.chain.moveToEnd(r)
}

// Swap exchanges the entries at i and j.
func (t *Table[K, V]) Swap(i, j int) error {
	if err := t.chain.checkIndex(i); err != nil {
		return err
	}
	if err := t.chain.checkIndex(j); err != nil {
		return err
	}
	t.chain.swapEntries(t.chain.entryAt(i), t.chain.entryAt(j))
	t.afterMutation()
	return nil
}

// SwapRange exchanges the length entries starting at i with the length
// entries starting at j. The two blocks must not overlap. Unlike the other
// ranged operations, length must not be negative.
func (t *Table[K, V]) SwapRange(i, j, length int) error {
	if length < 0 {
		return errors.Wrapf(ErrIllegalSwapBounds, "negative length %d", length)
	}
	if _, err := t.chain.rangeOf(i, length); err != nil {
		return err
	}
	if _, err := t.chain.rangeOf(j, length); err != nil {
		return err
	}
	if i == j || length == 0 {
		return nil
	}
	if i < j+length && j < i+length {
		return errors.Wrapf(ErrIllegalSwapBounds, "[%d;%d] overlaps [%d;%d]",
			i, i+length-1, j, j+length-1)
	}
	t.chain.swapBlocks(t.chain.entryAt(i), t.chain.entryAt(j), length)
	t.afterMutation()
	return nil
}

// Reverse reverses the sequence order.
func (t *Table[K, V]) Reverse() {
	t.chain.reverse()
	t.afterMutation()
}

// ShiftTo moves the entry at src so that it ends up at index dst.
func (t *Table[K, V]) ShiftTo(src, dst int) error {
	return t.ShiftRangeTo(src, dst, 1)
}

// ShiftBy moves the entry at src by distance positions.
func (t *Table[K, V]) ShiftBy(src, distance int) error {
	return t.ShiftRangeTo(src, src+distance, 1)
}

// ShiftRangeBy moves length entries starting at src by distance positions.
func (t *Table[K, V]) ShiftRangeBy(src, distance, length int) error {
	return t.ShiftRangeTo(src, src+distance, length)
}

// ShiftRangeTo moves the length entries starting at src so that the first
// of them ends up at index dst. The other entries keep their relative
// order. Unlike the other ranged operations, length must not be negative.
func (t *Table[K, V]) ShiftRangeTo(src, dst, length int) error {
	if length < 0 {
		return rangeError(int64(src)+int64(length)+1, int64(src), t.chain.size)
	}
	s, err := t.chain.rangeOf(src, length)
	if err != nil {
		return err
	}
	if dst < 0 || dst > t.chain.size-length {
		return rangeError(int64(dst), int64(dst)+int64(length)-1, t.chain.size)
	}
	if length == 0 || dst == src {
		return nil
	}
	// the entry that follows the block once it is moved
	follower := dst
	if dst > src {
		follower = dst + length
	}
	var pos ref
	if follower < t.chain.size {
		pos = t.chain.entryAt(follower)
	}
	first, last := t.chain.bounds(s)
	t.chain.moveBlock(first, last, pos)
	t.afterMutation()
	return nil
}

func entryComparator[K, V any](cmp func(a, b Entry[K, V]) int) func(a, b *entry[K, V]) int {
	return func(a, b *entry[K, V]) int {
		return cmp(a.export(), b.export())
	}
}

// Sort orders the entries by cmp. The sort is stable. If cmp panics the
// original order is restored before the panic continues.
func (t *Table[K, V]) Sort(cmp func(a, b Entry[K, V]) int) {
	t.sortBlock(t.chain.first(), t.chain.last(), entryComparator(cmp))
}

// SortByKey orders the entries by their keys.
func (t *Table[K, V]) SortByKey(cmp func(a, b K) int) {
	t.sortBlock(t.chain.first(), t.chain.last(), func(a, b *entry[K, V]) int {
		return cmp(a.key, b.key)
	})
}

// SortRange sorts the entries of a signed-length range. The block is
// ordered in sequence order whatever the sign of length.
func (t *Table[K, V]) SortRange(offset, length int, cmp func(a, b Entry[K, V]) int) error {
	s, err := t.chain.rangeOf(offset, length)
	if err != nil {
		return err
	}
	if s.n < 2 {
		return nil
	}
	first, last := t.chain.bounds(s)
	t.sortBlock(first, last, entryComparator(cmp))
	return nil
}

func (t *Table[K, V]) sortBlock(first, last ref, cmp func(a, b *entry[K, V]) int) {
	if t.chain.size < 2 {
		return
	}
	done := false
	defer func() {
		if !done {
			t.logger.Warn("sort aborted, order restored", zap.Int("size", t.chain.size))
		}
	}()
	t.chain.sortBlock(first, last, cmp)
	done = true
	t.afterMutation()
}

// IsSorted reports whether the entries are ordered by cmp.
func (t *Table[K, V]) IsSorted(cmp func(a, b Entry[K, V]) int) bool {
	return t.chain.isSorted(entryComparator(cmp))
}

// IterateRange calls fn for the entries of a signed-length range in its
// direction until fn returns false.
func (t *Table[K, V]) IterateRange(offset, length int, fn func(key K, value V) bool) error {
	s, err := t.chain.rangeOf(offset, length)
	if err != nil {
		return err
	}
	t.chain.visit(s, func(r ref) bool {
		e := &t.chain.entries[r]
		return fn(e.key, e.value)
	})
	return nil
}

// CopyRange returns the entries of a signed-length range in its direction.
func (t *Table[K, V]) CopyRange(offset, length int) ([]Entry[K, V], error) {
	s, err := t.chain.rangeOf(offset, length)
	if err != nil {
		return nil, err
	}
	out := make([]Entry[K, V], 0, s.n)
	t.chain.visit(s, func(r ref) bool {
		out = append(out, t.chain.at(r).export())
		return true
	})
	return out, nil
}

// FillRange sets the value of every entry of a signed-length range.
func (t *Table[K, V]) FillRange(offset, length int, value V) error {
	s, err := t.chain.rangeOf(offset, length)
	if err != nil {
		return err
	}
	t.chain.visit(s, func(r ref) bool {
		t.chain.at(r).value = value
		return true
	})
	return nil
}

// RemoveRange removes the entries of a signed-length range.
func (t *Table[K, V]) RemoveRange(offset, length int) error {
	s, err := t.chain.rangeOf(offset, length)
	if err != nil {
		return err
	}
	t.chain.visit(s, func(r ref) bool {
		t.remove(r)
		return true
	})
	t.afterMutation()
	return nil
}

// RetainRange removes every entry outside a signed-length range.
func (t *Table[K, V]) RetainRange(offset, length int) error {
	s, err := t.chain.rangeOf(offset, length)
	if err != nil {
		return err
	}
	if s.n == 0 {
		t.removeWhile(t.chain.first(), 0)
		t.afterMutation()
		return nil
	}
	first, last := t.chain.bounds(s)
	t.removeWhile(t.chain.first(), first)
	t.removeWhile(t.chain.entries[last].next, 0)
	t.afterMutation()
	return nil
}

// removeWhile removes entries from r up to, excluding, stop.
func (t *Table[K, V]) removeWhile(r, stop ref) {
	for r != stop {
		next := t.chain.entries[r].next
		t.remove(r)
		r = next
	}
}

// selection validates indices and returns the addressed entries in
// sequence order without duplicates.
func (t *Table[K, V]) selection(indices []int) ([]ref, error) {
	for _, i := range indices {
		if err := t.chain.checkIndex(i); err != nil {
			return nil, err
		}
	}
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	refs := make([]ref, 0, len(sorted))
	r, at := t.chain.first(), 0
	for _, i := range sorted {
		for ; at < i; at++ {
			r = t.chain.entries[r].next
		}
		refs = append(refs, r)
	}
	return refs, nil
}

// RemoveSelection removes the entries at the given indices, which refer to
// positions before any removal. It returns the number of removed entries.
func (t *Table[K, V]) RemoveSelection(indices ...int) (int, error) {
	refs, err := t.selection(indices)
	if err != nil {
		return 0, err
	}
	for _, r := range refs {
		t.remove(r)
	}
	t.afterMutation()
	return len(refs), nil
}

// CopySelection returns the entries at the given indices in sequence
// order.
func (t *Table[K, V]) CopySelection(indices ...int) ([]Entry[K, V], error) {
	refs, err := t.selection(indices)
	if err != nil {
		return nil, err
	}
	out := make([]Entry[K, V], len(refs))
	for i, r := range refs {
		out[i] = t.chain.at(r).export()
	}
	return out, nil
}
