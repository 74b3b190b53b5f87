package chainmap

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Table is an ordered hash table. Entries keep the order in which they
// were added until they are explicitly moved, swapped, shifted or sorted.
// Growth and rehashing never change that order.
//
// A Table is not safe for concurrent use. Structural changes made through
// the table while one of its iterations is running are undefined.
//
// Create tables with New or NewCustom; the zero value is not usable.
type Table[K, V any] struct {
	eq          Equality[K]
	chain       chain[K, V]
	index       bucketIndex
	capacity    int
	density     float32
	initLength  int
	maxLength   int
	logger      *zap.Logger
	rebuilds    int
	compactions int
}

// New returns a table comparing keys with ==.
//
// Invalid options cause a panic with an error wrapping ErrInvalidConfig.
func New[K comparable, V any](options ...func(*Config)) *Table[K, V] {
	return NewCustom[K, V](Identity[K](), options...)
}

// NewCustom returns a table that uses eq to hash and compare keys.
func NewCustom[K, V any](eq Equality[K], options ...func(*Config)) *Table[K, V] {
	c := newConfig(options)
	if err := c.validate(); err != nil {
		panic(err)
	}
	t := &Table[K, V]{
		eq:        eq,
		density:   c.density,
		maxLength: c.maxLength,
		logger:    c.logger,
	}
	t.initLength = min(nextPowOf2(c.initialLength), c.maxLength)
	length := t.initLength
	if c.sizeHint > 0 {
		length = max(length, t.lengthFor(c.sizeHint))
	}
	t.index = newBucketIndex(length)
	t.capacity = t.capacityFor(length)
	t.chain = newChain[K, V](c.sizeHint)
	return t
}

// NewFrom returns a table comparing keys with == holding the given
// entries. Later duplicates of a key are ignored.
func NewFrom[K comparable, V any](entries []Entry[K, V], options ...func(*Config)) *Table[K, V] {
	return NewCustomFrom(Identity[K](), entries, options...)
}

// NewCustomFrom is NewFrom with a custom equality.
func NewCustomFrom[K, V any](eq Equality[K], entries []Entry[K, V], options ...func(*Config)) *Table[K, V] {
	t := NewCustom[K, V](eq, options...)
	if err := t.EnsureCapacity(len(entries)); err != nil {
		panic(err)
	}
	t.AddAll(entries...)
	return t
}

// Equality returns the strategy the table hashes and compares keys with.
func (t *Table[K, V]) Equality() Equality[K] {
	return t.eq
}

func (t *Table[K, V]) afterMutation() {
	if verifyMutations {
		if err := t.Verify(); err != nil {
			panic(err)
		}
	}
}

// newEntry allocates an entry and links it into its bucket. The caller
// links it into the chain.
func (t *Table[K, V]) newEntry(key K, value V, hash uint64) ref {
	t.ensureRoom()
	r := t.chain.alloc(key, value, hash)
	t.bucketInsert(r)
	return r
}

// insert links a new entry into its bucket and at the end of the chain.
func (t *Table[K, V]) insert(key K, value V, hash uint64) ref {
	r := t.newEntry(key, value, hash)
	t.chain.append(r)
	t.afterMutation()
	return r
}

// insertFront links a new entry into its bucket and at the start of the
// chain.
func (t *Table[K, V]) insertFront(key K, value V, hash uint64) ref {
	r := t.newEntry(key, value, hash)
	t.chain.prepend(r)
	t.afterMutation()
	return r
}

// remove unlinks r from its bucket and the chain and frees its slot.
func (t *Table[K, V]) remove(r ref) {
	t.bucketRemove(r)
	t.chain.disjoin(r)
	t.chain.release(r)
}

func (t *Table[K, V]) lookup(key K) ref {
	return t.find(key, t.eq.Hash(key))
}

// Size returns the number of entries.
func (t *Table[K, V]) Size() int {
	return t.chain.size
}

// IsEmpty reports whether the table has no entries.
func (t *Table[K, V]) IsEmpty() bool {
	return t.chain.size == 0
}

// Lookup returns the stored entry for key.
func (t *Table[K, V]) Lookup(key K) (Entry[K, V], bool) {
	if r := t.lookup(key); r != 0 {
		return t.chain.at(r).export(), true
	}
	return Entry[K, V]{}, false
}

// ContainsKey reports whether an entry for key exists.
func (t *Table[K, V]) ContainsKey(key K) bool {
	return t.lookup(key) != 0
}

// Get returns the value stored for key.
func (t *Table[K, V]) Get(key K) (value V, ok bool) {
	if r := t.lookup(key); r != 0 {
		return t.chain.at(r).value, true
	}
	return value, false
}

// Add stores the entry if key is absent. It reports whether the entry
// was added.
func (t *Table[K, V]) Add(key K, value V) bool {
	hash := t.eq.Hash(key)
	if t.find(key, hash) != 0 {
		return false
	}
	t.insert(key, value, hash)
	return true
}

// Put stores key and value, replacing both in an existing entry. The
// position of an existing entry is kept. It reports whether a new entry
// was added.
func (t *Table[K, V]) Put(key K, value V) bool {
	hash := t.eq.Hash(key)
	if r := t.find(key, hash); r != 0 {
		e := t.chain.at(r)
		e.key, e.value = key, value
		return false
	}
	t.insert(key, value, hash)
	return true
}

// PutValue stores value for key. An existing entry keeps its key.
func (t *Table[K, V]) PutValue(key K, value V) bool {
	hash := t.eq.Hash(key)
	if r := t.find(key, hash); r != 0 {
		t.chain.at(r).value = value
		return false
	}
	t.insert(key, value, hash)
	return true
}

// Set replaces key and value of an existing entry. It reports whether an
// entry for key existed; absent keys are not added.
func (t *Table[K, V]) Set(key K, value V) bool {
	_, ok := t.SetGet(key, value)
	return ok
}

// PutGet stores key and value like Put and returns the previous entry.
func (t *Table[K, V]) PutGet(key K, value V) (previous Entry[K, V], loaded bool) {
	hash := t.eq.Hash(key)
	if r := t.find(key, hash); r != 0 {
		e := t.chain.at(r)
		previous = e.export()
		e.key, e.value = key, value
		return previous, true
	}
	t.insert(key, value, hash)
	return previous, false
}

// AddGet stores the entry if key is absent. Otherwise it returns the
// existing entry and leaves it unchanged.
func (t *Table[K, V]) AddGet(key K, value V) (existing Entry[K, V], loaded bool) {
	hash := t.eq.Hash(key)
	if r := t.find(key, hash); r != 0 {
		return t.chain.at(r).export(), true
	}
	t.insert(key, value, hash)
	return existing, false
}

// SetGet replaces key and value of an existing entry and returns the
// previous entry. Absent keys are not added.
func (t *Table[K, V]) SetGet(key K, value V) (previous Entry[K, V], ok bool) {
	if r := t.lookup(key); r != 0 {
		e := t.chain.at(r)
		previous = e.export()
		e.key, e.value = key, value
		return previous, true
	}
	return previous, false
}

// Replace replaces the value of an existing entry and returns the previous
// value. Absent keys are not added.
func (t *Table[K, V]) Replace(key K, value V) (previous V, ok bool) {
	if r := t.lookup(key); r != 0 {
		e := t.chain.at(r)
		previous, e.value = e.value, value
		return previous, true
	}
	return previous, false
}

// ReplaceKey swaps the stored key old for newKey, which must be equal to
// it under the table's equality. Any other replacement would move the
// entry to a different bucket and fails with ErrHashChangingReplace.
// It reports whether old was present.
func (t *Table[K, V]) ReplaceKey(old, newKey K) (bool, error) {
	r := t.lookup(old)
	if r == 0 {
		return false, nil
	}
	e := t.chain.at(r)
	if !t.eq.Equal(e.key, newKey) || t.eq.Hash(newKey) != e.hash {
		return true, ErrHashChangingReplace
	}
	e.key = newKey
	return true, nil
}

// Ensure returns the value for key, adding the value produced by provider
// if key is absent.
func (t *Table[K, V]) Ensure(key K, provider func(K) V) V {
	hash := t.eq.Hash(key)
	if r := t.find(key, hash); r != 0 {
		return t.chain.at(r).value
	}
	value := provider(key)
	t.insert(key, value, hash)
	return value
}

// ComputeOp tells Compute what to do with the entry.
type ComputeOp int

const (
	// CancelOp leaves the table unchanged.
	CancelOp ComputeOp = iota
	// UpdateOp stores the returned value, adding the entry if needed.
	UpdateOp
	// DeleteOp removes the entry if present.
	DeleteOp
)

// Compute calls fn with the current value for key and applies the
// returned op. It returns the value held for key afterwards and whether
// the key is present.
func (t *Table[K, V]) Compute(
	key K,
	fn func(old V, loaded bool) (V, ComputeOp),
) (actual V, ok bool) {
	hash := t.eq.Hash(key)
	r := t.find(key, hash)
	var old V
	if r != 0 {
		old = t.chain.at(r).value
	}
	value, op := fn(old, r != 0)
	switch op {
	case UpdateOp:
		if r != 0 {
			t.chain.at(r).value = value
		} else {
			t.insert(key, value, hash)
		}
		return value, true
	case DeleteOp:
		if r != 0 {
			t.remove(r)
			t.afterMutation()
		}
		return actual, false
	default:
		return old, r != 0
	}
}

// Remove deletes the entry for key and reports whether it existed.
func (t *Table[K, V]) Remove(key K) bool {
	_, ok := t.RemoveFor(key)
	return ok
}

// RemoveFor deletes the entry for key and returns its value.
func (t *Table[K, V]) RemoveFor(key K) (value V, ok bool) {
	r := t.lookup(key)
	if r == 0 {
		return value, false
	}
	value = t.chain.at(r).value
	t.remove(r)
	t.afterMutation()
	return value, true
}

// SearchValue returns the value of the first entry whose key satisfies
// pred.
func (t *Table[K, V]) SearchValue(pred func(K) bool) (value V, ok bool) {
	for r := t.chain.first(); r != 0; r = t.chain.entries[r].next {
		if e := &t.chain.entries[r]; pred(e.key) {
			return e.value, true
		}
	}
	return value, false
}

// ContainsValue reports whether an entry holds a value equal to value.
func (t *Table[K, V]) ContainsValue(value V, equal func(a, b V) bool) bool {
	for r := t.chain.first(); r != 0; r = t.chain.entries[r].next {
		if equal(t.chain.entries[r].value, value) {
			return true
		}
	}
	return false
}

// Query calls fn with every key of keys and its value, if present.
func (t *Table[K, V]) Query(keys []K, fn func(key K, value V, ok bool)) {
	for _, k := range keys {
		v, ok := t.Get(k)
		fn(k, v, ok)
	}
}

// Clear removes all entries. The bucket index keeps its length.
func (t *Table[K, V]) Clear() {
	t.chain.reset()
	clear(t.index.slots)
	t.afterMutation()
}

// Truncate removes all entries and returns the bucket index and the
// arena to their initial sizes.
func (t *Table[K, V]) Truncate() {
	t.chain = newChain[K, V](0)
	t.index = newBucketIndex(t.initLength)
	t.capacity = t.capacityFor(t.initLength)
	t.afterMutation()
}

// Copy returns a table with the same entries in the same order, the same
// equality and the same configuration.
func (t *Table[K, V]) Copy() *Table[K, V] {
	c := &Table[K, V]{
		eq:         t.eq,
		index:      newBucketIndex(t.index.length()),
		capacity:   t.capacity,
		density:    t.density,
		initLength: t.initLength,
		maxLength:  t.maxLength,
		logger:     t.logger,
		chain:      newChain[K, V](t.chain.size),
	}
	for r := t.chain.first(); r != 0; r = t.chain.entries[r].next {
		e := &t.chain.entries[r]
		n := c.chain.alloc(e.key, e.value, e.hash)
		c.bucketInsert(n)
		c.chain.append(n)
	}
	c.afterMutation()
	return c
}

// ToReversed returns a copy with the entries in reverse order.
func (t *Table[K, V]) ToReversed() *Table[K, V] {
	c := t.Copy()
	c.chain.reverse()
	return c
}

// EqualsContent reports whether other holds the same keys in the same
// order with values equal under valueEqual. Keys are compared with this
// table's equality.
func (t *Table[K, V]) EqualsContent(other *Table[K, V], valueEqual func(a, b V) bool) bool {
	if t.chain.size != other.chain.size {
		return false
	}
	a, b := t.chain.first(), other.chain.first()
	for a != 0 {
		ea, eb := &t.chain.entries[a], &other.chain.entries[b]
		if !t.eq.Equal(ea.key, eb.key) || !valueEqual(ea.value, eb.value) {
			return false
		}
		a, b = ea.next, eb.next
	}
	return true
}

// String returns the entries in order as {k1=v1, k2=v2}.
func (t *Table[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for r := t.chain.first(); r != 0; r = t.chain.entries[r].next {
		if r != t.chain.first() {
			sb.WriteString(", ")
		}
		e := &t.chain.entries[r]
		fmt.Fprintf(&sb, "%v=%v", e.key, e.value)
	}
	sb.WriteByte('}')
	return sb.String()
}
