package chainmap

import (
	"math"

	"go.uber.org/zap"
)

// bucketIndex maps hashes to collision chains threaded through the link
// field of the entries. Its length is always a power of two and mask is
// length-1.
type bucketIndex struct {
	slots []ref
	mask  uint64
}

func newBucketIndex(length int) bucketIndex {
	return bucketIndex{slots: make([]ref, length), mask: uint64(length - 1)}
}

func (b *bucketIndex) length() int {
	return len(b.slots)
}

func (b *bucketIndex) head(hash uint64) *ref {
	return &b.slots[hash&b.mask]
}

// find scans the bucket of hash for key.
func (t *Table[K, V]) find(key K, hash uint64) ref {
	for r := *t.index.head(hash); r != 0; {
		e := &t.chain.entries[r]
		if e.hash == hash && t.eq.Equal(e.key, key) {
			return r
		}
		r = e.link
	}
	return 0
}

// bucketInsert prepends r to its bucket.
func (t *Table[K, V]) bucketInsert(r ref) {
	e := &t.chain.entries[r]
	h := t.index.head(e.hash)
	e.link = *h
	*h = r
}

// bucketRemove unlinks r from its bucket.
func (t *Table[K, V]) bucketRemove(r ref) {
	e := &t.chain.entries[r]
	p := t.index.head(e.hash)
	for *p != r {
		p = &t.chain.entries[*p].link
	}
	*p = e.link
	e.link = 0
}

// capacityFor returns the number of entries a bucket array of the given
// length accepts before it grows. The maximal length accepts everything.
func (t *Table[K, V]) capacityFor(length int) int {
	if length >= t.maxLength {
		return maxCapacity
	}
	c := float64(length) * float64(t.density)
	if c >= maxCapacity {
		return maxCapacity
	}
	return int(c)
}

// lengthFor returns the smallest bucket length whose capacity is at least
// n under the current density.
func (t *Table[K, V]) lengthFor(n int) int {
	required := float64(n) / float64(t.density)
	if required >= float64(t.maxLength) {
		return t.maxLength
	}
	return nextPowOf2(int(math.Ceil(required)))
}

// rebuild relinks every entry into a fresh bucket array of length by one
// walk of the chain. The sequence order is not touched.
func (t *Table[K, V]) rebuild(length int, reason string) {
	old := t.index.length()
	if length == old {
		clear(t.index.slots)
	} else {
		t.index = newBucketIndex(length)
	}
	for r := t.chain.first(); r != 0; r = t.chain.entries[r].next {
		t.bucketInsert(r)
	}
	t.capacity = t.capacityFor(length)
	t.rebuilds++
	t.logger.Debug("bucket index rebuilt",
		zap.String("reason", reason),
		zap.Int("oldLength", old),
		zap.Int("newLength", length),
		zap.Int("size", t.chain.size),
	)
}

// growFor makes room for required entries. Doubling stops at the maximal
// bucket length, where a single rebuild lifts the capacity to the limit.
func (t *Table[K, V]) growFor(required int64, reason string) error {
	if required <= int64(t.capacity) {
		return nil
	}
	if required > maxCapacity {
		err := capacityError(required, maxCapacity)
		t.logger.Warn("capacity exceeded", zap.Error(err))
		return err
	}
	length := t.index.length()
	for int64(t.capacityFor(length)) < required {
		if length >= t.maxLength {
			break
		}
		length <<= 1
	}
	if length >= t.maxLength {
		length = t.maxLength
		t.logger.Warn("bucket index at maximal length",
			zap.Int("length", length),
			zap.Int("size", t.chain.size),
		)
	}
	t.rebuild(length, reason)
	return nil
}

// ensureRoom grows the index before one more entry is linked.
func (t *Table[K, V]) ensureRoom() {
	if t.chain.size >= t.capacity {
		if err := t.growFor(int64(t.chain.size)+1, "grow"); err != nil {
			panic(err)
		}
	}
}

// Capacity returns the number of entries the table holds before its bucket
// index grows.
func (t *Table[K, V]) Capacity() int {
	return t.capacity
}

// BucketLength returns the length of the bucket array.
func (t *Table[K, V]) BucketLength() int {
	return t.index.length()
}

// HashDensity returns the configured ratio of entries to buckets.
func (t *Table[K, V]) HashDensity() float32 {
	return t.density
}

// MaximumCapacity returns the largest number of entries a table can hold.
func (t *Table[K, V]) MaximumCapacity() int {
	return maxCapacity
}

// EnsureCapacity grows the bucket index so that n entries fit without a
// further rebuild. It never shrinks the index.
func (t *Table[K, V]) EnsureCapacity(n int) error {
	return t.growFor(int64(n), "ensure capacity")
}

// EnsureFreeCapacity grows the bucket index so that n more entries fit
// without a further rebuild.
func (t *Table[K, V]) EnsureFreeCapacity(n int) error {
	if n > maxCapacity {
		n = maxCapacity + 1
	}
	return t.growFor(int64(t.chain.size)+int64(n), "ensure free capacity")
}

// Optimize resizes the bucket index to the smallest length that holds the
// current entries and compacts the arena if entries were removed. Calling
// it again without intermediate mutations does nothing. It returns the
// resulting capacity.
func (t *Table[K, V]) Optimize() int {
	length := t.lengthFor(t.chain.size)
	if t.chain.slack() {
		t.chain.compact()
		t.compactions++
		t.logger.Debug("arena compacted", zap.Int("size", t.chain.size))
		t.rebuild(length, "optimize")
	} else if length != t.index.length() {
		t.rebuild(length, "optimize")
	}
	t.afterMutation()
	return t.capacity
}

// Rehash recomputes every hash through the table's equality and rebuilds
// the bucket index. Entries that turn out equal to an earlier entry are
// dropped. It returns the resulting size.
func (t *Table[K, V]) Rehash() int {
	clear(t.index.slots)
	dropped := 0
	for r := t.chain.first(); r != 0; {
		e := &t.chain.entries[r]
		next := e.next
		e.hash = t.eq.Hash(e.key)
		e.link = 0
		if t.find(e.key, e.hash) != 0 {
			t.chain.disjoin(r)
			t.chain.release(r)
			dropped++
		} else {
			t.bucketInsert(r)
		}
		r = next
	}
	t.rebuilds++
	if dropped > 0 {
		t.logger.Debug("rehash dropped duplicates", zap.Int("dropped", dropped))
	}
	t.afterMutation()
	return t.chain.size
}

// SetHashDensity changes the ratio of entries to buckets and resizes the
// index accordingly.
func (t *Table[K, V]) SetHashDensity(density float32) error {
	if err := validateDensity(density); err != nil {
		return err
	}
	t.density = density
	t.capacity = t.capacityFor(t.index.length())
	t.Optimize()
	return nil
}
