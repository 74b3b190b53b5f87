package chainmap

// chain is the insertion ordered sequence of a table: a circular doubly
// linked list through prev/next with the head sentinel at slot 0.
// An empty chain has head.next == head.prev == 0.
type chain[K, V any] struct {
	arena[K, V]
	size int
}

func newChain[K, V any](sizeHint int) chain[K, V] {
	return chain[K, V]{arena: newArena[K, V](sizeHint)}
}

func (c *chain[K, V]) at(r ref) *entry[K, V] {
	return &c.entries[r]
}

func (c *chain[K, V]) first() ref { return c.entries[0].next }
func (c *chain[K, V]) last() ref  { return c.entries[0].prev }

// linkBefore inserts the detached entry r in front of pos. A pos of 0
// appends.
func (c *chain[K, V]) linkBefore(r, pos ref) {
	p := c.entries[pos].prev
	e := &c.entries[r]
	e.prev, e.next = p, pos
	c.entries[p].next = r
	c.entries[pos].prev = r
}

// unlink detaches r from its neighbours; the links of r are left stale.
func (c *chain[K, V]) unlink(r ref) {
	e := &c.entries[r]
	c.entries[e.prev].next = e.next
	c.entries[e.next].prev = e.prev
}

// insertBefore links the new entry r in front of pos and counts it.
func (c *chain[K, V]) insertBefore(r, pos ref) {
	c.linkBefore(r, pos)
	c.size++
}

func (c *chain[K, V]) append(r ref) {
	c.insertBefore(r, 0)
}

func (c *chain[K, V]) prepend(r ref) {
	c.insertBefore(r, c.first())
}

// disjoin removes r from the sequence. The slot is not released.
func (c *chain[K, V]) disjoin(r ref) {
	c.unlink(r)
	c.size--
}

// moveToStart reports false when r already is the first entry.
func (c *chain[K, V]) moveToStart(r ref) bool {
	if c.first() == r {
		return false
	}
	c.unlink(r)
	c.linkBefore(r, c.first())
	return true
}

// moveToEnd reports false when r already is the last entry.
func (c *chain[K, V]) moveToEnd(r ref) bool {
	if c.last() == r {
		return false
	}
	c.unlink(r)
	c.linkBefore(r, 0)
	return true
}

// entryAt returns the entry at a valid index, walking from the nearer end.
func (c *chain[K, V]) entryAt(index int) ref {
	if index < c.size>>1 {
		r := c.first()
		for ; index > 0; index-- {
			r = c.entries[r].next
		}
		return r
	}
	r := c.last()
	for i := c.size - 1; i > index; i-- {
		r = c.entries[r].prev
	}
	return r
}

// indexOf returns the position of the live entry r.
func (c *chain[K, V]) indexOf(r ref) int {
	i := 0
	for e := c.first(); e != 0; e = c.entries[e].next {
		if e == r {
			return i
		}
		i++
	}
	return -1
}

// swapEntries exchanges the positions of a and b by relinking their
// neighbours. Adjacent entries are handled in either order.
func (c *chain[K, V]) swapEntries(a, b ref) {
	if a == b {
		return
	}
	if c.entries[b].next == a {
		a, b = b, a
	}
	ea, eb := &c.entries[a], &c.entries[b]
	if ea.next == b {
		p, n := ea.prev, eb.next
		c.entries[p].next = b
		c.entries[n].prev = a
		eb.prev, eb.next = p, a
		ea.prev, ea.next = b, n
		return
	}
	ap, an, bp, bn := ea.prev, ea.next, eb.prev, eb.next
	c.entries[ap].next = b
	c.entries[an].prev = b
	c.entries[bp].next = a
	c.entries[bn].prev = a
	ea.prev, ea.next = bp, bn
	eb.prev, eb.next = ap, an
}

// reverse swaps pairs from both ends towards the middle.
func (c *chain[K, V]) reverse() {
	lo, hi := c.first(), c.last()
	for i := c.size >> 1; i > 0; i-- {
		nlo, nhi := c.entries[lo].next, c.entries[hi].prev
		c.swapEntries(lo, hi)
		lo, hi = nlo, nhi
	}
}

// swapBlocks swaps length entries starting at a with length entries
// starting at b, pair by pair. The blocks must not overlap.
func (c *chain[K, V]) swapBlocks(a, b ref, length int) {
	for ; length > 0; length-- {
		na, nb := c.entries[a].next, c.entries[b].next
		c.swapEntries(a, b)
		a, b = na, nb
	}
}

// moveBlock detaches first..last and relinks it in front of pos, which
// must lie outside the block.
func (c *chain[K, V]) moveBlock(first, last, pos ref) {
	bp, an := c.entries[first].prev, c.entries[last].next
	c.entries[bp].next = an
	c.entries[an].prev = bp

	p := c.entries[pos].prev
	c.entries[p].next = first
	c.entries[first].prev = p
	c.entries[last].next = pos
	c.entries[pos].prev = last
}

// reset drops every entry but keeps the arena's backing array.
func (c *chain[K, V]) reset() {
	clear(c.entries)
	c.entries = c.entries[:1]
	c.free = 0
	c.freeLen = 0
	c.size = 0
}

// compact rewrites the arena in sequence order without free slots.
// Every handle changes, so the bucket index must be rebuilt afterwards.
func (c *chain[K, V]) compact() {
	entries := make([]entry[K, V], c.size+1)
	i := ref(0)
	for r := c.first(); r != 0; r = c.entries[r].next {
		i++
		e := c.entries[r]
		e.link = 0
		e.prev = i - 1
		e.next = i + 1
		entries[i] = e
	}
	if i > 0 {
		entries[i].next = 0
		entries[0].next = 1
		entries[0].prev = i
	}
	c.entries = entries
	c.free = 0
	c.freeLen = 0
}
