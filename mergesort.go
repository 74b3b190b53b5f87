package chainmap

// sortBlock sorts the entries first..last in place with a stable merge
// sort that relinks only next pointers. The prev pointers are rebuilt
// once the merge is complete. If cmp panics, the next pointers are
// restored from the untouched prev pointers and the panic continues with
// the block in its original order.
func (c *chain[K, V]) sortBlock(first, last ref, cmp func(a, b *entry[K, V]) int) {
	if first == last {
		return
	}
	before, after := c.entries[first].prev, c.entries[last].next
	c.entries[last].next = 0

	done := false
	defer func() {
		if done {
			return
		}
		next := after
		for r := last; ; r = c.entries[r].prev {
			c.entries[r].next = next
			if r == first {
				return
			}
			next = r
		}
	}()

	sorted := c.mergeSort(first, cmp)
	done = true

	prev := before
	c.entries[before].next = sorted
	for r := sorted; r != 0; r = c.entries[r].next {
		c.entries[r].prev = prev
		prev = r
	}
	c.entries[prev].next = after
	c.entries[after].prev = prev
}

// mergeSort sorts the 0-terminated list starting at r and returns the new
// first entry. Recursion depth is bounded by log2 of the list length.
func (c *chain[K, V]) mergeSort(r ref, cmp func(a, b *entry[K, V]) int) ref {
	if r == 0 || c.entries[r].next == 0 {
		return r
	}
	slow, fast := r, c.entries[r].next
	for fast != 0 {
		fast = c.entries[fast].next
		if fast != 0 {
			slow = c.entries[slow].next
			fast = c.entries[fast].next
		}
	}
	right := c.entries[slow].next
	c.entries[slow].next = 0
	return c.merge(c.mergeSort(r, cmp), c.mergeSort(right, cmp), cmp)
}

// merge takes from b only when it is strictly less than a, which keeps
// equal entries in their input order.
func (c *chain[K, V]) merge(a, b ref, cmp func(a, b *entry[K, V]) int) ref {
	var first, tail ref
	for a != 0 && b != 0 {
		var r ref
		if cmp(&c.entries[b], &c.entries[a]) < 0 {
			r, b = b, c.entries[b].next
		} else {
			r, a = a, c.entries[a].next
		}
		if tail == 0 {
			first = r
		} else {
			c.entries[tail].next = r
		}
		tail = r
	}
	rest := a
	if rest == 0 {
		rest = b
	}
	if tail == 0 {
		return rest
	}
	c.entries[tail].next = rest
	return first
}

func (c *chain[K, V]) isSorted(cmp func(a, b *entry[K, V]) int) bool {
	prev := c.first()
	if prev == 0 {
		return true
	}
	for r := c.entries[prev].next; r != 0; prev, r = r, c.entries[r].next {
		if cmp(&c.entries[prev], &c.entries[r]) > 0 {
			return false
		}
	}
	return true
}
