package chainmap

import "math"

// span is a validated directional range of a chain. Ranges use a signed
// length: a positive length walks forward from offset, a negative one
// walks backward from offset, which is then the high end of the range.
type span struct {
	start ref // first entry visited
	n     int // number of entries visited
	back  bool
	lo    int // lowest index covered
}

// rangeOf validates offset and length against the current size and
// resolves the anchor entry. Nothing is modified.
func (c *chain[K, V]) rangeOf(offset, length int) (span, error) {
	size := c.size
	switch {
	case length > 0:
		if offset < 0 || offset > size || length > size-offset {
			return span{}, rangeError(int64(offset), int64(offset)+int64(length)-1, size)
		}
		return span{start: c.entryAt(offset), n: length, lo: offset}, nil
	case length < 0:
		if offset < 0 || offset >= size || length == math.MinInt || -length > offset+1 {
			return span{}, rangeError(int64(offset)+int64(length)+1, int64(offset), size)
		}
		return span{start: c.entryAt(offset), n: -length, back: true, lo: offset + length + 1}, nil
	default:
		if offset < 0 || offset > size {
			return span{}, indexError(offset, size)
		}
		return span{lo: offset}, nil
	}
}

// step returns the entry after r in the span's direction.
func (c *chain[K, V]) step(s span, r ref) ref {
	if s.back {
		return c.entries[r].prev
	}
	return c.entries[r].next
}

// bounds returns the first and last entry of the span in sequence order.
func (c *chain[K, V]) bounds(s span) (first, last ref) {
	end := s.start
	for i := 1; i < s.n; i++ {
		end = c.step(s, end)
	}
	if s.back {
		return end, s.start
	}
	return s.start, end
}

// visit calls fn for each entry of the span in its direction until fn
// returns false. The successor is read before fn runs, so fn may unlink
// the entry it is given.
func (c *chain[K, V]) visit(s span, fn func(r ref) bool) bool {
	r := s.start
	for i := 0; i < s.n; i++ {
		next := c.step(s, r)
		if !fn(r) {
			return false
		}
		r = next
	}
	return true
}

// checkIndex validates a single position.
func (c *chain[K, V]) checkIndex(index int) error {
	if index < 0 || index >= c.size {
		return indexError(index, c.size)
	}
	return nil
}
