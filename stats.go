package chainmap

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// TableStats is Table statistics.
//
// Warning: table statistics are intended to be used for diagnostic
// purposes, not for production code. Breaking changes may be introduced
// into this struct even between minor releases.
type TableStats struct {
	// BucketLength is the length of the bucket array.
	BucketLength int
	// EmptyBuckets is the number of buckets that hold no entries.
	EmptyBuckets int
	// MaxChainLength is the length of the longest collision chain.
	MaxChainLength int
	// Capacity is the number of entries that fit before the index grows.
	Capacity int
	// Size is the number of entries.
	Size int
	// HashDensity is the configured ratio of entries to buckets.
	HashDensity float32
	// ArenaLength is the number of entry slots, including the head and
	// free slots.
	ArenaLength int
	// FreeSlots is the number of released slots awaiting reuse.
	FreeSlots int
	// Rebuilds is the number of times the bucket index was rebuilt.
	Rebuilds int
	// Compactions is the number of times the arena was compacted.
	Compactions int
}

// ToString returns string representation of table stats.
func (s *TableStats) ToString() string {
	var sb strings.Builder
	sb.WriteString("TableStats{\n")
	sb.WriteString(fmt.Sprintf("BucketLength:   %d\n", s.BucketLength))
	sb.WriteString(fmt.Sprintf("EmptyBuckets:   %d\n", s.EmptyBuckets))
	sb.WriteString(fmt.Sprintf("MaxChainLength: %d\n", s.MaxChainLength))
	sb.WriteString(fmt.Sprintf("Capacity:       %d\n", s.Capacity))
	sb.WriteString(fmt.Sprintf("Size:           %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("HashDensity:    %g\n", s.HashDensity))
	sb.WriteString(fmt.Sprintf("ArenaLength:    %d\n", s.ArenaLength))
	sb.WriteString(fmt.Sprintf("FreeSlots:      %d\n", s.FreeSlots))
	sb.WriteString(fmt.Sprintf("Rebuilds:       %d\n", s.Rebuilds))
	sb.WriteString(fmt.Sprintf("Compactions:    %d\n", s.Compactions))
	sb.WriteString("}\n")
	return sb.String()
}

// Stats returns statistics for the table.
func (t *Table[K, V]) Stats() *TableStats {
	s := &TableStats{
		BucketLength: t.index.length(),
		Capacity:     t.capacity,
		Size:         t.chain.size,
		HashDensity:  t.density,
		ArenaLength:  len(t.chain.entries),
		FreeSlots:    t.chain.freeLen,
		Rebuilds:     t.rebuilds,
		Compactions:  t.compactions,
	}
	for _, r := range t.index.slots {
		if r == 0 {
			s.EmptyBuckets++
			continue
		}
		n := 0
		for ; r != 0; r = t.chain.entries[r].link {
			n++
		}
		s.MaxChainLength = max(s.MaxChainLength, n)
	}
	return s
}

// Verify checks that the sequence chain and the bucket index describe the
// same entries: the chain is a consistent doubly linked ring holding Size
// entries, every entry sits in the bucket its hash selects, every bucket
// entry is on the chain, and no two entries hold equal keys.
func (t *Table[K, V]) Verify() error {
	c := &t.chain
	length := t.index.length()
	if length == 0 || length&(length-1) != 0 || t.index.mask != uint64(length-1) {
		return errors.Wrapf(ErrCorrupted, "bucket length %d, mask %d", length, t.index.mask)
	}

	onChain := make(map[ref]struct{}, c.size)
	prev := ref(0)
	for r := c.first(); r != 0; r = c.entries[r].next {
		if int(r) >= len(c.entries) {
			return errors.Wrapf(ErrCorrupted, "handle %d outside arena", r)
		}
		if _, dup := onChain[r]; dup {
			return errors.Wrapf(ErrCorrupted, "cycle at handle %d", r)
		}
		if c.entries[r].prev != prev {
			return errors.Wrapf(ErrCorrupted, "handle %d: prev %d, want %d", r, c.entries[r].prev, prev)
		}
		onChain[r] = struct{}{}
		prev = r
	}
	if c.last() != prev {
		return errors.Wrapf(ErrCorrupted, "head.prev %d, want %d", c.last(), prev)
	}
	if len(onChain) != c.size {
		return errors.Wrapf(ErrCorrupted, "chain holds %d entries, size %d", len(onChain), c.size)
	}

	inBuckets := 0
	for i, r := range t.index.slots {
		for ; r != 0; r = c.entries[r].link {
			if _, ok := onChain[r]; !ok {
				return errors.Wrapf(ErrCorrupted, "bucket %d: handle %d not on chain", i, r)
			}
			if int(c.entries[r].hash&t.index.mask) != i {
				return errors.Wrapf(ErrCorrupted, "bucket %d: handle %d belongs elsewhere", i, r)
			}
			inBuckets++
			if inBuckets > c.size {
				return errors.Wrapf(ErrCorrupted, "bucket %d: more entries than size %d", i, c.size)
			}
		}
	}
	if inBuckets != c.size {
		return errors.Wrapf(ErrCorrupted, "buckets hold %d entries, size %d", inBuckets, c.size)
	}

	for r := range onChain {
		e := &c.entries[r]
		if found := t.find(e.key, e.hash); found != r {
			return errors.Wrapf(ErrCorrupted, "handle %d: key %v duplicated", r, e.key)
		}
	}
	if c.size+c.freeLen+1 != len(c.entries) {
		return errors.Wrapf(ErrCorrupted, "arena %d slots, %d live, %d free",
			len(c.entries), c.size, c.freeLen)
	}
	return nil
}
