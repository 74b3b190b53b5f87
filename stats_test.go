package chainmap

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	tbl := New[int, int](WithInitialLength(8))
	s := tbl.Stats()
	assert.Equal(t, 8, s.BucketLength)
	assert.Equal(t, 8, s.EmptyBuckets)
	assert.Equal(t, 0, s.MaxChainLength)

	for i := 0; i < 8; i++ {
		tbl.Add(i*8, i)
	}
	s = tbl.Stats()
	assert.Equal(t, 8, s.Size)
	assert.Equal(t, 7, s.EmptyBuckets)
	assert.Equal(t, 8, s.MaxChainLength)
	assert.Equal(t, 9, s.ArenaLength)

	tbl.Remove(0)
	s = tbl.Stats()
	assert.Equal(t, 1, s.FreeSlots)

	str := s.ToString()
	assert.True(t, strings.HasPrefix(str, "TableStats{\n"))
	assert.Contains(t, str, "FreeSlots:      1\n")
}

func TestVerify_DetectsCorruption(t *testing.T) {
	corruptions := map[string]func(tbl *Table[int, int]){
		"size": func(tbl *Table[int, int]) {
			tbl.chain.size++
		},
		"prev": func(tbl *Table[int, int]) {
			tbl.chain.entries[tbl.chain.entryAt(2)].prev = 0
		},
		"bucket": func(tbl *Table[int, int]) {
			r := tbl.lookup(3)
			tbl.bucketRemove(r)
		},
		"hash": func(tbl *Table[int, int]) {
			r := tbl.lookup(3)
			tbl.bucketRemove(r)
			tbl.chain.entries[r].hash++
			tbl.chain.entries[r].link = tbl.index.slots[3]
			tbl.index.slots[3] = r
		},
		"duplicate": func(tbl *Table[int, int]) {
			r2, r3 := tbl.lookup(2), tbl.lookup(3)
			tbl.bucketRemove(r3)
			e := &tbl.chain.entries[r3]
			e.key, e.hash = 2, tbl.chain.entries[r2].hash
			e.link = tbl.index.slots[2]
			tbl.index.slots[2] = r3
		},
		"mask": func(tbl *Table[int, int]) {
			tbl.index.mask = 1
		},
	}
	for name, corrupt := range corruptions {
		t.Run(name, func(t *testing.T) {
			tbl := New[int, int](WithInitialLength(4))
			for i := 0; i < 4; i++ {
				tbl.Add(i, i)
			}
			require.NoError(t, tbl.Verify())
			corrupt(tbl)
			err := tbl.Verify()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorrupted), err.Error())
		})
	}
}
