package chainmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AddAllPutAll(t *testing.T) {
	tbl := New[string, int]()
	n := tbl.AddAll(Entry[string, int]{"a", 1}, Entry[string, int]{"b", 2}, Entry[string, int]{"a", 3})
	assert.Equal(t, 2, n)
	n = tbl.PutAll(Entry[string, int]{"b", 20}, Entry[string, int]{"c", 30})
	assert.Equal(t, 1, n)
	assert.Equal(t, "{a=1, b=20, c=30}", tbl.String())
}

func TestTable_RemoveByRetainBy(t *testing.T) {
	tbl := newSeqTable(10)
	even := func(k int, _ string) bool { return k%2 == 0 }
	assert.Equal(t, 5, tbl.RemoveBy(even))
	assert.Equal(t, []int{1, 3, 5, 7, 9}, keysOf(tbl))
	assert.Equal(t, 2, tbl.RetainBy(func(k int, _ string) bool { return k > 4 }))
	assert.Equal(t, []int{5, 7, 9}, keysOf(tbl))
	require.NoError(t, tbl.Verify())
}

func TestTable_Process(t *testing.T) {
	tbl := newSeqTable(6)
	var seen []int
	n := tbl.Process(func(k int, _ string) bool {
		seen = append(seen, k)
		return k < 3
	})
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
	assert.Equal(t, []int{3, 4, 5}, keysOf(tbl))
	require.NoError(t, tbl.Verify())

	n = tbl.Process(func(int, string) bool { return true })
	assert.Equal(t, 3, n)
	assert.True(t, tbl.IsEmpty())
}

func TestTable_ProcessPanicKeepsPriorRemovals(t *testing.T) {
	tbl := newSeqTable(6)
	assert.Panics(t, func() {
		tbl.Process(func(k int, _ string) bool {
			if k == 2 {
				panic("visitor failed")
			}
			return true
		})
	})
	assert.Equal(t, []int{2, 3, 4, 5}, keysOf(tbl))
	require.NoError(t, tbl.Verify())
}

func TestTable_IterationPanicHasNoSideEffects(t *testing.T) {
	tbl := newSeqTable(4)
	assert.Panics(t, func() {
		tbl.Iterate(func(k int, _ string) bool {
			if k == 1 {
				panic("visitor failed")
			}
			return true
		})
	})
	assert.Equal(t, []int{0, 1, 2, 3}, keysOf(tbl))
	require.NoError(t, tbl.Verify())
}

func TestTable_MoveTo(t *testing.T) {
	src := newSeqTable(8)
	dst := New[int, string]()
	odd := func(k int, _ string) bool { return k%2 == 1 }

	n := src.MoveTo(func(k int, v string) bool {
		dst.Add(k, v)
		return dst.Size() < 3
	}, odd)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{1, 3, 5}, keysOf(dst))
	assert.Equal(t, []int{0, 2, 4, 5, 6, 7}, keysOf(src))

	n = src.MoveTo(func(k int, v string) bool { return dst.Add(k, v) || true }, odd)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{0, 2, 4, 6}, keysOf(src))
	assert.Equal(t, []int{1, 3, 5, 7}, keysOf(dst))
	require.NoError(t, src.Verify())
	require.NoError(t, dst.Verify())
}

func TestTable_MoveRange(t *testing.T) {
	tbl := newSeqTable(6)
	var moved []int
	n, err := tbl.MoveRange(4, -3, func(k int, _ string) bool {
		moved = append(moved, k)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{4, 3, 2}, moved)
	assert.Equal(t, []int{0, 1, 5}, keysOf(tbl))

	n, err = tbl.MoveRange(0, 3, func(k int, _ string) bool { return k != 1 })
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int{1, 5}, keysOf(tbl))

	_, err = tbl.MoveRange(0, 3, func(int, string) bool { return true })
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 2, tbl.Size())
	require.NoError(t, tbl.Verify())
}
