package chainmap

import (
	"cmp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyView(t *testing.T) {
	tbl := New[string, int]()
	for i, k := range []string{"pear", "apple", "fig", "kiwi"} {
		tbl.Add(k, i)
	}
	keys := tbl.Keys()
	assert.Equal(t, 4, keys.Len())
	assert.True(t, keys.Contains("fig"))
	assert.False(t, keys.Contains("plum"))
	assert.Equal(t, 1, keys.IndexOf("apple"))

	k, err := keys.At(2)
	require.NoError(t, err)
	assert.Equal(t, "fig", k)
	_, err = keys.At(4)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	first, _ := keys.First()
	last, _ := keys.Last()
	assert.Equal(t, "pear", first)
	assert.Equal(t, "kiwi", last)

	minKey, ok := keys.Min(strings.Compare)
	assert.True(t, ok)
	assert.Equal(t, "apple", minKey)
	maxKey, _ := keys.Max(strings.Compare)
	assert.Equal(t, "pear", maxKey)

	part, err := keys.CopyRange(3, -2)
	require.NoError(t, err)
	assert.Equal(t, []string{"kiwi", "fig"}, part)

	keys.Sort(strings.Compare)
	assert.True(t, keys.IsSorted(strings.Compare))
	assert.Equal(t, []string{"apple", "fig", "kiwi", "pear"}, keys.ToSlice())
	assert.Equal(t, []int{1, 2, 3, 0}, tbl.Values().ToSlice())

	assert.True(t, keys.Remove("fig"))
	assert.Equal(t, 3, tbl.Size())
	require.NoError(t, tbl.Verify())

	_, ok = New[string, int]().Keys().Min(strings.Compare)
	assert.False(t, ok)
}

func TestValueView(t *testing.T) {
	tbl := New[string, int]()
	for i, k := range []string{"a", "b", "c", "d", "e"} {
		tbl.Add(k, 10-i)
	}
	values := tbl.Values()
	assert.Equal(t, 5, values.Len())

	v, err := values.At(1)
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	old, err := values.Set(0, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, old)
	_, err = values.Set(5, 0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, values.SetRange(3, 1, 2))
	assert.Equal(t, []int{100, 9, 8, 1, 2}, values.ToSlice())
	require.ErrorIs(t, values.SetRange(4, 1, 2), ErrIndexOutOfRange)

	require.NoError(t, values.Fill(1, 2, 5))
	assert.Equal(t, []int{100, 5, 5, 1, 2}, values.ToSlice())

	assert.Equal(t, 1, values.IndexOf(func(v int) bool { return v == 5 }))
	assert.Equal(t, -1, values.IndexOf(func(v int) bool { return v == 42 }))
	assert.True(t, values.Contains(func(v int) bool { return v < 2 }))
	assert.Equal(t, 2, values.Count(func(v int) bool { return v == 5 }))

	minV, _ := values.Min(cmp.Compare[int])
	maxV, _ := values.Max(cmp.Compare[int])
	assert.Equal(t, 1, minV)
	assert.Equal(t, 100, maxV)

	assert.Equal(t, 2, values.ReplaceAll(func(v int) bool { return v == 5 }, 50))
	values.Substitute(func(v int) int { return v + 1 })
	assert.Equal(t, []int{101, 51, 51, 2, 3}, values.ToSlice())

	part, err := values.CopyRange(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{51, 51}, part)

	values.Sort(cmp.Compare[int])
	assert.True(t, values.IsSorted(cmp.Compare[int]))
	assert.Equal(t, []string{"d", "e", "b", "c", "a"}, tbl.Keys().ToSlice())
	require.NoError(t, tbl.Verify())
}
