package chainmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnum_Basics(t *testing.T) {
	e := EnumOf("b", "a", "c", "a")
	assert.Equal(t, 3, e.Size())
	assert.Equal(t, "[b, a, c]", e.String())
	assert.False(t, e.Add("b"))
	assert.True(t, e.Add("d"))
	assert.True(t, e.Contains("c"))
	assert.Equal(t, 2, e.IndexOf("c"))

	k, err := e.At(3)
	require.NoError(t, err)
	assert.Equal(t, "d", k)

	e.Sort(strings.Compare)
	assert.Equal(t, []string{"a", "b", "c", "d"}, e.ToSlice())
	e.Reverse()
	assert.Equal(t, []string{"d", "c", "b", "a"}, e.ToSlice())
	assert.True(t, e.MoveToStart("a"))
	assert.True(t, e.MoveToEnd("d"))
	assert.Equal(t, []string{"a", "c", "b", "d"}, e.ToSlice())

	require.NoError(t, e.RemoveRange(1, 2))
	assert.Equal(t, []string{"a", "d"}, e.ToSlice())
	assert.True(t, e.Remove("a"))
	assert.False(t, e.Remove("a"))
	require.NoError(t, e.Verify())

	assert.Equal(t, 1, e.RemoveBy(func(k string) bool { return k == "d" }))
	assert.True(t, e.IsEmpty())
}

func TestEnum_CustomEquality(t *testing.T) {
	e := NewCustomEnum(FoldedStrings())
	assert.True(t, e.Add("Go"))
	assert.False(t, e.Add("GO"))
	assert.False(t, e.Put("go"))
	stored, ok := e.Get("gO")
	assert.True(t, ok)
	assert.Equal(t, "go", stored)
	assert.Equal(t, 1, e.Size())
}

func TestEnum_CopyAndCapacity(t *testing.T) {
	e := NewEnum[int](WithInitialLength(1))
	require.NoError(t, e.EnsureCapacity(64))
	assert.GreaterOrEqual(t, e.Table().Capacity(), 64)
	for i := 0; i < 64; i++ {
		e.Add(i)
	}
	assert.Equal(t, 1, e.Table().Stats().Rebuilds)

	c := e.Copy()
	assert.True(t, e.EqualsContent(c))
	c.Remove(10)
	assert.False(t, e.EqualsContent(c))

	e.Clear()
	e.Optimize()
	assert.Equal(t, 1, e.Table().BucketLength())
	assert.Equal(t, 0, e.Rehash())
	assert.Equal(t, 63, c.Size())
}

func TestEnum_PrependInsert(t *testing.T) {
	e := EnumOf("b", "c")
	assert.True(t, e.Prepend("a"))
	assert.False(t, e.Prepend("c"))
	ok, err := e.Insert(2, "x")
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = e.Insert(9, "y")
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, []string{"a", "b", "x", "c"}, e.ToSlice())
	require.NoError(t, e.Verify())
}
