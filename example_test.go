package chainmap_test

import (
	"cmp"
	"fmt"

	"github.com/llxisdsh/chainmap"
)

func ExampleNew() {
	t := chainmap.New[string, int]()
	t.Add("a", 1)
	t.Add("b", 2)
	t.Put("a", 3)
	fmt.Println(t, t.Size())
	// Output: {a=3, b=2} 2
}

func ExampleTable_Sort() {
	t := chainmap.New[string, int]()
	for i, k := range []string{"pear", "fig", "apple", "kiwi"} {
		t.Add(k, i%2)
	}
	t.Sort(func(a, b chainmap.Entry[string, int]) int {
		return cmp.Compare(a.Value, b.Value)
	})
	fmt.Println(t)
	// Output: {pear=0, apple=0, fig=1, kiwi=1}
}

func ExampleTable_IterateRange() {
	t := chainmap.New[int, string]()
	for i, s := range []string{"zero", "one", "two", "three", "four"} {
		t.Add(i, s)
	}
	_ = t.IterateRange(3, -3, func(_ int, v string) bool {
		fmt.Println(v)
		return true
	})
	// Output:
	// three
	// two
	// one
}

func ExampleTable_MoveToStart() {
	t := chainmap.New[string, bool]()
	t.Add("x", true)
	t.Add("y", false)
	t.Add("z", true)
	t.MoveToStart("z")
	fmt.Println(t.Keys().ToSlice())
	// Output: [z x y]
}

func ExampleNewCustom() {
	t := chainmap.NewCustom[string, string](chainmap.FoldedStrings())
	t.Put("Content-Type", "text/plain")
	v, _ := t.Get("content-type")
	fmt.Println(v)
	// Output: text/plain
}

func ExampleEnumOf() {
	e := chainmap.EnumOf(3, 1, 3, 2)
	e.Sort(cmp.Compare[int])
	fmt.Println(e)
	// Output: [1, 2, 3]
}
