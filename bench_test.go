package chainmap

import (
	"cmp"
	"fmt"
	"testing"
)

var (
	testDataSmall [8]string
	testData      [128]string
	testDataLarge [128 << 10]string

	testDataIntLarge [128 << 10]int
)

func init() {
	for i := range testDataSmall {
		testDataSmall[i] = fmt.Sprintf("%b", i)
	}
	for i := range testData {
		testData[i] = fmt.Sprintf("%b", i)
	}
	for i := range testDataLarge {
		testDataLarge[i] = fmt.Sprintf("%b", i)
	}
	for i := range testDataIntLarge {
		testDataIntLarge[i] = i
	}
}

func BenchmarkTableGetSmall(b *testing.B) {
	benchmarkTableGet(b, testDataSmall[:])
}

func BenchmarkTableGet(b *testing.B) {
	benchmarkTableGet(b, testData[:])
}

func BenchmarkTableGetLarge(b *testing.B) {
	benchmarkTableGet(b, testDataLarge[:])
}

func benchmarkTableGet(b *testing.B, data []string) {
	b.ReportAllocs()
	t := New[string, int]()
	for i := range data {
		t.Add(data[i], i)
	}
	b.ResetTimer()
	i := 0
	for n := 0; n < b.N; n++ {
		_, _ = t.Get(data[i])
		i++
		if i >= len(data) {
			i = 0
		}
	}
}

func BenchmarkTableAddRemove(b *testing.B) {
	b.ReportAllocs()
	t := New[int, int]()
	data := testDataIntLarge[:]
	b.ResetTimer()
	i := 0
	for n := 0; n < b.N; n++ {
		if !t.Add(data[i], i) {
			t.Remove(data[i])
		}
		i++
		if i >= len(data) {
			i = 0
		}
	}
}

func BenchmarkTableGrow(b *testing.B) {
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		t := New[int, int]()
		for _, k := range testDataIntLarge[:4096] {
			t.Add(k, k)
		}
	}
}

func BenchmarkTableSort(b *testing.B) {
	b.ReportAllocs()
	t := New[string, int]()
	for i, k := range testDataLarge {
		t.Add(k, i)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		t.Reverse()
		t.SortByKey(cmp.Compare[string])
	}
}
