package chainmap

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Equality decides which keys a Table treats as the same logical key.
// Keys that are Equal must produce the same Hash.
type Equality[K any] interface {
	Hash(key K) uint64
	Equal(a, b K) bool
}

type identity[K comparable] struct {
	hash hashFunc
	seed uintptr
}

// Identity returns the strategy used by New: keys are compared with ==
// and hashed with the runtime's map hasher.
func Identity[K comparable]() Equality[K] {
	return identity[K]{hash: builtinHasher[K](), seed: newSeed()}
}

func (e identity[K]) Hash(key K) uint64 {
	return uint64(e.hash(noescape(unsafe.Pointer(&key)), e.seed))
}

func (identity[K]) Equal(a, b K) bool {
	return a == b
}

type equalityFunc[K any] struct {
	hash  func(K) uint64
	equal func(a, b K) bool
}

// EqualityFunc builds a pluggable strategy from a hash and an equality
// function. The hash is mixed before use, so plain field sums are fine.
func EqualityFunc[K any](hash func(K) uint64, equal func(a, b K) bool) Equality[K] {
	return equalityFunc[K]{hash: hash, equal: equal}
}

func (e equalityFunc[K]) Hash(key K) uint64 {
	return mix(e.hash(key))
}

func (e equalityFunc[K]) Equal(a, b K) bool {
	return e.equal(a, b)
}

type stringEquality struct{}

// Strings compares strings by value and hashes them with xxhash. The
// result does not depend on a per-process seed.
func Strings() Equality[string] {
	return stringEquality{}
}

func (stringEquality) Hash(key string) uint64 {
	return xxhash.Sum64String(key)
}

func (stringEquality) Equal(a, b string) bool {
	return a == b
}

type foldedEquality struct{}

// FoldedStrings treats strings that are equal under Unicode case folding
// as the same key.
func FoldedStrings() Equality[string] {
	return foldedEquality{}
}

func (foldedEquality) Hash(key string) uint64 {
	d := xxhash.New()
	var buf [64]byte
	n := 0
	for _, r := range key {
		if n+utf8.UTFMax > len(buf) {
			_, _ = d.Write(buf[:n])
			n = 0
		}
		n += utf8.EncodeRune(buf[n:], foldRune(r))
	}
	_, _ = d.Write(buf[:n])
	return d.Sum64()
}

func (foldedEquality) Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// foldRune maps r to the smallest rune of its case folding orbit.
func foldRune(r rune) rune {
	if r < utf8.RuneSelf {
		if 'a' <= r && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}
	m := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < m {
			m = f
		}
	}
	return m
}

type bytesEquality struct{}

// Bytes compares byte slices by content and hashes them with xxhash.
// Stored slices must not be modified while they are keys.
func Bytes() Equality[[]byte] {
	return bytesEquality{}
}

func (bytesEquality) Hash(key []byte) uint64 {
	return xxhash.Sum64(key)
}

func (bytesEquality) Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}
