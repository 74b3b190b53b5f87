package chainmap

import (
	"math/bits"
	"math/rand/v2"
	"unsafe"
)

type hashFunc func(unsafe.Pointer, uintptr) uintptr

// builtinHasher returns the hash function the Go runtime uses for map keys
// of type K. Integer keys hash to their own value: the bucket index masks
// the low bits and sequential integers spread without collisions.
func builtinHasher[K comparable]() hashFunc {
	switch any(*new(K)).(type) {
	case uint, int, uintptr:
		return func(value unsafe.Pointer, _ uintptr) uintptr {
			return *(*uintptr)(value)
		}
	case uint64, int64:
		if bits.UintSize == 32 {
			return func(value unsafe.Pointer, _ uintptr) uintptr {
				v := *(*uint64)(value)
				return uintptr(v) ^ uintptr(v>>32)
			}
		}
		return func(value unsafe.Pointer, _ uintptr) uintptr {
			return uintptr(*(*uint64)(value))
		}
	case uint32, int32:
		return func(value unsafe.Pointer, _ uintptr) uintptr {
			return uintptr(*(*uint32)(value))
		}
	case uint16, int16:
		return func(value unsafe.Pointer, _ uintptr) uintptr {
			return uintptr(*(*uint16)(value))
		}
	case uint8, int8:
		return func(value unsafe.Pointer, _ uintptr) uintptr {
			return uintptr(*(*uint8)(value))
		}
	default:
		var m map[K]struct{}
		return iTypeOf(m).MapType().Hasher
	}
}

// newSeed returns a random seed for the runtime hasher.
func newSeed() uintptr {
	return uintptr(rand.Uint64())
}

// mix scatters weak user hashes over the low bits that select a bucket.
func mix(h uint64) uint64 {
	h *= hashPrime
	return h ^ h>>32
}

// nextPowOf2 calculates the smallest power of 2 that is greater than or equal to n.
func nextPowOf2(n int) int {
	if n <= 1 {
		return 1
	}
	v := uint64(n)
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return int(v)
}

// noescape hides a pointer from escape analysis.  noescape is
// the identity function but escape analysis doesn't think the
// output depends on the input.
//
// nolint:all
//
//go:nosplit
func noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}

// The declarations below mirror the runtime's type descriptors far enough
// to reach the map hasher. They must be checked on every Go upgrade.

type iTFlag uint8
type iKind uint8
type iNameOff int32
type iTypeOff int32

type iType struct {
	Size_       uintptr
	PtrBytes    uintptr
	Hash        uint32
	TFlag       iTFlag
	Align_      uint8
	FieldAlign_ uint8
	Kind_       iKind
	Equal       func(unsafe.Pointer, unsafe.Pointer) bool
	GCData      *byte
	Str         iNameOff
	PtrToThis   iTypeOff
}

func (t *iType) MapType() *iMapType {
	return (*iMapType)(unsafe.Pointer(t))
}

// iMapType mirrors the runtime's map type descriptor up to Hasher. It
// relies on Go's internal type representation and should be verified for
// compatibility with each Go version upgrade. Group is the slot group type
// of Go 1.24 and later; the bucket type of earlier releases sits at the
// same offset.
type iMapType struct {
	iType
	Key   *iType
	Elem  *iType
	Group *iType // internal type representing a slot group
	// function for hashing keys (ptr to key, seed) -> hash
	Hasher func(unsafe.Pointer, uintptr) uintptr
}

func iTypeOf(a any) *iType {
	eface := *(*iEmptyInterface)(unsafe.Pointer(&a))
	return (*iType)(noescape(unsafe.Pointer(eface.Type)))
}

type iEmptyInterface struct {
	Type *iType
	Data unsafe.Pointer
}
