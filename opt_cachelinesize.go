//go:build !chainmap_opt_cachelinesize_32 && !chainmap_opt_cachelinesize_64 && !chainmap_opt_cachelinesize_128 && !chainmap_opt_cachelinesize_256

package chainmap

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize sizes the default bucket array so that a fresh table's
// index fits one cache line. It's calculated using the `golang.org/x/sys`
// package unless one of the chainmap_opt_cachelinesize_* tags is set.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
