//go:build chainmap_opt_cachelinesize_128

package chainmap

// CacheLineSize is fixed by the chainmap_opt_cachelinesize_128 build tag.
const CacheLineSize = 128
