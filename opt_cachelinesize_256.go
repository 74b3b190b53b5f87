//go:build chainmap_opt_cachelinesize_256

package chainmap

// CacheLineSize is fixed by the chainmap_opt_cachelinesize_256 build tag.
const CacheLineSize = 256
