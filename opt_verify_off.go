//go:build !chainmap_opt_verify

package chainmap

// verifyMutations is set by the chainmap_opt_verify build tag.
const verifyMutations = false
