//go:build chainmap_opt_verify

package chainmap

// verifyMutations makes every structural mutation check the table
// invariants and panic on the first violation.
const verifyMutations = true
