// Package chainmap provides ordered hash tables: a resizable bucket index
// for lookups combined with a doubly linked chain that keeps entries in a
// deterministic order, independent of hashing.
//
// # Overview
//
// [Table] maps keys to values and remembers the order in which entries
// were added. Overwriting a value keeps the entry's position; growing or
// rehashing the index never reorders anything:
//
//	t := chainmap.New[string, int]()
//	t.Add("a", 1)
//	t.Add("b", 2)
//	t.Put("a", 3)
//	fmt.Println(t) // {a=3, b=2}
//
// The order changes only through explicit operations: [Table.MoveToStart],
// [Table.MoveToEnd], [Table.Swap], [Table.ShiftTo], [Table.Reverse] and
// the sorts. [Table.Sort] is an in-place, stable merge sort on the chain;
// if the comparator panics, the previous order is restored before the
// panic continues.
//
// # Equality
//
// [New] compares keys with == and hashes them with the runtime's map
// hasher. [NewCustom] takes an [Equality], which lets keys such as byte
// slices or case-insensitive strings be used; see [Strings],
// [FoldedStrings], [Bytes] and [EqualityFunc].
//
// # Ranges
//
// Ranged operations take an offset and a signed length. A positive length
// covers offset, offset+1, ... forward; a negative length covers offset,
// offset-1, ... backward. Ranges are validated before anything changes and
// fail with an error wrapping [ErrIndexOutOfRange].
//
// # Sweeps
//
// Visitors return false to stop. Read-only traversals have no side
// effects. Mutating sweeps such as [Table.Process] and [Table.MoveTo] keep
// the removals made before a visitor stops or panics.
//
// # Build tags
//
//   - chainmap_opt_verify checks all invariants after every structural
//     change and panics on the first violation.
//   - chainmap_opt_cachelinesize_{32,64,128,256} fixes [CacheLineSize],
//     which sizes the default bucket array.
//
// Tables are not safe for concurrent use.
package chainmap
