package chainmap

import (
	"github.com/pkg/errors"
)

// Sentinel errors returned by Table, Enum and the projections. Returned
// errors wrap one of these with context, so match them with errors.Is.
var (
	// ErrIndexOutOfRange is returned when an index or a signed-length
	// range does not fit into [0, Size()-1].
	ErrIndexOutOfRange = errors.New("chainmap: index out of range")

	// ErrCapacityExceeded is returned when a requested capacity cannot be
	// addressed by the bucket index or the entry arena.
	ErrCapacityExceeded = errors.New("chainmap: capacity exceeded")

	// ErrUnsupported is returned for operations the table refuses to
	// perform.
	ErrUnsupported = errors.New("chainmap: unsupported operation")

	// ErrHashChangingReplace is returned by ReplaceKey when the new key is
	// not equal to the old one under the table's equality.
	ErrHashChangingReplace = errors.Wrap(ErrUnsupported, "hash-changing replacement")

	// ErrIllegalSwapBounds is returned when two swapped blocks overlap.
	ErrIllegalSwapBounds = errors.New("chainmap: illegal swap bounds")

	// ErrInvalidConfig is returned (or panicked with, from constructors)
	// for non-positive or non-finite hash densities and negative lengths.
	ErrInvalidConfig = errors.New("chainmap: invalid configuration")

	// ErrCorrupted is returned by Verify when the bucket index and the
	// sequence chain disagree.
	ErrCorrupted = errors.New("chainmap: corrupted table")
)

func indexError(index, size int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", index, size)
}

func rangeError(lo, hi int64, size int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "range [%d;%d] not in [0;%d]", lo, hi, size-1)
}

func capacityError(required int64, limit int) error {
	return errors.Wrapf(ErrCapacityExceeded, "required %d, maximum %d", required, limit)
}
