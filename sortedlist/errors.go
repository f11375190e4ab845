package sortedlist

import "errors"

var (
	// ErrInvalidOption is returned by New when an option carries an unusable value.
	ErrInvalidOption = errors.New("invalid list option")

	// ErrNilComparator is returned when an insert is attempted without a comparator.
	ErrNilComparator = errors.New("nil comparator")

	// ErrDestroyed is returned by inserts on a list that has been destroyed.
	ErrDestroyed = errors.New("list destroyed")

	// ErrForeignHint is returned when the hint passed to InsertNear does not
	// belong to the list (or belonged to it before it was destroyed).
	ErrForeignHint = errors.New("hint node does not belong to this list")

	// ErrLockUnavailable is returned when the insertion lock could not be
	// acquired before the context ended. It wraps the context's error.
	ErrLockUnavailable = errors.New("insertion lock unavailable")
)
