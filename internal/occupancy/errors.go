package occupancy

import "errors"

// Business-rule rejections raised by the event transaction. Each one is
// terminal for the call that produced it: retrying without a state change
// would yield the same answer, so callers surface the message instead.
var (
	// ErrGymNotFound means the scanned gym id has no record, usually a
	// stale or mistyped QR link.
	ErrGymNotFound = errors.New("gym not found; the QR link may be stale or invalid")

	// ErrDuplicateEntry means the member is already marked inside.
	ErrDuplicateEntry = errors.New("already checked in at this gym; second entry was not recorded")

	// ErrDuplicateExit means the member is already marked outside.
	ErrDuplicateExit = errors.New("already checked out of this gym; exit was not recorded")

	// ErrCapacityExceeded means accepting the entry would push the active
	// set past the gym's capacity.
	ErrCapacityExceeded = errors.New("gym is at full capacity; entry was not recorded")
)

// IsRejection reports whether err is one of the business-rule rejections,
// as opposed to a storage failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrGymNotFound) ||
		errors.Is(err, ErrDuplicateEntry) ||
		errors.Is(err, ErrDuplicateExit) ||
		errors.Is(err, ErrCapacityExceeded)
}
