package mvpdb

import "errors"

var (
	// ErrNotFound indicates the requested period does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePeriod indicates a period for the same month and year already exists.
	ErrDuplicatePeriod = errors.New("period already exists")

	// ErrUnknownReference indicates an entry references a missing period or player.
	ErrUnknownReference = errors.New("entry references unknown period or player")
)
