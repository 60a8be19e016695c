package mvpservice

import "errors"

var (
	// ErrPeriodNotFound is returned for an unknown period identifier.
	ErrPeriodNotFound = errors.New("mvp period not found")

	// ErrPlayerNotFound is returned for an unknown player identifier.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrEmptyName is reported for an entry whose name cell is blank.
	ErrEmptyName = errors.New("entry has no name")
)
