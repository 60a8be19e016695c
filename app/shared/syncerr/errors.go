// Package syncerr defines the error kinds shared by the ingestion flows.
package syncerr

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBatch is returned when an upload yields no data rows. Nothing is written.
	ErrEmptyBatch = errors.New("upload contains no data rows")

	// ErrSyncInProgress is returned when a sync for the same target is already running.
	ErrSyncInProgress = errors.New("a sync for this target is already in progress")

	// ErrInvalidPeriod is returned for a month outside 1..12 or a year that is not accepted.
	ErrInvalidPeriod = errors.New("invalid period")
)

// StoreWriteError reports a failed create/update/delete against the store. Op names the step
// ("delete players", "insert stats", ...). Earlier steps of the same sync may already have
// been applied when the store does not run the sync in a transaction.
type StoreWriteError struct {
	Op  string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store write failed during %s: %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// StoreWrite wraps err as a StoreWriteError. A nil err stays nil.
func StoreWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreWriteError{Op: op, Err: err}
}
