package parsers

import "fmt"

// MalformedFileError is returned when an upload cannot be decoded as a tabular sheet at all.
// It is raised before any store mutation.
type MalformedFileError struct {
	Format string
	Err    error
}

func (e *MalformedFileError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("malformed file: %v", e.Err)
	}
	return fmt.Sprintf("malformed %s file: %v", e.Format, e.Err)
}

func (e *MalformedFileError) Unwrap() error { return e.Err }
