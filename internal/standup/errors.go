package standup

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate indicates a date that does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrStoreUnavailable wraps record store failures so callers can tell
	// "the store was down" apart from "no one submitted".
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// ValidationError reports a missing required submission field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s must not be empty", e.Field)
}
