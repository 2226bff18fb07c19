package curve

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record matches a requested label. A missing
// reference state must surface to the caller; substituting a default would
// produce a misleading comparison.
var ErrNotFound = errors.New("record not found")

// InvalidArgumentError reports a malformed input detected before any
// computation proceeds.
type InvalidArgumentError struct {
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

func invalidArgf(format string, args ...any) error {
	return InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}
