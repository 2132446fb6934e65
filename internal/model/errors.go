package model

import "fmt"

// ValidationError describes a malformed transaction field. Row-level and
// recoverable: imports skip the row and count it, they never abort.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
