package model

import "fmt"

// ValidationError reports a missing or malformed input field. It is returned
// before any persistence happens and maps to a client error at the boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}
