package schema

import (
	"fmt"
	"strings"
)

// Mismatch records a single coercion failure: the field, the declared type
// hint, and the value that could not be coerced.
type Mismatch struct {
	Field    string
	Expected string
	Actual   any
}

func (m Mismatch) String() string {
	return fmt.Sprintf("field %q: expected %s, got %T (%v)", m.Field, m.Expected, m.Actual, m.Actual)
}

// ValidationError reports everything wrong with a raw parameter set: the
// required fields that were absent and the supplied fields that could not be
// coerced to their declared type.
type ValidationError struct {
	Missing    []string
	Mismatches []Mismatch
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required parameters: %s", strings.Join(e.Missing, ", ")))
	}
	for _, m := range e.Mismatches {
		parts = append(parts, m.String())
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return strings.Join(parts, "; ")
}

// HasMissing reports whether the named field is among the missing ones.
func (e *ValidationError) HasMissing(field string) bool {
	for _, m := range e.Missing {
		if m == field {
			return true
		}
	}
	return false
}
