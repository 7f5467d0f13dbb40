package models

import (
	"fmt"
	"strings"
)

// Validator is implemented by every response envelope. Validate reports the
// first required field that is missing or malformed.
type Validator interface {
	Validate() error
}

// FieldError names the offending field using its JSON path.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q %s", e.Field, e.Reason)
}

func missing(path ...string) error {
	return &FieldError{Field: strings.Join(path, "."), Reason: "is required"}
}

func invalid(reason string, path ...string) error {
	return &FieldError{Field: strings.Join(path, "."), Reason: reason}
}

func indexed(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}
