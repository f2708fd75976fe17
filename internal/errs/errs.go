// Package errs holds the error kinds shared by the atlas, tile grid and
// scene packages. Callers match them with errors.As.
package errs

import "fmt"

// ValidationError reports malformed input: an atlas file or a persisted
// sprite map record.
type ValidationError struct {
	What   string // "atlas", "sprite map record", ...
	Field  string // JSON path of the offending field, empty for the whole document
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.What, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s: %s", e.What, e.Field, e.Reason)
}

// Invalid builds a ValidationError.
func Invalid(what, field, reason string) *ValidationError {
	return &ValidationError{What: what, Field: field, Reason: reason}
}

// PreconditionError is a programming error: an object was asked to do
// something its own invariants should have ruled out.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition failed: %s", e.Op, e.Reason)
}

// Precondition builds a PreconditionError.
func Precondition(op, reason string) *PreconditionError {
	return &PreconditionError{Op: op, Reason: reason}
}

// IOError wraps a failed read of an atlas or texture file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
