package synth

import "fmt"

// MissingFieldError reports a construction attempt that left a required
// field (no default, no factory) unbound.
type MissingFieldError struct {
	Record string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Record, e.Field)
}

// UnknownFieldError reports a field name the record specification does not declare.
type UnknownFieldError struct {
	Record string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: unknown field %q", e.Record, e.Field)
}

// ImmutableFieldError reports a mutation attempt on a frozen instance.
type ImmutableFieldError struct {
	Record string
	Field  string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("%s: field %q is immutable", e.Record, e.Field)
}

// TypeMismatchError reports an ordering comparison against a non-record
// or a record of a different specification.
type TypeMismatchError struct {
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot compare %s against %s", e.Want, e.Got)
}
