package synth

import (
	"fmt"
	"strings"

	"recordgen/internal/value"
)

// Instance is one constructed record value. Reads are safe to share across
// goroutines when the record is immutable; concurrent mutation of mutable
// instances is the caller's responsibility.
type Instance struct {
	record *Record
	values []any
	frozen bool
}

// Record returns the synthesized type this instance belongs to.
func (in *Instance) Record() *Record {
	return in.record
}

// Type returns the record type name.
func (in *Instance) Type() string {
	return in.record.spec.Name
}

// Get returns the current value of the named field.
func (in *Instance) Get(name string) (any, error) {
	i, ok := in.record.index[name]
	if !ok {
		return nil, &UnknownFieldError{Record: in.Type(), Field: name}
	}

	return in.values[i], nil
}

// MustGet returns the named field value and panics on unknown names.
func (in *Instance) MustGet(name string) any {
	v, err := in.Get(name)
	if err != nil {
		panic(err)
	}

	return v
}

// Set rebinds the named field. Fails with ImmutableFieldError on frozen
// instances and UnknownFieldError for undeclared names; the new value is
// coerced against the declared kind.
func (in *Instance) Set(name string, v any) error {
	i, ok := in.record.index[name]
	if !ok {
		return &UnknownFieldError{Record: in.Type(), Field: name}
	}

	if in.frozen {
		return &ImmutableFieldError{Record: in.Type(), Field: name}
	}

	bound, err := in.record.bind(&in.record.spec.Fields[i], v)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", in.Type(), name, err)
	}

	in.values[i] = bound

	return nil
}

// Fields returns a snapshot of the current field values keyed by name.
func (in *Instance) Fields() map[string]any {
	out := make(map[string]any, len(in.values))
	for name, i := range in.record.index {
		out[name] = in.values[i]
	}

	return out
}

// String renders the type name and each field name paired with its current
// value, in declaration order: TypeName(a=1, b='x').
func (in *Instance) String() string {
	var b strings.Builder

	b.WriteString(in.Type())
	b.WriteByte('(')

	for i := range in.record.spec.Fields {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(in.record.spec.Fields[i].Name)
		b.WriteByte('=')
		b.WriteString(value.Format(in.values[i]))
	}

	b.WriteByte(')')

	return b.String()
}

// Equal reports whether both instances are of the same record type and all
// field values compare equal pairwise, in declaration order. Short-circuits
// on the first mismatch.
func (in *Instance) Equal(other *Instance) bool {
	if other == nil || in.record != other.record {
		return false
	}

	for i := range in.values {
		if !value.Equal(in.values[i], other.values[i]) {
			return false
		}
	}

	return true
}

// Compare orders two instances lexicographically over field values in
// declaration order. It fails with TypeMismatchError when other is nil or
// of a different record specification, and errors when the record did not
// opt in to ordering.
func (in *Instance) Compare(other *Instance) (int, error) {
	if !in.record.spec.Ordered {
		return 0, fmt.Errorf("record %s does not define an order", in.Type())
	}

	if other == nil {
		return 0, &TypeMismatchError{Want: in.Type(), Got: "nil"}
	}

	if in.record != other.record {
		return 0, &TypeMismatchError{Want: in.Type(), Got: other.Type()}
	}

	for i := range in.values {
		c, err := value.Compare(in.values[i], other.values[i])
		if err != nil {
			return 0, fmt.Errorf("%s.%s: %w", in.Type(), in.record.spec.Fields[i].Name, err)
		}

		if c != 0 {
			return c, nil
		}
	}

	return 0, nil
}

// EqualValue implements value.Equaler so nested instances take part in
// field equality.
func (in *Instance) EqualValue(other any) bool {
	otherInst, ok := other.(*Instance)
	return ok && in.Equal(otherInst)
}

// CompareValue implements value.Comparer so nested instances take part in
// field ordering.
func (in *Instance) CompareValue(other any) (int, error) {
	otherInst, ok := other.(*Instance)
	if !ok {
		return 0, &TypeMismatchError{Want: in.Type(), Got: fmt.Sprintf("%T", other)}
	}

	return in.Compare(otherInst)
}
