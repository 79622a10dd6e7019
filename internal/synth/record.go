package synth

import (
	"fmt"
	"maps"
	"slices"

	"recordgen/internal/schema"
	"recordgen/internal/value"
)

// Record is a synthesized record type: a compiled specification with
// construction, representation, equality, and (opt-in) ordering behavior.
// A Record is read-only after compilation and safe for concurrent use.
type Record struct {
	spec      *schema.Spec
	index     map[string]int
	nested    map[string]*Record
	factories []Factory
}

// Spec returns the specification this record was compiled from.
func (r *Record) Spec() *schema.Spec {
	return r.spec
}

// Name returns the record type name.
func (r *Record) Name() string {
	return r.spec.Name
}

// New constructs an instance, binding each field to its supplied value or,
// if absent, to its default or the result of invoking its factory. Each
// factory runs once per call, so no default state is shared between
// instances. Unknown names fail with UnknownFieldError, unbound required
// fields with MissingFieldError.
func (r *Record) New(fields map[string]any) (*Instance, error) {
	for name := range fields {
		if _, ok := r.index[name]; !ok {
			return nil, &UnknownFieldError{Record: r.spec.Name, Field: name}
		}
	}

	values := make([]any, len(r.spec.Fields))

	for i := range r.spec.Fields {
		decl := &r.spec.Fields[i]

		supplied, ok := fields[decl.Name]
		if ok {
			bound, err := r.bind(decl, supplied)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", r.spec.Name, decl.Name, err)
			}

			values[i] = bound

			continue
		}

		switch {
		case decl.HasDefault:
			values[i] = copyDefault(decl.Default)
		case r.factories[i] != nil:
			bound, err := r.bind(decl, r.factories[i]())
			if err != nil {
				return nil, fmt.Errorf("%s.%s: factory: %w", r.spec.Name, decl.Name, err)
			}

			values[i] = bound
		default:
			return nil, &MissingFieldError{Record: r.spec.Name, Field: decl.Name}
		}
	}

	return &Instance{
		record: r,
		values: values,
		frozen: r.spec.Immutable,
	}, nil
}

// MustNew constructs an instance and panics on error. For tests and
// examples where the field map is known good.
func (r *Record) MustNew(fields map[string]any) *Instance {
	inst, err := r.New(fields)
	if err != nil {
		panic(err)
	}

	return inst
}

// bind coerces a supplied value against one field declaration. Nested
// record fields accept instances of the referenced record only.
func (r *Record) bind(decl *schema.FieldDecl, v any) (any, error) {
	if decl.Type.Kind == schema.KindRecord {
		inst, ok := v.(*Instance)
		if !ok {
			return nil, fmt.Errorf("expected %s instance, got %T", decl.Type.Record, v)
		}

		if inst.record != r.nested[decl.Type.Record] {
			return nil, fmt.Errorf("expected %s instance, got %s", decl.Type.Record, inst.Type())
		}

		return inst, nil
	}

	return value.Coerce(decl.Type, v)
}

// copyDefault shallow-copies literal list and map defaults so a shared
// declaration value cannot be mutated through one instance and observed
// through another.
func copyDefault(v any) any {
	switch t := v.(type) {
	case []any:
		return slices.Clone(t)
	case map[string]any:
		return maps.Clone(t)
	case []byte:
		return slices.Clone(t)
	default:
		return v
	}
}
