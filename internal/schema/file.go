package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File represents the root of a YAML record schema file.
// This is the authoritative, human-reviewed record declaration input.
type File struct {
	// Version of the schema format (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Records is the list of record declarations.
	Records []RecordDef `yaml:"records"`
}

// RecordDef declares one record specification in a schema file.
type RecordDef struct {
	// Name of the record type.
	Name string `yaml:"name"`

	// Immutable freezes instances at construction.
	Immutable bool `yaml:"immutable,omitempty"`

	// Ordered opts in to lexicographic comparison generation.
	Ordered bool `yaml:"ordered,omitempty"`

	// Fields is the ordered field declaration list.
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef declares one field of a record.
//
// YAML formats supported for the type:
//   - kind: string
//   - kind: list / elem: int
//   - kind: record / record: Address
type FieldDef struct {
	// Name of the field.
	Name string `yaml:"name"`

	// Kind is the semantic type tag name (see ParseKind).
	Kind string `yaml:"kind"`

	// Elem is the element kind for list, or the value kind for map.
	Elem string `yaml:"elem,omitempty"`

	// Record is the referenced record name when Kind is "record".
	Record string `yaml:"record,omitempty"`

	// Default is the literal default value. Mutually exclusive with Factory.
	Default *yaml.Node `yaml:"default,omitempty"`

	// Factory names a registered default factory, invoked fresh per instance.
	// Mutually exclusive with Default.
	Factory string `yaml:"factory,omitempty"`
}

// HasDefault returns true if the field declares a literal default.
func (f *FieldDef) HasDefault() bool {
	return f.Default != nil && f.Default.Kind != 0
}

// DefaultValue decodes the default literal into a plain Go value
// (string, int, float64, bool, []any, or map[string]any).
func (f *FieldDef) DefaultValue() (any, error) {
	if !f.HasDefault() {
		return nil, nil
	}

	var v any

	err := f.Default.Decode(&v)
	if err != nil {
		return nil, fmt.Errorf("decoding default for field %q: %w", f.Name, err)
	}

	return v, nil
}

// TypeRef resolves the declared kind names into a TypeRef.
// Unknown kind names surface as errors during Validate, not here; this
// returns the zero TypeRef for unknown kinds.
func (f *FieldDef) TypeRef() TypeRef {
	kind, ok := ParseKind(f.Kind)
	if !ok {
		return TypeRef{}
	}

	ref := TypeRef{Kind: kind, Record: f.Record}

	if f.Elem != "" {
		if elem, ok := ParseKind(f.Elem); ok {
			ref.Elem = &TypeRef{Kind: elem}
		}
	}

	return ref
}
