package schema

// TypeRef is the resolved type of a field declaration.
type TypeRef struct {
	// Kind is the semantic type tag.
	Kind Kind
	// Elem is the element type for KindList, and the value type for KindMap.
	// Nil means untyped elements (any scalar mix allowed, unordered).
	Elem *TypeRef
	// Record is the referenced specification name for KindRecord.
	Record string
}

// String returns a schema-file spelling of the type, e.g. "list", "list(int)", "record(Address)".
func (t TypeRef) String() string {
	switch {
	case t.Kind == KindRecord && t.Record != "":
		return "record(" + t.Record + ")"
	case t.Elem != nil:
		return t.Kind.Name() + "(" + t.Elem.String() + ")"
	default:
		return t.Kind.Name()
	}
}

// IsOrderable reports whether values of this type admit a total order.
// A list is orderable only when its element type is declared and orderable.
func (t TypeRef) IsOrderable() bool {
	if t.Kind == KindList {
		return t.Elem != nil && t.Elem.IsOrderable()
	}

	return t.Kind.IsOrderable()
}

// FieldDecl is a single named, typed slot of a record specification.
type FieldDecl struct {
	// Name of the field. Must be a valid identifier, unique within the spec.
	Name string
	// Type of the field.
	Type TypeRef
	// Default is the coerced default value. Only meaningful when HasDefault is true.
	Default any
	// HasDefault distinguishes an explicit default (possibly nil-valued kinds) from none.
	HasDefault bool
	// Factory names a registered default factory, invoked fresh per constructed
	// instance. Mutually exclusive with Default.
	Factory string
}

// Required returns true if the field has neither a default nor a factory,
// so a value must be supplied at construction.
func (f *FieldDecl) Required() bool {
	return !f.HasDefault && f.Factory == ""
}

// Spec is an ordered, immutable record specification: the input to synthesis.
// Order is significant for constructor parameters and representation only.
type Spec struct {
	// Name of the record type, e.g. "Record" or "Order".
	Name string
	// Fields in declaration order.
	Fields []FieldDecl
	// Immutable freezes instances at construction; mutation fails afterwards.
	Immutable bool
	// Ordered opts in to lexicographic comparison over field values.
	Ordered bool
}

// Field returns the declaration with the given name, or nil if absent.
func (s *Spec) Field(name string) *FieldDecl {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}

	return nil
}

// FieldNames returns the field names in declaration order.
func (s *Spec) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i := range s.Fields {
		names[i] = s.Fields[i].Name
	}

	return names
}

// RecordRefs returns the names of nested record specifications referenced by
// this spec's fields, in declaration order, without duplicates.
func (s *Spec) RecordRefs() []string {
	seen := map[string]struct{}{}

	var refs []string

	for i := range s.Fields {
		for t := &s.Fields[i].Type; t != nil; t = t.Elem {
			if t.Kind != KindRecord || t.Record == "" {
				continue
			}

			if _, ok := seen[t.Record]; ok {
				continue
			}

			seen[t.Record] = struct{}{}
			refs = append(refs, t.Record)
		}
	}

	return refs
}
