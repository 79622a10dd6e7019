package schema

import (
	"fmt"
	"go/token"

	"gopkg.in/yaml.v3"

	"recordgen/internal/common"
	"recordgen/internal/diagnostic"
)

// Validate validates a schema file structurally.
// Default literals are only checked for shape (scalar vs sequence vs mapping)
// here; full coercion against the declared kind happens at compile time.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("schema_is_nil", "schema file is nil", "", "")
		return res
	}

	if common.IsEmpty(f.Records) {
		res.AddWarning("no_records", "schema file declares no records", "", "")
		return res
	}

	seenRecords := map[string]struct{}{}
	for i := range f.Records {
		name := f.Records[i].Name
		if _, ok := seenRecords[name]; ok {
			res.AddError("duplicate_record", fmt.Sprintf("duplicate record %q", name), name, "")
			continue
		}

		seenRecords[name] = struct{}{}
	}

	for i := range f.Records {
		validateRecord(res, f, &f.Records[i])
	}

	return res
}

func validateRecord(res *diagnostic.Diagnostics, f *File, rd *RecordDef) {
	if !token.IsIdentifier(rd.Name) {
		res.AddError("invalid_record_name",
			fmt.Sprintf("record name %q is not a valid identifier", rd.Name), rd.Name, "")
	}

	if common.IsEmpty(rd.Fields) {
		res.AddWarning("no_fields", "record declares no fields", rd.Name, "")
	}

	seenFields := map[string]struct{}{}

	for i := range rd.Fields {
		fd := &rd.Fields[i]

		if _, ok := seenFields[fd.Name]; ok {
			res.AddError("duplicate_field",
				fmt.Sprintf("duplicate field %q", fd.Name), rd.Name, fd.Name)

			continue
		}

		seenFields[fd.Name] = struct{}{}

		validateField(res, f, rd, fd)
	}
}

func validateField(res *diagnostic.Diagnostics, f *File, rd *RecordDef, fd *FieldDef) {
	if !token.IsIdentifier(fd.Name) {
		res.AddError("invalid_field_name",
			fmt.Sprintf("field name %q is not a valid identifier", fd.Name), rd.Name, fd.Name)
	}

	kind, ok := ParseKind(fd.Kind)
	if !ok {
		res.AddError("unknown_kind",
			fmt.Sprintf("unknown kind %q", fd.Kind), rd.Name, fd.Name)

		return
	}

	validateFieldType(res, f, rd, fd, kind)

	if fd.HasDefault() && fd.Factory != "" {
		res.AddError("default_factory_conflict",
			"field declares both a default and a factory", rd.Name, fd.Name)
	}

	if fd.HasDefault() {
		validateDefaultShape(res, rd, fd, kind)
	}

	if rd.Ordered {
		ref := fd.TypeRef()
		if !orderableInFile(ref, f) {
			res.AddError("unorderable_field",
				fmt.Sprintf("ordered record has field of unorderable type %s", ref), rd.Name, fd.Name)
		}
	}
}

func validateFieldType(
	res *diagnostic.Diagnostics,
	f *File,
	rd *RecordDef,
	fd *FieldDef,
	kind Kind,
) {
	switch kind {
	case KindList, KindMap:
		if fd.Elem != "" {
			elem, ok := ParseKind(fd.Elem)
			if !ok {
				res.AddError("unknown_elem_kind",
					fmt.Sprintf("unknown element kind %q", fd.Elem), rd.Name, fd.Name)
			} else if elem == KindList || elem == KindMap || elem == KindRecord {
				res.AddError("invalid_elem_kind",
					fmt.Sprintf("element kind %q must be scalar or bytes", fd.Elem), rd.Name, fd.Name)
			}
		}
	case KindRecord:
		if fd.Record == "" {
			res.AddError("missing_record_ref",
				"record kind requires a record name", rd.Name, fd.Name)

			return
		}

		if findRecord(f, fd.Record) == nil {
			res.AddError("unknown_record_ref",
				fmt.Sprintf("referenced record %q not declared", fd.Record), rd.Name, fd.Name)
		}
	default:
		if fd.Elem != "" {
			res.AddWarning("elem_ignored",
				fmt.Sprintf("elem has no meaning for kind %q", fd.Kind), rd.Name, fd.Name)
		}

		if fd.Record != "" {
			res.AddWarning("record_ignored",
				fmt.Sprintf("record has no meaning for kind %q", fd.Kind), rd.Name, fd.Name)
		}
	}
}

// validateDefaultShape checks the YAML node shape against the declared kind.
// A sequence default for a list is legal; a mapping default for a scalar is not.
func validateDefaultShape(res *diagnostic.Diagnostics, rd *RecordDef, fd *FieldDef, kind Kind) {
	node := fd.Default

	switch kind {
	case KindList:
		if node.Kind != yaml.SequenceNode {
			res.AddError("default_shape",
				"default for a list field must be a sequence", rd.Name, fd.Name)
		} else {
			res.AddWarning("mutable_default",
				"literal list default is shared across instances; prefer a factory", rd.Name, fd.Name)
		}
	case KindMap:
		if node.Kind != yaml.MappingNode {
			res.AddError("default_shape",
				"default for a map field must be a mapping", rd.Name, fd.Name)
		} else {
			res.AddWarning("mutable_default",
				"literal map default is shared across instances; prefer a factory", rd.Name, fd.Name)
		}
	case KindRecord:
		res.AddError("default_shape",
			"record fields take no literal default; use a factory", rd.Name, fd.Name)
	default:
		if node.Kind != yaml.ScalarNode {
			res.AddError("default_shape",
				fmt.Sprintf("default for kind %q must be a scalar", fd.Kind), rd.Name, fd.Name)
		}
	}
}

// orderableInFile extends TypeRef.IsOrderable with schema-level knowledge:
// a nested record field is orderable when the referenced record is itself
// declared ordered.
func orderableInFile(ref TypeRef, f *File) bool {
	if ref.Kind == KindRecord {
		rd := findRecord(f, ref.Record)
		return rd != nil && rd.Ordered
	}

	return ref.IsOrderable()
}

func findRecord(f *File, name string) *RecordDef {
	for i := range f.Records {
		if f.Records[i].Name == name {
			return &f.Records[i]
		}
	}

	return nil
}
