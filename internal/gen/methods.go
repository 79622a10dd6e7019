package gen

import (
	"fmt"
	"strconv"
	"strings"

	"recordgen/internal/schema"
)

// buildTemplateData constructs the template data for one record spec.
func (g *Generator) buildTemplateData(spec *schema.Spec) (*templateData, error) {
	imports := map[string]struct{}{}

	data := &templateData{
		PackageName:      g.config.PackageName,
		Filename:         filename(spec),
		TypeName:         goName(spec.Name),
		TypeDoc:          typeDoc(spec),
		Ordered:          spec.Ordered,
		GenerateComments: g.config.GenerateComments,
		Constructor: constructorData{
			Name:       "New" + goName(spec.Name),
			OptionType: goName(spec.Name) + "Option",
		},
	}

	for i := range spec.Fields {
		decl := &spec.Fields[i]
		field := fieldGoName(spec, decl)

		typeImports(decl.Type, imports)

		data.StructFields = append(data.StructFields, structField{
			Name:   field,
			GoType: goType(decl.Type),
		})

		if spec.Immutable {
			data.Getters = append(data.Getters, getterData{
				Method: goName(decl.Name),
				Field:  field,
				GoType: goType(decl.Type),
			})
		}

		init, err := g.buildInit(spec, decl, field, imports)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", decl.Name, err)
		}

		data.Constructor.Inits = append(data.Constructor.Inits, init)

		if decl.Required() {
			data.Constructor.Params = append(data.Constructor.Params, paramData{
				Name:   unexported(decl.Name),
				GoType: goType(decl.Type),
			})
		} else {
			data.Options = append(data.Options, optionData{
				FuncName: goName(spec.Name) + "With" + goName(decl.Name),
				Field:    field,
				Param:    decl.Name,
				GoType:   goType(decl.Type),
			})
		}

		equal, err := equalCheck(decl.Type, "r."+field, "other."+field, imports)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", decl.Name, err)
		}

		data.EqualChecks = append(data.EqualChecks, equal)

		if spec.Ordered {
			stanza, err := compareStanza(decl.Type, "r."+field, "other."+field, imports)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", decl.Name, err)
			}

			data.CompareStanzas = append(data.CompareStanzas, stanza)
		}
	}

	format, err := formatExpr(spec, imports)
	if err != nil {
		return nil, err
	}

	data.FormatExpr = format
	data.Imports = sortImports(imports)

	return data, nil
}

// buildInit renders one constructor field initialization.
func (g *Generator) buildInit(
	spec *schema.Spec,
	decl *schema.FieldDecl,
	field string,
	imports map[string]struct{},
) (initData, error) {
	switch {
	case decl.HasDefault:
		expr, err := defaultExpr(decl.Type, decl.Default, imports)
		if err != nil {
			return initData{}, err
		}

		return initData{Field: field, Expr: expr}, nil
	case decl.Factory != "":
		fe, ok := g.config.Factories[decl.Factory]
		if !ok {
			// A factory producing a fresh empty collection needs no mapping.
			if decl.Type.Kind == schema.KindList || decl.Type.Kind == schema.KindMap {
				return initData{Field: field, Expr: goType(decl.Type) + "{}"}, nil
			}

			return initData{}, fmt.Errorf("factory %q has no Go expression configured", decl.Factory)
		}

		if fe.Import != "" {
			imports[fe.Import] = struct{}{}
		}

		return initData{Field: field, Expr: fe.Expr}, nil
	default:
		return initData{Field: field, Expr: unexported(decl.Name)}, nil
	}
}

// formatExpr builds the fmt.Sprintf call behind the generated String method.
// Field names keep their declared spelling; strings, times, and durations
// are single-quoted.
func formatExpr(spec *schema.Spec, imports map[string]struct{}) (string, error) {
	var verbs []string

	var args []string

	for i := range spec.Fields {
		decl := &spec.Fields[i]
		field := "r." + fieldGoName(spec, decl)

		verb, arg, err := formatVerb(decl.Type, field)
		if err != nil {
			return "", fmt.Errorf("field %s: %w", decl.Name, err)
		}

		verbs = append(verbs, decl.Name+"="+verb)
		args = append(args, arg)
	}

	layout := goName(spec.Name) + "(" + strings.Join(verbs, ", ") + ")"

	if len(args) == 0 {
		return strconv.Quote(layout), nil
	}

	imports["fmt"] = struct{}{}

	return "fmt.Sprintf(" + strconv.Quote(layout) + ", " + strings.Join(args, ", ") + ")", nil
}

func formatVerb(ref schema.TypeRef, field string) (verb, arg string, err error) {
	switch ref.Kind {
	case schema.KindBool:
		return "%t", field, nil
	case schema.KindInt:
		return "%d", field, nil
	case schema.KindFloat:
		return "%g", field, nil
	case schema.KindString:
		return "'%s'", field, nil
	case schema.KindTime:
		return "'%s'", field + ".Format(time.RFC3339)", nil
	case schema.KindDuration:
		return "'%s'", field, nil
	case schema.KindBytes:
		return "0x%x", field, nil
	case schema.KindList, schema.KindMap:
		return "%v", field, nil
	case schema.KindRecord:
		return "%s", field, nil
	default:
		return "", "", fmt.Errorf("unsupported kind %s", ref.Kind)
	}
}

// equalCheck renders a boolean expression that is true when lhs and rhs
// compare equal for the given type.
func equalCheck(ref schema.TypeRef, lhs, rhs string, imports map[string]struct{}) (string, error) {
	switch ref.Kind {
	case schema.KindBool, schema.KindInt, schema.KindFloat, schema.KindString, schema.KindDuration:
		return lhs + " == " + rhs, nil
	case schema.KindTime:
		return lhs + ".Equal(" + rhs + ")", nil
	case schema.KindBytes:
		imports["bytes"] = struct{}{}
		return fmt.Sprintf("bytes.Equal(%s, %s)", lhs, rhs), nil
	case schema.KindList:
		return listEqualCheck(ref, lhs, rhs, imports)
	case schema.KindMap:
		return mapEqualCheck(ref, lhs, rhs, imports)
	case schema.KindRecord:
		return lhs + ".Equal(" + rhs + ")", nil
	default:
		return "", fmt.Errorf("unsupported kind %s", ref.Kind)
	}
}

func listEqualCheck(ref schema.TypeRef, lhs, rhs string, imports map[string]struct{}) (string, error) {
	if ref.Elem == nil {
		imports["reflect"] = struct{}{}
		return fmt.Sprintf("reflect.DeepEqual(%s, %s)", lhs, rhs), nil
	}

	if ref.Elem.Kind == schema.KindTime {
		imports["slices"] = struct{}{}
		return fmt.Sprintf(
			"slices.EqualFunc(%s, %s, func(a, b time.Time) bool { return a.Equal(b) })", lhs, rhs), nil
	}

	imports["slices"] = struct{}{}

	return fmt.Sprintf("slices.Equal(%s, %s)", lhs, rhs), nil
}

func mapEqualCheck(ref schema.TypeRef, lhs, rhs string, imports map[string]struct{}) (string, error) {
	if ref.Elem == nil {
		imports["reflect"] = struct{}{}
		return fmt.Sprintf("reflect.DeepEqual(%s, %s)", lhs, rhs), nil
	}

	if ref.Elem.Kind == schema.KindTime {
		imports["maps"] = struct{}{}
		return fmt.Sprintf(
			"maps.EqualFunc(%s, %s, func(a, b time.Time) bool { return a.Equal(b) })", lhs, rhs), nil
	}

	imports["maps"] = struct{}{}

	return fmt.Sprintf("maps.Equal(%s, %s)", lhs, rhs), nil
}

// compareStanza renders the Compare method lines for one field. Each stanza
// returns early on the first non-zero comparison.
func compareStanza(ref schema.TypeRef, lhs, rhs string, imports map[string]struct{}) (string, error) {
	switch ref.Kind {
	case schema.KindInt, schema.KindFloat, schema.KindString, schema.KindDuration:
		imports["cmp"] = struct{}{}
		return fmt.Sprintf(
			"\tif c := cmp.Compare(%s, %s); c != 0 {\n\t\treturn c\n\t}", lhs, rhs), nil
	case schema.KindBool:
		return boolCompareStanza(lhs, rhs), nil
	case schema.KindTime:
		return fmt.Sprintf(
			"\tif c := %s.Compare(%s); c != 0 {\n\t\treturn c\n\t}", lhs, rhs), nil
	case schema.KindBytes:
		imports["bytes"] = struct{}{}
		return fmt.Sprintf(
			"\tif c := bytes.Compare(%s, %s); c != 0 {\n\t\treturn c\n\t}", lhs, rhs), nil
	case schema.KindList:
		return listCompareStanza(ref, lhs, rhs, imports)
	case schema.KindRecord:
		return fmt.Sprintf(
			"\tif c := %s.Compare(%s); c != 0 {\n\t\treturn c\n\t}", lhs, rhs), nil
	default:
		return "", fmt.Errorf("kind %s has no defined order", ref.Kind)
	}
}

func boolCompareStanza(lhs, rhs string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\tif %s != %s {\n", lhs, rhs)
	fmt.Fprintf(&b, "\t\tif %s {\n", rhs)
	b.WriteString("\t\t\treturn -1\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t\treturn 1\n")
	b.WriteString("\t}")

	return b.String()
}

// listCompareStanza orders element-wise, shorter prefix first.
func listCompareStanza(ref schema.TypeRef, lhs, rhs string, imports map[string]struct{}) (string, error) {
	if ref.Elem == nil {
		return "", fmt.Errorf("list without an element kind has no defined order")
	}

	var elemBody string

	switch ref.Elem.Kind {
	case schema.KindInt, schema.KindFloat, schema.KindString, schema.KindDuration:
		imports["cmp"] = struct{}{}
		elemBody = fmt.Sprintf(
			"\t\tif c := cmp.Compare(%s[i], %s[i]); c != 0 {\n\t\t\treturn c\n\t\t}", lhs, rhs)
	case schema.KindTime:
		elemBody = fmt.Sprintf(
			"\t\tif c := %s[i].Compare(%s[i]); c != 0 {\n\t\t\treturn c\n\t\t}", lhs, rhs)
	case schema.KindBool:
		elemBody = strings.ReplaceAll(
			boolCompareStanza(lhs+"[i]", rhs+"[i]"), "\t", "\t\t")
	default:
		return "", fmt.Errorf("list of %s has no defined order", ref.Elem.Kind)
	}

	imports["cmp"] = struct{}{}

	var b strings.Builder

	fmt.Fprintf(&b, "\tfor i := 0; i < len(%s) && i < len(%s); i++ {\n", lhs, rhs)
	b.WriteString(elemBody + "\n")
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\tif c := cmp.Compare(len(%s), len(%s)); c != 0 {\n\t\treturn c\n\t}", lhs, rhs)

	return b.String(), nil
}

// filename derives the generated file name from the record name:
// "OrderItem" -> "order_item.go".
func filename(spec *schema.Spec) string {
	var b strings.Builder

	for i, r := range spec.Name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}

			b.WriteRune(r - 'A' + 'a')

			continue
		}

		b.WriteRune(r)
	}

	return b.String() + ".go"
}

func typeDoc(spec *schema.Spec) string {
	switch {
	case spec.Immutable && spec.Ordered:
		return "is an immutable, ordered record."
	case spec.Immutable:
		return "is an immutable record."
	case spec.Ordered:
		return "is an ordered record."
	default:
		return "is a record."
	}
}
