package gen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"recordgen/internal/schema"
)

// goType maps a schema type onto the Go type used in generated structs.
func goType(ref schema.TypeRef) string {
	switch ref.Kind {
	case schema.KindBool:
		return "bool"
	case schema.KindInt:
		return "int64"
	case schema.KindFloat:
		return "float64"
	case schema.KindString:
		return "string"
	case schema.KindTime:
		return "time.Time"
	case schema.KindDuration:
		return "time.Duration"
	case schema.KindBytes:
		return "[]byte"
	case schema.KindList:
		if ref.Elem == nil {
			return "[]any"
		}

		return "[]" + goType(*ref.Elem)
	case schema.KindMap:
		if ref.Elem == nil {
			return "map[string]any"
		}

		return "map[string]" + goType(*ref.Elem)
	case schema.KindRecord:
		return goName(ref.Record)
	default:
		return "any"
	}
}

// typeImports records the imports a field's Go type needs.
func typeImports(ref schema.TypeRef, imports map[string]struct{}) {
	switch ref.Kind {
	case schema.KindTime, schema.KindDuration:
		imports["time"] = struct{}{}
	case schema.KindList, schema.KindMap:
		if ref.Elem != nil {
			typeImports(*ref.Elem, imports)
		}
	}
}

// goName converts a schema identifier to an exported Go name:
// "postal_code" -> "PostalCode".
func goName(name string) string {
	parts := strings.Split(name, "_")

	var b strings.Builder

	for _, part := range parts {
		if part == "" {
			continue
		}

		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}

	return b.String()
}

// unexported lowers the first letter and keeps Go keywords legal.
func unexported(name string) string {
	n := goName(name)
	n = strings.ToLower(n[:1]) + n[1:]

	if isKeyword(n) {
		n += "_"
	}

	return n
}

func isKeyword(s string) bool {
	switch s {
	case "break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var":
		return true
	default:
		return false
	}
}

// fieldGoName returns the generated struct field name. Immutable records
// unexport their fields and expose getters instead.
func fieldGoName(spec *schema.Spec, decl *schema.FieldDecl) string {
	if spec.Immutable {
		return unexported(decl.Name)
	}

	return goName(decl.Name)
}

// defaultExpr renders a coerced default value as a Go expression.
func defaultExpr(ref schema.TypeRef, v any, imports map[string]struct{}) (string, error) {
	switch ref.Kind {
	case schema.KindBool:
		return strconv.FormatBool(v.(bool)), nil
	case schema.KindInt:
		return strconv.FormatInt(v.(int64), 10), nil
	case schema.KindFloat:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64), nil
	case schema.KindString:
		return strconv.Quote(v.(string)), nil
	case schema.KindTime:
		imports["time"] = struct{}{}
		t := v.(time.Time).UTC()

		return fmt.Sprintf("time.Date(%d, %d, %d, %d, %d, %d, %d, time.UTC)",
			t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()), nil
	case schema.KindDuration:
		imports["time"] = struct{}{}
		return fmt.Sprintf("time.Duration(%d)", int64(v.(time.Duration))), nil
	case schema.KindBytes:
		return "[]byte(" + strconv.Quote(string(v.([]byte))) + ")", nil
	case schema.KindList:
		return listExpr(ref, v.([]any), imports)
	case schema.KindMap:
		return mapExpr(ref, v.(map[string]any), imports)
	default:
		return "", fmt.Errorf("kind %s takes no literal default", ref.Kind)
	}
}

func listExpr(ref schema.TypeRef, items []any, imports map[string]struct{}) (string, error) {
	elems := make([]string, len(items))

	for i, item := range items {
		expr, err := elemExpr(ref.Elem, item, imports)
		if err != nil {
			return "", fmt.Errorf("list element %d: %w", i, err)
		}

		elems[i] = expr
	}

	return goType(ref) + "{" + strings.Join(elems, ", ") + "}", nil
}

func mapExpr(ref schema.TypeRef, m map[string]any, imports map[string]struct{}) (string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	// Deterministic literal order.
	sort.Strings(keys)

	entries := make([]string, len(keys))

	for i, k := range keys {
		expr, err := elemExpr(ref.Elem, m[k], imports)
		if err != nil {
			return "", fmt.Errorf("map value %q: %w", k, err)
		}

		entries[i] = strconv.Quote(k) + ": " + expr
	}

	return goType(ref) + "{" + strings.Join(entries, ", ") + "}", nil
}

// elemExpr renders one collection element. Typed elements use the declared
// element kind; untyped elements render by their dynamic type.
func elemExpr(elem *schema.TypeRef, v any, imports map[string]struct{}) (string, error) {
	if elem != nil {
		return defaultExpr(*elem, v, imports)
	}

	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case string:
		return strconv.Quote(t), nil
	default:
		return "", fmt.Errorf("unsupported untyped element %T", v)
	}
}
