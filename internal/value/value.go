package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"recordgen/internal/schema"
)

// Coerce normalizes a supplied value into the canonical runtime
// representation for the given type:
//
//	bool     -> bool
//	int      -> int64
//	float    -> float64
//	string   -> string
//	time     -> time.Time (RFC3339 strings accepted)
//	duration -> time.Duration (strings like "2h45m" accepted)
//	bytes    -> []byte (strings accepted)
//	list     -> []any with coerced elements
//	map      -> map[string]any with coerced values
//
// Record-kind values are the caller's responsibility; Coerce rejects them.
func Coerce(ref schema.TypeRef, v any) (any, error) {
	switch ref.Kind {
	case schema.KindBool:
		return coerceBool(v)
	case schema.KindInt:
		return coerceInt(v)
	case schema.KindFloat:
		return coerceFloat(v)
	case schema.KindString:
		return coerceString(v)
	case schema.KindTime:
		return coerceTime(v)
	case schema.KindDuration:
		return coerceDuration(v)
	case schema.KindBytes:
		return coerceBytes(v)
	case schema.KindList:
		return coerceList(ref, v)
	case schema.KindMap:
		return coerceMap(ref, v)
	case schema.KindRecord:
		return nil, fmt.Errorf("record values are resolved by the synthesizer, not coerced")
	default:
		return nil, fmt.Errorf("unsupported kind %s", ref.Kind)
	}
}

func coerceBool(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, typeErr("bool", v)
	}

	return b, nil
}

func coerceInt(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return nil, fmt.Errorf("uint value %d overflows int", n)
		}

		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return nil, fmt.Errorf("uint value %d overflows int", n)
		}

		return int64(n), nil
	default:
		return nil, typeErr("int", v)
	}
}

func coerceFloat(v any) (any, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return nil, typeErr("float", v)
	}
}

func coerceString(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, typeErr("string", v)
	}

	return s, nil
}

func coerceTime(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return nil, fmt.Errorf("parsing time %q: %w", t, err)
		}

		return parsed, nil
	default:
		return nil, typeErr("time", v)
	}
}

func coerceDuration(v any) (any, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return nil, fmt.Errorf("parsing duration %q: %w", d, err)
		}

		return parsed, nil
	case int:
		return time.Duration(d), nil
	case int64:
		return time.Duration(d), nil
	default:
		return nil, typeErr("duration", v)
	}
}

func coerceBytes(v any) (any, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, typeErr("bytes", v)
	}
}

func coerceList(ref schema.TypeRef, v any) (any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, typeErr("list", v)
	}

	out := make([]any, len(items))

	for i, item := range items {
		if ref.Elem == nil {
			out[i] = item
			continue
		}

		coerced, err := Coerce(*ref.Elem, item)
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}

		out[i] = coerced
	}

	return out, nil
}

func coerceMap(ref schema.TypeRef, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, typeErr("map", v)
	}

	out := make(map[string]any, len(m))

	for k, item := range m {
		if ref.Elem == nil {
			out[k] = item
			continue
		}

		coerced, err := Coerce(*ref.Elem, item)
		if err != nil {
			return nil, fmt.Errorf("map value %q: %w", k, err)
		}

		out[k] = coerced
	}

	return out, nil
}

func typeErr(want string, got any) error {
	return fmt.Errorf("expected %s value, got %T", want, got)
}

// Format renders a coerced value the way instance representations print it:
// strings single-quoted, scalars bare, collections bracketed, nested values
// via their own Stringer.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return "'" + t + "'"
	case time.Time:
		return "'" + t.Format(time.RFC3339) + "'"
	case time.Duration:
		return "'" + t.String() + "'"
	case []byte:
		return "0x" + strings.ToLower(fmt.Sprintf("%x", t))
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = Format(item)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}

		// Deterministic map rendering.
		sort.Strings(keys)

		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + Format(t[k])
		}

		return "{" + strings.Join(parts, ", ") + "}"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
