package value

import (
	"bytes"
	"fmt"
	"maps"
	"time"
)

// Equaler is implemented by nested values (record instances) that carry
// their own equality.
type Equaler interface {
	EqualValue(other any) bool
}

// Comparer is implemented by nested values that carry their own ordering.
type Comparer interface {
	CompareValue(other any) (int, error)
}

// Equal reports whether two coerced values compare equal.
// Values of different dynamic types are never equal.
func Equal(a, b any) bool {
	if eq, ok := a.(Equaler); ok {
		return eq.EqualValue(b)
	}

	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case time.Duration:
		bv, ok := b.(time.Duration)
		return ok && av == bv
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}

		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok {
			return false
		}

		return maps.EqualFunc(av, bv, Equal)
	default:
		return a == b
	}
}

// Compare orders two coerced values. Returns a negative, zero, or positive
// result. Comparing values of different dynamic types, or of a type with no
// defined order (maps), is an error.
func Compare(a, b any) (int, error) {
	if cmp, ok := a.(Comparer); ok {
		return cmp.CompareValue(b)
	}

	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, compareErr(a, b)
		}

		return boolCmp(av, bv), nil
	case int64:
		bv, ok := b.(int64)
		if !ok {
			return 0, compareErr(a, b)
		}

		return ordCmp(av, bv), nil
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, compareErr(a, b)
		}

		return ordCmp(av, bv), nil
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, compareErr(a, b)
		}

		return ordCmp(av, bv), nil
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, compareErr(a, b)
		}

		return av.Compare(bv), nil
	case time.Duration:
		bv, ok := b.(time.Duration)
		if !ok {
			return 0, compareErr(a, b)
		}

		return ordCmp(av, bv), nil
	case []byte:
		bv, ok := b.([]byte)
		if !ok {
			return 0, compareErr(a, b)
		}

		return bytes.Compare(av, bv), nil
	case []any:
		bv, ok := b.([]any)
		if !ok {
			return 0, compareErr(a, b)
		}

		return compareLists(av, bv)
	default:
		return 0, fmt.Errorf("values of type %T have no defined order", a)
	}
}

// compareLists orders element-wise, shorter prefix first.
func compareLists(a, b []any) (int, error) {
	n := min(len(a), len(b))

	for i := 0; i < n; i++ {
		c, err := Compare(a[i], b[i])
		if err != nil {
			return 0, fmt.Errorf("list element %d: %w", i, err)
		}

		if c != 0 {
			return c, nil
		}
	}

	return ordCmp(len(a), len(b)), nil
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}

func ordCmp[T int | int64 | float64 | string | time.Duration](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareErr(a, b any) error {
	return fmt.Errorf("cannot order %T against %T", a, b)
}
