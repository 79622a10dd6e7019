package schema

import "strings"

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind is the semantic type tag of a field declaration.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	KindDuration
	KindBytes
	KindList
	KindMap
	KindRecord // nested record, resolved by spec name through a registry

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// kindNames maps the lowercase schema-file spelling to a Kind.
var kindNames = map[string]Kind{
	"bool":     KindBool,
	"int":      KindInt,
	"integer":  KindInt,
	"float":    KindFloat,
	"string":   KindString,
	"time":     KindTime,
	"duration": KindDuration,
	"bytes":    KindBytes,
	"list":     KindList,
	"map":      KindMap,
	"record":   KindRecord,
}

// ParseKind parses a schema-file kind name. Returns the zero Kind and
// false if the name is not recognized.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// Name returns the canonical schema-file spelling of the kind.
func (k Kind) Name() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindDuration:
		return "duration"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindRecord:
		return "record"
	default:
		return ""
	}
}

// IsValid returns true if the kind is one of the declared kinds.
func (k Kind) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

// IsOrderable returns true if values of this kind admit a total order.
// List elements are checked separately against the declared element kind.
func (k Kind) IsOrderable() bool {
	switch k {
	default:
		return false
	case KindBool, KindInt, KindFloat, KindString, KindTime, KindDuration, KindBytes, KindList:
		return true
	}
}

// IsScalar returns true for kinds whose values are single immutable scalars.
func (k Kind) IsScalar() bool {
	switch k {
	default:
		return false
	case KindBool, KindInt, KindFloat, KindString, KindTime, KindDuration:
		return true
	}
}
