package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the semantic type a field's string value is coerced into.
type Kind int

const (
	String Kind = iota
	Int
	Int64
	Float
	Bool
	Time
	UUID
)

// Field maps an exposed field name onto its database column and value kind.
type Field struct {
	Column string
	Kind   Kind
}

// Schema is the per-entity field table. Lookup is case-insensitive.
type Schema map[string]Field

// NewSchema builds a schema from exposed-name -> field definitions.
func NewSchema(fields map[string]Field) Schema {
	s := make(Schema, len(fields))
	for name, f := range fields {
		s[strings.ToLower(name)] = f
	}
	return s
}

// Resolve looks a field up by its exposed name, ignoring case.
func (s Schema) Resolve(name string) (Field, bool) {
	f, ok := s[strings.ToLower(name)]
	return f, ok
}

// comparable reports whether lt/le/gt/ge apply to the kind.
func (k Kind) comparable() bool {
	switch k {
	case Int, Int64, Float, Time, String:
		return true
	}
	return false
}

// zero is the null-as-default constant used when eq/ne receives no value.
func (k Kind) zero() any {
	switch k {
	case Int:
		return 0
	case Int64:
		return int64(0)
	case Float:
		return float64(0)
	case Bool:
		return false
	case Time:
		return time.Time{}
	case UUID:
		return uuid.Nil
	default:
		return ""
	}
}

// coerce decodes a string value into the kind's Go representation.
func (k Kind) coerce(v string) (any, error) {
	switch k {
	case String:
		return v, nil
	case Int:
		return strconv.Atoi(v)
	case Int64:
		return strconv.ParseInt(v, 10, 64)
	case Float:
		return strconv.ParseFloat(v, 64)
	case Bool:
		return strconv.ParseBool(v)
	case Time:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", v)
	case UUID:
		return uuid.Parse(v)
	}
	return nil, strconv.ErrSyntax
}
