// Package typemap translates SQL column types into TypeScript types.
//
//	smallint, integer, real, double    number
//	bigint, decimal                    string   (outside JS number precision)
//	boolean                            boolean
//	char, varchar, text, uuid          string
//	date, timestamp, timestamptz       Date
//	time, interval                     string
//	binary                             Buffer
//	json                               unknown
//	enum with labels                   'a' | 'b'
//	enum without labels                string
//	array of T                         T[]
//	anything else                      any      (types.Opaque)
package typemap

import (
	"strings"

	"github.com/alexanderjulianmartinez/schemats/internal/schema"
	"github.com/alexanderjulianmartinez/schemats/pkg/types"
)

var primitives = map[schema.Kind]string{
	schema.KindSmallInt:    "number",
	schema.KindInteger:     "number",
	schema.KindReal:        "number",
	schema.KindDouble:      "number",
	schema.KindBigInt:      "string",
	schema.KindDecimal:     "string",
	schema.KindBoolean:     "boolean",
	schema.KindChar:        "string",
	schema.KindVarchar:     "string",
	schema.KindText:        "string",
	schema.KindUUID:        "string",
	schema.KindDate:        "Date",
	schema.KindTimestamp:   "Date",
	schema.KindTimestampTZ: "Date",
	schema.KindTime:        "string",
	schema.KindInterval:    "string",
	schema.KindBinary:      "Buffer",
	schema.KindJSON:        "unknown",
}

// MapType maps a SQL type to its TypeScript type. It is total: kinds without
// a rule, and corrupt arrays, map to types.Opaque.
func MapType(t schema.SQLType) types.Expr {
	switch t.Kind {
	case schema.KindArray:
		if t.Elem == nil {
			return types.Opaque()
		}
		return types.ArrayOf(MapType(*t.Elem))
	case schema.KindEnum:
		return types.Literals(t.Labels...)
	}
	if name, ok := primitives[t.Kind]; ok {
		return types.Primitive(name)
	}
	return types.Opaque()
}

// ApplyNullability wraps expr in a union with null when nullable is true and
// returns it unchanged otherwise.
func ApplyNullability(expr types.Expr, nullable bool) types.Expr {
	if !nullable {
		return expr
	}
	return types.Nullable(expr)
}

// Mapper maps columns, consulting Overrides before MapType. Override keys are
// SQL type names as reported by the catalog, matched case-insensitively
// ("jsonb", "citext", "geometry"); values are TypeScript type expressions
// emitted verbatim. An override on an element type also applies inside
// arrays.
type Mapper struct {
	Overrides map[string]string
}

func NewMapper(overrides map[string]string) *Mapper {
	m := &Mapper{Overrides: map[string]string{}}
	for k, v := range overrides {
		m.Overrides[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return m
}

// Map returns the field type for a column: the mapped base type with
// nullability applied exactly once.
func (m *Mapper) Map(col schema.Column) types.Expr {
	return ApplyNullability(m.MapType(col.Type), col.Nullable)
}

func (m *Mapper) MapType(t schema.SQLType) types.Expr {
	if m != nil && len(m.Overrides) > 0 {
		if ts, ok := m.override(t.Name); ok {
			return types.Primitive(ts)
		}
		if t.Kind == schema.KindArray && t.Elem != nil {
			return types.ArrayOf(m.MapType(*t.Elem))
		}
	}
	return MapType(t)
}

// override matches the full name first ("varchar(36)") and then the name
// without parameters ("geometry" for "geometry(Point,4326)").
func (m *Mapper) override(name string) (string, bool) {
	if ts := m.Overrides[strings.ToLower(strings.TrimSpace(name))]; ts != "" {
		return ts, true
	}
	if ts := m.Overrides[schema.BaseName(name)]; ts != "" {
		return ts, true
	}
	return "", false
}
