package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tags the variant held by a SQLType.
type Kind int

const (
	KindUnknown Kind = iota
	KindSmallInt
	KindInteger
	KindBigInt
	KindDecimal
	KindReal
	KindDouble
	KindBoolean
	KindChar
	KindVarchar
	KindText
	KindUUID
	KindDate
	KindTime
	KindTimestamp
	KindTimestampTZ
	KindInterval
	KindBinary
	KindJSON
	KindEnum
	KindUserDefined
	KindArray

	kindCount
)

var kindNames = [...]string{
	KindUnknown:     "unknown",
	KindSmallInt:    "smallint",
	KindInteger:     "integer",
	KindBigInt:      "bigint",
	KindDecimal:     "decimal",
	KindReal:        "real",
	KindDouble:      "double",
	KindBoolean:     "boolean",
	KindChar:        "char",
	KindVarchar:     "varchar",
	KindText:        "text",
	KindUUID:        "uuid",
	KindDate:        "date",
	KindTime:        "time",
	KindTimestamp:   "timestamp",
	KindTimestampTZ: "timestamptz",
	KindInterval:    "interval",
	KindBinary:      "binary",
	KindJSON:        "json",
	KindEnum:        "enum",
	KindUserDefined: "user-defined",
	KindArray:       "array",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// SQLType is a column's storage type. Elem is set for arrays only; Labels
// for enums whose labels are known. Name keeps the catalog's spelling.
type SQLType struct {
	Kind   Kind
	Name   string
	Elem   *SQLType
	Labels []string
}

func Of(k Kind) SQLType { return SQLType{Kind: k, Name: k.String()} }

func Integer() SQLType { return Of(KindInteger) }
func Text() SQLType    { return Of(KindText) }
func Boolean() SQLType { return Of(KindBoolean) }

// ArrayOf wraps elem in an array type.
func ArrayOf(elem SQLType) SQLType {
	return SQLType{Kind: KindArray, Name: elem.Name + "[]", Elem: &elem}
}

// Enum is an enumerated type. Labels may be empty when the catalog does not
// expose them.
func Enum(name string, labels ...string) SQLType {
	return SQLType{Kind: KindEnum, Name: name, Labels: labels}
}

// Other is a type with no explicit mapping; it is emitted as the opaque
// fallback.
func Other(name string) SQLType {
	return SQLType{Kind: KindUnknown, Name: name}
}

// Opaque reports whether the type has no TypeScript mapping of its own.
func (t SQLType) Opaque() bool {
	switch t.Kind {
	case KindUnknown, KindUserDefined:
		return true
	case KindArray:
		return t.Elem != nil && t.Elem.Opaque()
	}
	return false
}

func (t SQLType) String() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Kind == KindArray && t.Elem != nil {
		return t.Elem.String() + "[]"
	}
	return t.Kind.String()
}

// Check reports a structurally corrupt type: an unknown kind tag, an array
// without element type, or an element attached to a non-array.
func (t SQLType) Check() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("invalid type tag %d", int(t.Kind))
	}
	if t.Kind == KindArray {
		if t.Elem == nil {
			return fmt.Errorf("array type %q has no element type", t.Name)
		}
		return t.Elem.Check()
	}
	if t.Elem != nil {
		return fmt.Errorf("%s type %q has an element type", t.Kind, t.Name)
	}
	return nil
}

// WithLabels returns t with labels attached to its innermost enum.
func (t SQLType) WithLabels(labels []string) SQLType {
	if len(labels) == 0 {
		return t
	}
	switch t.Kind {
	case KindEnum:
		t.Labels = append([]string(nil), labels...)
	case KindArray:
		if t.Elem != nil {
			elem := t.Elem.WithLabels(labels)
			t.Elem = &elem
		}
	}
	return t
}

var typeNames = map[string]Kind{
	"smallint":    KindSmallInt,
	"int2":        KindSmallInt,
	"smallserial": KindSmallInt,
	"serial2":     KindSmallInt,
	"tinyint":     KindSmallInt,
	"year":        KindSmallInt,

	"integer":   KindInteger,
	"int":       KindInteger,
	"int4":      KindInteger,
	"serial":    KindInteger,
	"serial4":   KindInteger,
	"mediumint": KindInteger,

	"bigint":    KindBigInt,
	"int8":      KindBigInt,
	"bigserial": KindBigInt,
	"serial8":   KindBigInt,

	"numeric":    KindDecimal,
	"decimal":    KindDecimal,
	"money":      KindDecimal,
	"smallmoney": KindDecimal,

	"real":   KindReal,
	"float4": KindReal,
	"float":  KindReal,

	"double precision": KindDouble,
	"double":           KindDouble,
	"float8":           KindDouble,

	"boolean": KindBoolean,
	"bool":    KindBoolean,
	"bit":     KindBoolean,

	"char":      KindChar,
	"character": KindChar,
	"nchar":     KindChar,
	"bpchar":    KindChar,

	"varchar":           KindVarchar,
	"character varying": KindVarchar,
	"nvarchar":          KindVarchar,
	"varchar2":          KindVarchar,

	"text":       KindText,
	"tinytext":   KindText,
	"mediumtext": KindText,
	"longtext":   KindText,
	"ntext":      KindText,
	"citext":     KindText,
	"name":       KindText,
	"xml":        KindText,
	"clob":       KindText,

	"uuid":             KindUUID,
	"uniqueidentifier": KindUUID,

	"date": KindDate,

	"time":                   KindTime,
	"time without time zone": KindTime,
	"time with time zone":    KindTime,
	"timetz":                 KindTime,

	"timestamp":                   KindTimestamp,
	"timestamp without time zone": KindTimestamp,
	"datetime":                    KindTimestamp,
	"datetime2":                   KindTimestamp,
	"smalldatetime":               KindTimestamp,

	"timestamptz":              KindTimestampTZ,
	"timestamp with time zone": KindTimestampTZ,
	"datetimeoffset":           KindTimestampTZ,

	"interval": KindInterval,

	"bytea":      KindBinary,
	"blob":       KindBinary,
	"tinyblob":   KindBinary,
	"mediumblob": KindBinary,
	"longblob":   KindBinary,
	"binary":     KindBinary,
	"varbinary":  KindBinary,
	"image":      KindBinary,

	"json":  KindJSON,
	"jsonb": KindJSON,

	"enum": KindEnum,

	"user-defined": KindUserDefined,
}

var (
	typeParams  = regexp.MustCompile(`\([^)]*\)`)
	typeSpaces  = regexp.MustCompile(`\s+`)
	arrayBounds = regexp.MustCompile(`\[\d*\]$`)
)

// BaseName lowercases a type name and drops its parameters and quoting, so
// "geometry(Point,4326)" and "GEOMETRY" both become "geometry". Array
// suffixes are kept.
func BaseName(name string) string {
	t := strings.ToLower(name)
	t = typeParams.ReplaceAllString(t, "")
	t = strings.TrimSpace(typeSpaces.ReplaceAllString(t, " "))
	return strings.Trim(t, `"`)
}

// ParseType reads a catalog type name such as "int4", "character
// varying(255)", "text[]" or "timestamp(3) with time zone". Names it does
// not recognise become KindUnknown carrying the original spelling; it never
// fails.
func ParseType(raw string) SQLType {
	name := strings.TrimSpace(raw)

	dims := 0
	for {
		if loc := arrayBounds.FindStringIndex(name); loc != nil {
			name = strings.TrimSpace(name[:loc[0]])
			dims++
			continue
		}
		if strings.HasSuffix(strings.ToLower(name), " array") {
			name = strings.TrimSpace(name[:len(name)-len(" array")])
			dims++
			continue
		}
		break
	}

	t := BaseName(name)

	out := Other(name)
	if k, ok := typeNames[t]; ok {
		out = SQLType{Kind: k, Name: t}
	}
	for i := 0; i < dims; i++ {
		out = ArrayOf(out)
	}
	return out
}
