// Package emit renders a schema as TypeScript interface declarations, one
// per table, in schema order:
//
//	export interface UserAccount {
//	  id: number;
//	  displayName?: string | null;
//	}
//
// Declarations are separated by a single blank line and the output ends with
// a newline. An empty schema renders as the empty string.
package emit

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/alexanderjulianmartinez/schemats/internal/naming"
	"github.com/alexanderjulianmartinez/schemats/internal/schema"
	"github.com/alexanderjulianmartinez/schemats/internal/typemap"
)

const indent = "  "

type Options struct {
	// TypeCasing names interfaces; default PascalCase.
	TypeCasing naming.Casing
	// FieldCasing names fields; default CamelCase.
	FieldCasing naming.Casing
	// NoExport drops the export keyword.
	NoExport bool
	// Mapper resolves column types; nil uses typemap.MapType.
	Mapper *typemap.Mapper
}

// Emit renders s. It does not fail: s is assumed valid (see schema.Validate)
// and every column type has a mapping or the fallback.
func Emit(s *schema.Schema, opts Options) string {
	if s == nil || len(s.Tables) == 0 {
		return ""
	}

	var b strings.Builder
	for i, t := range s.Tables {
		if i > 0 {
			b.WriteString("\n")
		}
		writeInterface(&b, t, opts)
	}
	return b.String()
}

func writeInterface(b *strings.Builder, t schema.Table, opts Options) {
	if !opts.NoExport {
		b.WriteString("export ")
	}
	b.WriteString("interface ")
	b.WriteString(typeName(naming.ConvertIdentifier(t.Name, opts.TypeCasing.Or(naming.PascalCase))))

	if len(t.Columns) == 0 {
		b.WriteString(" {}\n")
		return
	}

	b.WriteString(" {\n")
	for _, col := range t.Columns {
		b.WriteString(Field(col, opts))
		b.WriteString("\n")
	}
	b.WriteString("}\n")
}

// Field renders one field line, including indentation and the trailing
// semicolon. Nullable columns get the optional marker as well as the null
// union.
func Field(col schema.Column, opts Options) string {
	expr := opts.Mapper.Map(col)

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(propertyName(naming.ConvertIdentifier(col.Name, opts.FieldCasing.Or(naming.CamelCase))))
	if expr.IsNullable() {
		b.WriteString("?")
	}
	b.WriteString(": ")
	b.WriteString(expr.String())
	b.WriteString(";")
	return b.String()
}

// propertyName quotes names that are not valid identifiers, which can happen
// with SnakeCase or exotic column names.
func propertyName(name string) string {
	if isIdentifier(name) {
		return name
	}
	return strconv.Quote(name)
}

// Words TypeScript rejects as an interface name.
var reservedTypeNames = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "implements": true, "interface": true, "let": true,
	"package": true, "private": true, "protected": true, "public": true,
	"static": true, "yield": true,
	"any": true, "bigint": true, "boolean": true, "never": true, "number": true,
	"object": true, "string": true, "symbol": true, "undefined": true, "unknown": true,
}

// typeName replaces characters an interface name cannot hold with '_' and
// suffixes reserved words with '_'. Interface names cannot be quoted.
func typeName(name string) string {
	if reservedTypeNames[name] {
		return name + "_"
	}
	if isIdentifier(name) {
		return name
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
