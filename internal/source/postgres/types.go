package postgres

import "strings"

// NormalizeType turns format_type output into the dialect-neutral name
// understood by schema.ParseType. Enum types are reported by their own name
// in the catalog, so they are rewritten to "enum" keeping array dimensions.
func NormalizeType(formatted string, isArray, isEnum bool) string {
	t := strings.TrimSpace(formatted)
	if !isEnum {
		return t
	}
	if !isArray {
		return "enum"
	}
	dims := 0
	for strings.HasSuffix(t, "[]") {
		t = strings.TrimSuffix(t, "[]")
		dims++
	}
	if dims == 0 {
		dims = 1
	}
	return "enum" + strings.Repeat("[]", dims)
}
