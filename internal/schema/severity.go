package schema

// Severity rules for schema issues:
// - BLOCK when the schema cannot be emitted faithfully
// - WARN when output is produced but likely surprising (two tables casing to
//   one interface name merge as TypeScript declarations)
// - INFO for notes

const (
	SeverityInfo  = "INFO"
	SeverityWarn  = "WARN"
	SeverityBlock = "BLOCK"
)

// Issue kinds:
// "empty_table_name", "empty_column_name", "duplicate_table",
// "duplicate_column", "corrupt_type", "type_name_collision",
// "field_name_collision", "opaque_type"
func SeverityForIssue(kind string) string {
	switch kind {
	case "empty_table_name", "empty_column_name", "duplicate_table", "duplicate_column", "corrupt_type",
		"field_name_collision":
		return SeverityBlock
	case "type_name_collision":
		return SeverityWarn
	default:
		return SeverityInfo
	}
}

// MessageForIssue returns a concise message for the given issue kind.
func MessageForIssue(kind, detail string) string {
	switch kind {
	case "empty_table_name":
		return "table has an empty name"
	case "empty_column_name":
		return "column has an empty name"
	case "duplicate_table":
		return "table declared more than once"
	case "duplicate_column":
		return "column declared more than once"
	case "corrupt_type":
		return "unrepresentable column type: " + detail
	case "type_name_collision":
		return "interface name " + detail + " is produced by more than one table"
	case "field_name_collision":
		return "field name " + detail + " is produced by more than one column; TypeScript rejects duplicate properties"
	case "opaque_type":
		return "no TypeScript mapping for " + detail + "; emitted as the fallback type"
	default:
		return detail
	}
}
