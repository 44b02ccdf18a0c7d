package source

import "context"

// ColumnInfo is a column as reported by a catalog, before its type is parsed.
type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
	// Labels holds enum labels when the catalog exposes them.
	Labels []string
}

type TableInfo struct {
	Name    string
	Columns []ColumnInfo
}

// InspectionResult is one read of a catalog. Tables are in catalog order.
type InspectionResult struct {
	Source string
	Tables []TableInfo
}

// Inspector reads table and column metadata from one metadata source.
// Inspectors hold the only connection to the database; Close releases it.
type Inspector interface {
	Name() string
	Inspect(ctx context.Context) (*InspectionResult, error)
	Close() error
}
