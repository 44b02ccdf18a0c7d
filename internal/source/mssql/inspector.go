// Package mssql reads table and column metadata from a Microsoft SQL Server
// catalog through go-mssqldb.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/alexanderjulianmartinez/schemats/internal/source"
)

func init() {
	source.Register("sqlserver", func(ctx context.Context, cfg source.Config) (source.Inspector, error) {
		return NewInspector(ctx, cfg.URL, cfg.Schema)
	})
}

const DefaultSchema = "dbo"

type Inspector struct {
	db      *sql.DB
	schema  string
	timeout time.Duration
}

// DSN rewrites mssql:// URLs to the sqlserver:// scheme go-mssqldb parses as
// a URL. Anything else is returned unchanged.
func DSN(raw string) string {
	dsn := strings.TrimSpace(raw)
	if len(dsn) >= len("mssql://") && strings.EqualFold(dsn[:len("mssql://")], "mssql://") {
		return "sqlserver://" + dsn[len("mssql://"):]
	}
	return dsn
}

// NormalizeType maps DATA_TYPE names whose meaning differs from other
// dialects. timestamp is a synonym for rowversion, an 8-byte binary counter.
func NormalizeType(dataType string) string {
	switch strings.ToLower(strings.TrimSpace(dataType)) {
	case "timestamp", "rowversion":
		return "binary"
	}
	return strings.TrimSpace(dataType)
}

func NewInspector(ctx context.Context, rawURL string, schema string) (*Inspector, error) {
	dsn := DSN(rawURL)
	// Validate DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(dsn); err != nil {
		return nil, fmt.Errorf("mssql dsn: %w", err)
	}
	if schema == "" {
		schema = DefaultSchema
	}

	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mssql ping failed: %w", err)
	}

	return &Inspector{db: db, schema: schema, timeout: 30 * time.Second}, nil
}

func (i *Inspector) Name() string {
	return "mssql"
}

func (i *Inspector) Close() error {
	return i.db.Close()
}

// Inspect lists user tables and views in object_id order. Column data types
// are the bare DATA_TYPE names (nvarchar, datetime2, uniqueidentifier, ...).
func (i *Inspector) Inspect(ctx context.Context) (*source.InspectionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	names, err := i.fetchTableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	columns, err := i.fetchColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}

	tables := make([]source.TableInfo, 0, len(names))
	for _, name := range names {
		tables = append(tables, source.TableInfo{Name: name, Columns: columns[name]})
	}
	return &source.InspectionResult{Source: i.Name(), Tables: tables}, nil
}

func (i *Inspector) fetchTableNames(ctx context.Context) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT o.name
		FROM sys.objects o
		JOIN sys.schemas s ON s.schema_id = o.schema_id
		WHERE s.name = @schema AND o.type IN ('U', 'V')
		ORDER BY o.object_id
	`, sql.Named("schema", i.schema))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (i *Inspector) fetchColumns(ctx context.Context) (map[string][]source.ColumnInfo, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = @schema
		ORDER BY TABLE_NAME, ORDINAL_POSITION
	`, sql.Named("schema", i.schema))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]source.ColumnInfo{}
	for rows.Next() {
		var table, name, dataType, nullable string
		if err := rows.Scan(&table, &name, &dataType, &nullable); err != nil {
			return nil, err
		}
		out[table] = append(out[table], source.ColumnInfo{
			Name:     name,
			Type:     NormalizeType(dataType),
			Nullable: nullable == "YES",
		})
	}
	return out, rows.Err()
}
