// Package postgres reads table and column metadata from pg_catalog using a
// single pgx connection.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alexanderjulianmartinez/schemats/internal/source"
)

func init() {
	source.Register("postgres", func(ctx context.Context, cfg source.Config) (source.Inspector, error) {
		return NewInspector(ctx, cfg.URL, cfg.Schema)
	})
}

// DefaultSchema is read when no schema is configured.
const DefaultSchema = "public"

// Tables, partitioned tables, views and materialized views.
const tablesQuery = `
SELECT c.relname
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname = $1 AND c.relkind IN ('r', 'p', 'v', 'm')
ORDER BY c.oid`

// Domains resolve to their base type. Array element types are inspected so
// arrays of enums keep their labels.
const columnsQuery = `
SELECT
	c.relname,
	a.attname,
	CASE WHEN t.typtype = 'd'
		THEN format_type(t.typbasetype, t.typtypmod)
		ELSE format_type(a.atttypid, a.atttypmod)
	END,
	NOT a.attnotnull,
	t.typcategory = 'A',
	COALESCE(et.typtype = 'e', false),
	COALESCE(
		(SELECT array_agg(e.enumlabel::text ORDER BY e.enumsortorder)
		 FROM pg_catalog.pg_enum e WHERE e.enumtypid = et.oid),
		'{}'::text[]
	)
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
JOIN pg_catalog.pg_attribute a ON a.attrelid = c.oid AND a.attnum > 0 AND NOT a.attisdropped
JOIN pg_catalog.pg_type t ON t.oid = a.atttypid
LEFT JOIN pg_catalog.pg_type et ON et.oid = CASE WHEN t.typcategory = 'A' THEN t.typelem ELSE t.oid END
WHERE n.nspname = $1 AND c.relkind IN ('r', 'p', 'v', 'm')
ORDER BY c.oid, a.attnum`

type Inspector struct {
	conn    *pgx.Conn
	schema  string
	timeout time.Duration
}

// ConnString rewrites pgx:// URLs to postgres://, the only URL scheme besides
// postgresql:// that pgx parses. Keyword/value strings pass through.
func ConnString(raw string) string {
	dsn := strings.TrimSpace(raw)
	if len(dsn) >= len("pgx://") && strings.EqualFold(dsn[:len("pgx://")], "pgx://") {
		return "postgres://" + dsn[len("pgx://"):]
	}
	return dsn
}

// NewInspector connects once and verifies the connection with a ping.
func NewInspector(ctx context.Context, rawURL string, schema string) (*Inspector, error) {
	cfg, err := pgx.ParseConfig(ConnString(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if schema == "" {
		schema = DefaultSchema
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := pgx.ConnectConfig(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := conn.Ping(connectCtx); err != nil {
		_ = conn.Close(context.Background())
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return &Inspector{
		conn:    conn,
		schema:  schema,
		timeout: 30 * time.Second,
	}, nil
}

func (i *Inspector) Name() string {
	return "postgres"
}

func (i *Inspector) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return i.conn.Close(ctx)
}

// Inspect reads relations in pg_class oid order, which is creation order and
// stable for an unchanged database.
func (i *Inspector) Inspect(ctx context.Context) (*source.InspectionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	// Read-only transaction; it also gives both queries one snapshot.
	tx, err := i.conn.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin read-only transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	names, err := fetchTableNames(ctx, tx, i.schema)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	columns, err := fetchColumns(ctx, tx, i.schema)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}

	tables := make([]source.TableInfo, 0, len(names))
	for _, name := range names {
		tables = append(tables, source.TableInfo{
			Name:    name,
			Columns: columns[name],
		})
	}
	return &source.InspectionResult{
		Source: i.Name(),
		Tables: tables,
	}, nil
}

func fetchTableNames(ctx context.Context, tx pgx.Tx, schema string) ([]string, error) {
	rows, err := tx.Query(ctx, tablesQuery, schema)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func fetchColumns(ctx context.Context, tx pgx.Tx, schema string) (map[string][]source.ColumnInfo, error) {
	rows, err := tx.Query(ctx, columnsQuery, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]source.ColumnInfo{}
	for rows.Next() {
		var (
			table, name, formatted string
			nullable, isArray      bool
			isEnum                 bool
			labels                 []string
		)
		if err := rows.Scan(&table, &name, &formatted, &nullable, &isArray, &isEnum, &labels); err != nil {
			return nil, err
		}
		col := source.ColumnInfo{
			Name:     name,
			Type:     NormalizeType(formatted, isArray, isEnum),
			Nullable: nullable,
		}
		if isEnum {
			col.Labels = labels
		}
		out[table] = append(out[table], col)
	}
	return out, rows.Err()
}
