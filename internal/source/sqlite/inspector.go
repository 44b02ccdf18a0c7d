// Package sqlite reads table and column metadata from a SQLite database file
// using the pure-Go modernc.org/sqlite driver. The file is opened read-only.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alexanderjulianmartinez/schemats/internal/source"
)

func init() {
	source.Register("sqlite", func(ctx context.Context, cfg source.Config) (source.Inspector, error) {
		return NewInspector(ctx, cfg.URL)
	})
}

type Inspector struct {
	db      *sql.DB
	timeout time.Duration
}

// DSN converts sqlite://path or file:path URLs into a read-only driver DSN.
//
//	sqlite://app.db          -> file:app.db?mode=ro
//	sqlite:///var/db/app.db  -> file:/var/db/app.db?mode=ro
//	file:app.db?cache=shared -> file:app.db?cache=shared&mode=ro
func DSN(url string) (string, error) {
	u := strings.TrimSpace(url)
	lower := strings.ToLower(u)
	for _, prefix := range []string{"sqlite3://", "sqlite://"} {
		if strings.HasPrefix(lower, prefix) {
			u = "file:" + u[len(prefix):]
			lower = strings.ToLower(u)
			break
		}
	}
	if !strings.HasPrefix(lower, "file:") {
		return "", fmt.Errorf("not a sqlite url: %q", url)
	}
	path := u[len("file:"):]
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "", fmt.Errorf("sqlite url has no path: %q", url)
	}
	if strings.Contains(lower, "mode=") {
		return u, nil
	}
	if strings.Contains(u, "?") {
		return u + "&mode=ro", nil
	}
	return u + "?mode=ro", nil
}

func NewInspector(ctx context.Context, url string) (*Inspector, error) {
	dsn, err := DSN(url)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// Apply a basic ping with context to fail fast on missing files.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &Inspector{db: db, timeout: 30 * time.Second}, nil
}

func (i *Inspector) Name() string {
	return "sqlite"
}

func (i *Inspector) Close() error {
	return i.db.Close()
}

// Inspect reads tables and views in sqlite_master rowid order, which is the
// order they were declared in.
func (i *Inspector) Inspect(ctx context.Context) (*source.InspectionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	names, err := i.fetchTableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make([]source.TableInfo, 0, len(names))
	for _, name := range names {
		cols, err := i.fetchColumns(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		tables = append(tables, source.TableInfo{Name: name, Columns: cols})
	}
	return &source.InspectionResult{Source: i.Name(), Tables: tables}, nil
}

func (i *Inspector) fetchTableNames(ctx context.Context) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite\_%' ESCAPE '\'
		ORDER BY rowid
	`)
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

// fetchColumns treats primary key columns as NOT NULL even when SQLite's
// legacy behaviour would accept NULL in them.
func (i *Inspector) fetchColumns(ctx context.Context, table string) ([]source.ColumnInfo, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []source.ColumnInfo
	for rows.Next() {
		var (
			name, declType string
			notNull, pk    int
		)
		if err := rows.Scan(&name, &declType, &notNull, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, source.ColumnInfo{
			Name:     name,
			Type:     declType,
			Nullable: notNull == 0 && pk == 0,
		})
	}
	return cols, rows.Err()
}
