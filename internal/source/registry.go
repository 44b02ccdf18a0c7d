package source

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

// Config is what a backend needs to open an Inspector.
type Config struct {
	// URL is the connection string, normally taken from DATABASE_URL.
	URL string
	// Schema selects the namespace to read on backends that have one.
	// Empty means the backend default (public, dbo, the connected database).
	Schema string
}

// Factory opens an Inspector for one kind of metadata source.
type Factory func(ctx context.Context, cfg Config) (Inspector, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

var schemeAliases = map[string]string{
	"postgresql": "postgres",
	"pgx":        "postgres",
	"mariadb":    "mysql",
	"mssql":      "sqlserver",
	"sqlite3":    "sqlite",
}

// Register makes a backend available under kind. Backends call it from init.
// Registering the same kind twice panics.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if f == nil {
		panic("source: Register factory is nil")
	}
	if _, dup := factories[kind]; dup {
		panic("source: Register called twice for " + kind)
	}
	factories[kind] = f
}

// Kinds lists the registered backends in sorted order.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Kind derives the backend kind from a connection string. YAML files are
// served by the "static" backend and file: URLs by "sqlite".
func Kind(url string) (string, error) {
	u := strings.TrimSpace(url)
	if u == "" {
		return "", errors.New("connection string is empty")
	}
	base := u
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	switch strings.ToLower(path.Ext(base)) {
	case ".yaml", ".yml":
		return "static", nil
	}
	if strings.HasPrefix(strings.ToLower(u), "file:") {
		return "sqlite", nil
	}
	i := strings.Index(u, "://")
	if i <= 0 {
		return "", errors.New("connection string has no scheme")
	}
	scheme := strings.ToLower(u[:i])
	if alias, ok := schemeAliases[scheme]; ok {
		scheme = alias
	}
	return scheme, nil
}

// Open opens the Inspector registered for the connection string's kind.
// Every failure is returned as a *ConnectionError.
func Open(ctx context.Context, cfg Config) (Inspector, error) {
	kind, err := Kind(cfg.URL)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()
	if !ok {
		return nil, &ConnectionError{Err: fmt.Errorf("unsupported scheme %q (known: %s)", kind, strings.Join(Kinds(), ", "))}
	}

	insp, err := f(ctx, cfg)
	if err != nil {
		var ce *ConnectionError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &ConnectionError{Driver: kind, Err: err}
	}
	return insp, nil
}
