// Package static serves a schema declared in a YAML file instead of a live
// catalog. It lets generation run without a database:
//
//	tables:
//	  - name: user_account
//	    columns:
//	      - {name: id, type: integer}
//	      - {name: display_name, type: text, nullable: true}
//	      - {name: mood, type: enum, labels: [sad, ok, happy]}
//
// Tables and columns keep their declaration order.
package static

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderjulianmartinez/schemats/internal/source"
)

func init() {
	source.Register("static", func(ctx context.Context, cfg source.Config) (source.Inspector, error) {
		return NewRegistry(Path(cfg.URL))
	})
}

type File struct {
	Tables []TableDecl `yaml:"tables"`
}

type TableDecl struct {
	Name    string       `yaml:"name"`
	Columns []ColumnDecl `yaml:"columns"`
}

type ColumnDecl struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Nullable bool     `yaml:"nullable"`
	Labels   []string `yaml:"labels"`
}

// Registry is an Inspector over a YAML schema declaration.
type Registry struct {
	path string
}

// Path strips a file: or file:// prefix from a connection string.
func Path(url string) string {
	p := strings.TrimSpace(url)
	for _, prefix := range []string{"file://", "file:"} {
		if strings.HasPrefix(strings.ToLower(p), prefix) {
			return p[len(prefix):]
		}
	}
	return p
}

func NewRegistry(path string) (*Registry, error) {
	if path == "" {
		return nil, errors.New("schema file path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("schema file not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("schema file %s is a directory", path)
	}
	return &Registry{path: path}, nil
}

func (r *Registry) Name() string {
	return "static"
}

func (r *Registry) Close() error {
	return nil
}

func (r *Registry) Inspect(ctx context.Context) (*source.InspectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	tables := make([]source.TableInfo, 0, len(f.Tables))
	for _, t := range f.Tables {
		cols := make([]source.ColumnInfo, 0, len(t.Columns))
		for _, c := range t.Columns {
			cols = append(cols, source.ColumnInfo{
				Name:     c.Name,
				Type:     c.Type,
				Nullable: c.Nullable,
				Labels:   c.Labels,
			})
		}
		tables = append(tables, source.TableInfo{Name: t.Name, Columns: cols})
	}
	return &source.InspectionResult{Source: r.Name(), Tables: tables}, nil
}

// Parse decodes a schema declaration. Unknown keys are rejected so typos do
// not silently drop columns.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse schema file: %w", err)
	}
	for i, t := range f.Tables {
		for j, c := range t.Columns {
			if strings.TrimSpace(c.Type) == "" {
				return nil, fmt.Errorf("parse schema file: table %d (%s) column %d (%s): type is required", i+1, t.Name, j+1, c.Name)
			}
		}
	}
	return &f, nil
}
