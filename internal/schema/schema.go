// Package schema holds the in-memory description of a database: its tables
// in catalog order and each table's columns in declaration order.
package schema

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"

	"github.com/alexanderjulianmartinez/schemats/internal/naming"
	"github.com/alexanderjulianmartinez/schemats/internal/source"
)

type Column struct {
	Name     string
	Type     SQLType
	Nullable bool
}

type Table struct {
	Name    string
	Columns []Column
}

// Schema is one snapshot of a database. It is built once and not modified.
type Schema struct {
	Source string
	Tables []Table
}

type LoadOptions struct {
	// Exclude drops tables whose name matches any of these path.Match
	// patterns.
	Exclude []string
	// TypeCasing and FieldCasing are used to detect names that collide once
	// converted. Zero values mean the emitter defaults.
	TypeCasing  naming.Casing
	FieldCasing naming.Casing
	// Logger receives non-blocking validation issues. Nil discards them.
	Logger *log.Logger
}

// Load reads the metadata source once and returns a validated Schema. Every
// failure is a *source.SchemaLoadError.
func Load(ctx context.Context, insp source.Inspector, opts LoadOptions) (*Schema, error) {
	res, err := insp.Inspect(ctx)
	if err != nil {
		return nil, &source.SchemaLoadError{Source: insp.Name(), Err: err}
	}
	if res == nil {
		return nil, &source.SchemaLoadError{Source: insp.Name(), Err: errors.New("metadata source returned no result")}
	}

	s, err := FromInspection(res, opts.Exclude)
	if err != nil {
		return nil, &source.SchemaLoadError{Source: insp.Name(), Err: err}
	}
	if s.Source == "" {
		s.Source = insp.Name()
	}

	report := Validate(s, ValidateOptions{TypeCasing: opts.TypeCasing, FieldCasing: opts.FieldCasing})
	if opts.Logger != nil {
		for _, iss := range report.Issues {
			if iss.Severity != SeverityBlock {
				opts.Logger.Printf("%s %s", iss.Severity, iss)
			}
		}
	}
	if err := report.Err(); err != nil {
		first := report.Blocking()[0]
		return nil, &source.SchemaLoadError{Source: s.Source, Table: first.Table, Column: first.Column, Err: err}
	}
	return s, nil
}

// FromInspection converts raw catalog rows into a Schema, parsing every
// column type. Table and column order are kept as reported.
func FromInspection(res *source.InspectionResult, exclude []string) (*Schema, error) {
	for _, pattern := range exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
	}

	s := &Schema{Source: res.Source}
	for _, t := range res.Tables {
		if excluded(t.Name, exclude) {
			continue
		}
		table := Table{Name: t.Name, Columns: make([]Column, 0, len(t.Columns))}
		for _, c := range t.Columns {
			table.Columns = append(table.Columns, Column{
				Name:     c.Name,
				Type:     ParseType(c.Type).WithLabels(c.Labels),
				Nullable: c.Nullable,
			})
		}
		s.Tables = append(s.Tables, table)
	}
	return s, nil
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}
