package schema

import (
	"errors"
	"strconv"
	"strings"

	"github.com/alexanderjulianmartinez/schemats/internal/naming"
)

type Issue struct {
	Severity string
	Kind     string
	Table    string
	Column   string
	Message  string
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Table != "" {
		b.WriteString(strconv.Quote(i.Table))
	}
	if i.Column != "" {
		b.WriteString(".")
		b.WriteString(strconv.Quote(i.Column))
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(i.Message)
	return b.String()
}

type Report struct {
	Issues []Issue
}

func (r *Report) add(kind, table, column, detail string) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityForIssue(kind),
		Kind:     kind,
		Table:    table,
		Column:   column,
		Message:  MessageForIssue(kind, detail),
	})
}

func (r *Report) Blocking() []Issue {
	var out []Issue
	for _, iss := range r.Issues {
		if iss.Severity == SeverityBlock {
			out = append(out, iss)
		}
	}
	return out
}

// Err joins every blocking issue, or returns nil when there are none.
func (r *Report) Err() error {
	var errs []error
	for _, iss := range r.Blocking() {
		errs = append(errs, errors.New(iss.String()))
	}
	return errors.Join(errs...)
}

type ValidateOptions struct {
	TypeCasing  naming.Casing
	FieldCasing naming.Casing
}

// Validate checks the invariants the emitter relies on: non-empty unique
// names and representable types. It also flags names that collide after case
// conversion and columns that fall back to the opaque type.
func Validate(s *Schema, opts ValidateOptions) *Report {
	typeCasing := opts.TypeCasing.Or(naming.PascalCase)
	fieldCasing := opts.FieldCasing.Or(naming.CamelCase)

	report := &Report{}
	tables := map[string]bool{}
	typeNames := map[string]string{}

	for _, table := range s.Tables {
		if table.Name == "" {
			report.add("empty_table_name", "", "", "")
			continue
		}
		if tables[table.Name] {
			report.add("duplicate_table", table.Name, "", "")
			continue
		}
		tables[table.Name] = true

		typeName := naming.ConvertIdentifier(table.Name, typeCasing)
		if other, ok := typeNames[typeName]; ok {
			report.add("type_name_collision", table.Name, "", typeName+" (also "+other+")")
		} else {
			typeNames[typeName] = table.Name
		}

		columns := map[string]bool{}
		fieldNames := map[string]string{}
		for _, col := range table.Columns {
			if col.Name == "" {
				report.add("empty_column_name", table.Name, "", "")
				continue
			}
			if columns[col.Name] {
				report.add("duplicate_column", table.Name, col.Name, "")
				continue
			}
			columns[col.Name] = true

			if err := col.Type.Check(); err != nil {
				report.add("corrupt_type", table.Name, col.Name, err.Error())
				continue
			}
			if col.Type.Opaque() {
				report.add("opaque_type", table.Name, col.Name, strconv.Quote(col.Type.String()))
			}

			fieldName := naming.ConvertIdentifier(col.Name, fieldCasing)
			if other, ok := fieldNames[fieldName]; ok {
				report.add("field_name_collision", table.Name, col.Name, fieldName+" (also "+other+")")
			} else {
				fieldNames[fieldName] = col.Name
			}
		}
	}
	return report
}
