package source

import (
	"fmt"
	"strings"
)

// ConnectionError reports a missing or malformed connection string, an
// unsupported scheme, or a database that refused the connection.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Driver == "" {
		return fmt.Sprintf("connect: %v", e.Err)
	}
	return fmt.Sprintf("connect %s: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SchemaLoadError reports metadata that could not be read or that does not
// describe a consistent schema.
type SchemaLoadError struct {
	Source string
	Table  string
	Column string
	Err    error
}

func (e *SchemaLoadError) Error() string {
	var where []string
	if e.Source != "" {
		where = append(where, e.Source)
	}
	if e.Table != "" {
		where = append(where, "table "+e.Table)
	}
	if e.Column != "" {
		where = append(where, "column "+e.Column)
	}
	if len(where) == 0 {
		return fmt.Sprintf("load schema: %v", e.Err)
	}
	return fmt.Sprintf("load schema (%s): %v", strings.Join(where, " "), e.Err)
}

func (e *SchemaLoadError) Unwrap() error { return e.Err }
