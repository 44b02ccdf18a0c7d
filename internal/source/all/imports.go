// Package all registers every built-in metadata source with package source.
// Import it for side effects:
//
//	import _ "github.com/alexanderjulianmartinez/schemats/internal/source/all"
//
// after which source.Open understands postgres://, mysql://, sqlserver://,
// sqlite:// (or file:) connection strings and *.yaml schema registries.
package all

import (
	_ "github.com/alexanderjulianmartinez/schemats/internal/source/mssql"
	_ "github.com/alexanderjulianmartinez/schemats/internal/source/mysql"
	_ "github.com/alexanderjulianmartinez/schemats/internal/source/postgres"
	_ "github.com/alexanderjulianmartinez/schemats/internal/source/sqlite"
	_ "github.com/alexanderjulianmartinez/schemats/internal/source/static"
)
