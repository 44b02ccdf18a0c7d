package mssql

import (
	"context"
	"os"
	"testing"

	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/alexanderjulianmartinez/schemats/internal/schema"
	"github.com/alexanderjulianmartinez/schemats/internal/typemap"
)

func TestDSN_MSSQLScheme(t *testing.T) {
	cfg, err := msdsn.Parse(DSN("mssql://sa:pw@dbhost:1444?database=inventory"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Host != "dbhost" || cfg.Port != 1444 || cfg.Database != "inventory" {
		t.Fatalf("got host=%q port=%d database=%q", cfg.Host, cfg.Port, cfg.Database)
	}
}

func TestDSN_Passthrough(t *testing.T) {
	for _, in := range []string{
		"sqlserver://sa:pw@dbhost?database=x",
		"server=dbhost;user id=sa;password=pw",
	} {
		if got := DSN(in); got != in {
			t.Errorf("DSN(%q) = %q", in, got)
		}
	}
	if got := DSN("MSSQL://h"); got != "sqlserver://h" {
		t.Errorf("DSN(MSSQL://h) = %q", got)
	}
}

func TestNormalizeType(t *testing.T) {
	cases := map[string]string{
		"timestamp":  "binary",
		"rowversion": "binary",
		"TIMESTAMP":  "binary",
		"datetime2":  "datetime2",
		"nvarchar":   "nvarchar",
	}
	for in, want := range cases {
		if got := NormalizeType(in); got != want {
			t.Errorf("NormalizeType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeType_RowversionIsBuffer(t *testing.T) {
	got := typemap.MapType(schema.ParseType(NormalizeType("timestamp"))).String()
	if got != "Buffer" {
		t.Fatalf("rowversion column maps to %s, want Buffer", got)
	}
}

func TestNewInspector_InvalidDSN(t *testing.T) {
	_, err := NewInspector(context.Background(), "sqlserver://sa:pw@host:notaport?database=x", "")
	if err == nil {
		t.Fatal("expected dsn error")
	}
}

func TestInspect_Live(t *testing.T) {
	url := os.Getenv("SCHEMATS_TEST_MSSQL_URL")
	if url == "" {
		t.Skip("SCHEMATS_TEST_MSSQL_URL not set")
	}
	ctx := context.Background()
	insp, err := NewInspector(ctx, url, "")
	if err != nil {
		t.Fatalf("NewInspector: %v", err)
	}
	defer insp.Close()

	res, err := insp.Inspect(ctx)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	for _, tbl := range res.Tables {
		if tbl.Name == "" {
			t.Fatalf("table without name in %+v", res.Tables)
		}
	}
}
