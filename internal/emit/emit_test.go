package emit

import (
	"strings"
	"testing"

	"github.com/alexanderjulianmartinez/schemats/internal/naming"
	"github.com/alexanderjulianmartinez/schemats/internal/schema"
	"github.com/alexanderjulianmartinez/schemats/internal/typemap"
)

func userAccount() schema.Table {
	return schema.Table{Name: "user_account", Columns: []schema.Column{
		{Name: "id", Type: schema.Integer()},
		{Name: "display_name", Type: schema.Text(), Nullable: true},
	}}
}

func TestEmit_UserAccount(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{userAccount()}}
	got := Emit(s, Options{})
	want := "export interface UserAccount {\n" +
		"  id: number;\n" +
		"  displayName?: string | null;\n" +
		"}\n"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmit_Empty(t *testing.T) {
	if got := Emit(&schema.Schema{}, Options{}); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := Emit(nil, Options{}); got != "" {
		t.Fatalf("expected empty output for nil schema, got %q", got)
	}
}

func TestEmit_Separators(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{
		userAccount(),
		{Name: "audit_log"},
		{Name: "page", Columns: []schema.Column{{Name: "slug", Type: schema.Text()}}},
	}}
	got := Emit(s, Options{})
	want := "export interface UserAccount {\n" +
		"  id: number;\n" +
		"  displayName?: string | null;\n" +
		"}\n" +
		"\n" +
		"export interface AuditLog {}\n" +
		"\n" +
		"export interface Page {\n" +
		"  slug: string;\n" +
		"}\n"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
	if strings.HasPrefix(got, "\n") || strings.HasSuffix(got, "\n\n") {
		t.Fatalf("output must not start or end with a blank line: %q", got)
	}
}

func TestEmit_PreservesOrder(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{
		{Name: "zebra", Columns: []schema.Column{
			{Name: "z_col", Type: schema.Text()},
			{Name: "a_col", Type: schema.Text()},
			{Name: "m_col", Type: schema.Text()},
		}},
		{Name: "apple"},
	}}
	got := Emit(s, Options{})

	if strings.Index(got, "Zebra") > strings.Index(got, "Apple") {
		t.Fatalf("tables re-ordered:\n%s", got)
	}
	lines := fieldLines(got)
	want := []string{"  zCol: string;", "  aCol: string;", "  mCol: string;"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d field lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("field %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestEmit_FieldCountMatchesColumns(t *testing.T) {
	var cols []schema.Column
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		cols = append(cols, schema.Column{Name: name, Type: schema.ParseType("varchar(10)"), Nullable: name == "c"})
	}
	got := Emit(&schema.Schema{Tables: []schema.Table{{Name: "t", Columns: cols}}}, Options{})
	if n := len(fieldLines(got)); n != len(cols) {
		t.Fatalf("expected %d field lines, got %d:\n%s", len(cols), n, got)
	}
}

func TestEmit_Deterministic(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{
		userAccount(),
		{Name: "mood_log", Columns: []schema.Column{
			{Name: "moods", Type: schema.ArrayOf(schema.Enum("mood", "sad", "ok")), Nullable: true},
			{Name: "extra", Type: schema.Other("hstore")},
		}},
	}}
	first := Emit(s, Options{})
	for i := 0; i < 5; i++ {
		if again := Emit(s, Options{}); again != first {
			t.Fatalf("output differs on run %d:\n%s\nvs\n%s", i, again, first)
		}
	}
}

func TestEmit_NullableArray(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{{Name: "post", Columns: []schema.Column{
		{Name: "tags", Type: schema.ArrayOf(schema.Text()), Nullable: true},
	}}}}
	got := Emit(s, Options{})
	if !strings.Contains(got, "  tags?: string[] | null;\n") {
		t.Fatalf("expected optional string array field, got:\n%s", got)
	}
}

func TestEmit_Fallback(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{{Name: "shape", Columns: []schema.Column{
		{Name: "outline", Type: schema.ParseType("polygon")},
	}}}}
	got := Emit(s, Options{})
	if !strings.Contains(got, "  outline: any;\n") {
		t.Fatalf("expected fallback type, got:\n%s", got)
	}
}

func TestEmit_Options(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{{Name: "user_account", Columns: []schema.Column{
		{Name: "display_name", Type: schema.ParseType("jsonb"), Nullable: true},
		{Name: "2fa-code", Type: schema.Text()},
	}}}}
	got := Emit(s, Options{
		TypeCasing:  naming.SnakeCase,
		FieldCasing: naming.SnakeCase,
		NoExport:    true,
		Mapper:      typemap.NewMapper(map[string]string{"jsonb": "Record<string, unknown>"}),
	})
	want := "interface user_account {\n" +
		"  display_name?: Record<string, unknown> | null;\n" +
		"  \"2fa-code\": string;\n" +
		"}\n"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestTypeName(t *testing.T) {
	cases := map[string]string{
		"UserAccount": "UserAccount",
		"order-items": "order_items",
		"2fa":         "_2fa",
		"$":           "$",
		"":            "_",
		"class":       "class_",
		"default":     "default_",
		"string":      "string_",
		"Class":       "Class",
	}
	for in, want := range cases {
		if got := typeName(in); got != want {
			t.Errorf("typeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEmit_ReservedTableNames(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{
		{Name: "class", Columns: []schema.Column{{Name: "default", Type: schema.Text()}}},
	}}
	got := Emit(s, Options{TypeCasing: naming.SnakeCase, FieldCasing: naming.SnakeCase})
	want := "export interface class_ {\n  default: string;\n}\n"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
	if got := Emit(s, Options{}); !strings.HasPrefix(got, "export interface Class {") {
		t.Fatalf("pascal case needs no suffix, got %q", got)
	}
}

func fieldLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, indent) {
			lines = append(lines, l)
		}
	}
	return lines
}
