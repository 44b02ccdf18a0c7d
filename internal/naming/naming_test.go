package naming

import (
	"reflect"
	"testing"
)

func TestConvertIdentifier(t *testing.T) {
	cases := []struct {
		in     string
		casing Casing
		want   string
	}{
		{"user_account", PascalCase, "UserAccount"},
		{"user_account", CamelCase, "userAccount"},
		{"user_account", SnakeCase, "user_account"},
		{"display_name", CamelCase, "displayName"},
		{"id", CamelCase, "id"},
		{"id", PascalCase, "Id"},

		// empty segments
		{"__user__account_", PascalCase, "UserAccount"},
		{"_id", CamelCase, "id"},

		// fully uppercase input
		{"USER_ID", PascalCase, "UserId"},
		{"USER_ID", CamelCase, "userId"},
		{"ID", CamelCase, "id"},

		// leading digits
		{"2fa_code", PascalCase, "_2faCode"},
		{"2fa_code", CamelCase, "_2faCode"},
		{"2fa_code", SnakeCase, "2fa_code"},

		// digits inside
		{"address2_line", PascalCase, "Address2Line"},
		{"v2Api", PascalCase, "V2Api"},

		// acronyms
		{"HTTPServer", PascalCase, "HTTPServer"},
		{"HTTPServer", CamelCase, "httpServer"},
		{"userID", PascalCase, "UserID"},

		// other separators
		{"order-items", PascalCase, "OrderItems"},
		{"created at", CamelCase, "createdAt"},

		// nothing usable
		{"", PascalCase, "_"},
		{"___", CamelCase, "_"},
		{"", SnakeCase, ""},

		// non-ASCII letters
		{"größe_wert", PascalCase, "GrößeWert"},
	}
	for _, c := range cases {
		if got := ConvertIdentifier(c.in, c.casing); got != c.want {
			t.Errorf("ConvertIdentifier(%q, %s) = %q, want %q", c.in, c.casing, got, c.want)
		}
	}
}

func TestConvertIdentifier_RoundTrip(t *testing.T) {
	pascal := []string{"UserAccount", "Id", "HTTPServer", "UserID", "Address2Line", "A"}
	for _, in := range pascal {
		if got := ConvertIdentifier(in, PascalCase); got != in {
			t.Errorf("PascalCase(%q) = %q, expected identity", in, got)
		}
	}
	camel := []string{"displayName", "id", "userID", "httpServer", "a1B2"}
	for _, in := range camel {
		if got := ConvertIdentifier(in, CamelCase); got != in {
			t.Errorf("CamelCase(%q) = %q, expected identity", in, got)
		}
	}
	snake := []string{"user_account", "Mixed_Case", "2fa"}
	for _, in := range snake {
		if got := ConvertIdentifier(in, SnakeCase); got != in {
			t.Errorf("SnakeCase(%q) = %q, expected identity", in, got)
		}
	}
}

func TestConvertIdentifier_Idempotent(t *testing.T) {
	for _, in := range []string{"user_account", "USER_ID", "2fa_code", "HTTPServer", "order-items"} {
		for _, c := range []Casing{PascalCase, CamelCase} {
			once := ConvertIdentifier(in, c)
			if twice := ConvertIdentifier(once, c); twice != once {
				t.Errorf("%s(%q): %q then %q", c, in, once, twice)
			}
		}
	}
}

func TestSplitWords(t *testing.T) {
	cases := map[string][]string{
		"user_account": {"user", "account"},
		"displayName":  {"display", "Name"},
		"HTTPServer":   {"HTTP", "Server"},
		"v2Api":        {"v2", "Api"},
		"a__b":         {"a", "b"},
		"":             nil,
	}
	for in, want := range cases {
		if got := SplitWords(in); !reflect.DeepEqual(got, want) {
			t.Errorf("SplitWords(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCasing(t *testing.T) {
	cases := map[string]Casing{
		"pascal":     PascalCase,
		"PascalCase": PascalCase,
		"camelCase":  CamelCase,
		" camel ":    CamelCase,
		"snake_case": SnakeCase,
		"preserve":   SnakeCase,
	}
	for in, want := range cases {
		got, err := ParseCasing(in)
		if err != nil || got != want {
			t.Errorf("ParseCasing(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseCasing("kebab"); err == nil {
		t.Error("expected error for unknown casing")
	}
}

func TestCasingOr(t *testing.T) {
	var unset Casing
	if unset.Or(CamelCase) != CamelCase {
		t.Fatal("unset casing should take the default")
	}
	if SnakeCase.Or(CamelCase) != SnakeCase {
		t.Fatal("set casing should win over the default")
	}
}
