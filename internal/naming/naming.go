// Package naming converts SQL identifiers into TypeScript naming
// conventions.
//
// An identifier is split into words at separators (anything that is not a
// letter or digit, typically '_'), at lower-or-digit to upper transitions
// ("displayName" -> display, Name) and before the last capital of an acronym
// that starts a new word ("HTTPServer" -> HTTP, Server). Empty words are
// dropped. An identifier with no lowercase letters ("USER_ID") is lowercased
// first so it converts like its snake_case spelling.
//
// PascalCase capitalises every word, CamelCase lowercases the first word and
// capitalises the rest, SnakeCase returns the identifier unchanged. Results
// that would start with a digit get a leading underscore and an empty result
// becomes "_", so PascalCase and CamelCase always yield a usable identifier.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Casing is a CasingPolicy. The zero value means "use the default for this
// position", see Or.
type Casing string

const (
	PascalCase Casing = "pascal"
	CamelCase  Casing = "camel"
	SnakeCase  Casing = "snake"
)

// Or returns def when c is unset.
func (c Casing) Or(def Casing) Casing {
	if c == "" {
		return def
	}
	return c
}

// ParseCasing accepts pascal, camel or snake in any of their usual
// spellings (PascalCase, camelCase, snake_case, ...).
func ParseCasing(s string) (Casing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pascal", "pascalcase", "pascal_case", "upper_camel":
		return PascalCase, nil
	case "camel", "camelcase", "camel_case", "lower_camel":
		return CamelCase, nil
	case "snake", "snakecase", "snake_case", "none", "preserve":
		return SnakeCase, nil
	}
	return "", fmt.Errorf("unknown casing %q (want pascal, camel or snake)", s)
}

// ConvertIdentifier converts a SQL identifier to the given casing.
func ConvertIdentifier(name string, c Casing) string {
	name = norm.NFC.String(name)
	if c == SnakeCase {
		return name
	}

	lower := cases.Lower(language.Und)
	if !hasLower(name) {
		name = lower.String(name)
	}

	var b strings.Builder
	for i, w := range SplitWords(name) {
		if i == 0 && c == CamelCase {
			b.WriteString(lower.String(w))
			continue
		}
		b.WriteString(capitalize(w))
	}

	out := b.String()
	if out == "" {
		return "_"
	}
	if r, _ := utf8.DecodeRuneInString(out); unicode.IsDigit(r) {
		return "_" + out
	}
	return out
}

// SplitWords splits an identifier into its words.
func SplitWords(name string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToTitle(r)) + w[size:]
}

func hasLower(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}
