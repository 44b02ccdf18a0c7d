package mysql

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeType rewrites a MySQL COLUMN_TYPE into the dialect-neutral name
// understood by schema.ParseType. Enum labels are returned separately.
//
//	tinyint(1)          -> boolean
//	int(10) unsigned    -> int(10)
//	bit(1) / bit(8)     -> boolean / varbinary
//	enum('a','b')       -> enum, [a b]
//	set('a','b')        -> text
func NormalizeType(columnType string) (string, []string, error) {
	t := strings.ToLower(strings.TrimSpace(columnType))
	t = strings.ReplaceAll(t, " unsigned", "")
	t = strings.ReplaceAll(t, " zerofill", "")

	switch {
	case t == "tinyint(1)":
		return "boolean", nil, nil
	case t == "bit(1)":
		return "boolean", nil, nil
	case strings.HasPrefix(t, "bit("):
		return "varbinary", nil, nil
	case strings.HasPrefix(t, "enum("):
		// labels keep their original case
		labels, err := parseLabels(strings.TrimSpace(columnType)[len("enum"):])
		if err != nil {
			return "", nil, err
		}
		return "enum", labels, nil
	case strings.HasPrefix(t, "set("):
		return "text", nil, nil
	}
	return t, nil, nil
}

// parseLabels reads a parenthesised list of single-quoted SQL strings.
func parseLabels(s string) ([]string, error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("malformed enum definition %q", s)
	}
	body := s[1 : len(s)-1]

	var labels []string
	for i := 0; i < len(body); {
		switch body[i] {
		case ' ', ',':
			i++
			continue
		case '\'':
		default:
			return nil, fmt.Errorf("malformed enum definition %q at offset %d", s, i+1)
		}

		var b strings.Builder
		i++
		closed := false
		for i < len(body) {
			c := body[i]
			if c == '\\' && i+1 < len(body) {
				b.WriteByte(body[i+1])
				i += 2
				continue
			}
			if c == '\'' {
				if i+1 < len(body) && body[i+1] == '\'' {
					b.WriteByte('\'')
					i += 2
					continue
				}
				i++
				closed = true
				break
			}
			b.WriteByte(c)
			i++
		}
		if !closed {
			return nil, fmt.Errorf("unterminated enum label in %q", s)
		}
		labels = append(labels, b.String())
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("enum without labels: %s", strconv.Quote(s))
	}
	return labels, nil
}
