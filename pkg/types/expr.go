// Package types models TypeScript type expressions as emitted for database
// columns: primitives, arrays, literal unions, nullable unions and the
// opaque fallback.
package types

import (
	"strconv"
	"strings"
)

type ExprKind int

const (
	KindPrimitive ExprKind = iota
	KindArray
	KindUnion
	KindNullable
	KindOpaque
)

// FallbackName is rendered for SQL types without an explicit mapping.
const FallbackName = "any"

// Expr is an immutable TypeScript type expression.
type Expr struct {
	kind    ExprKind
	name    string
	elem    *Expr
	members []string
}

func Primitive(name string) Expr {
	return Expr{kind: KindPrimitive, name: name}
}

// Opaque is the fallback for unmapped SQL types.
func Opaque() Expr {
	return Expr{kind: KindOpaque, name: FallbackName}
}

func ArrayOf(elem Expr) Expr {
	return Expr{kind: KindArray, elem: &elem}
}

// Literals is a union of string literal types, e.g. 'a' | 'b'. With no
// labels it degrades to string.
func Literals(labels ...string) Expr {
	if len(labels) == 0 {
		return Primitive("string")
	}
	return Expr{kind: KindUnion, members: append([]string(nil), labels...)}
}

// Nullable wraps inner in a union with null. Wrapping is applied once:
// Nullable(Nullable(x)) == Nullable(x).
func Nullable(inner Expr) Expr {
	if inner.kind == KindNullable {
		return inner
	}
	return Expr{kind: KindNullable, elem: &inner}
}

func (e Expr) Kind() ExprKind { return e.kind }

func (e Expr) IsNullable() bool { return e.kind == KindNullable }

// Elem returns the element of an array or the inner type of a nullable.
func (e Expr) Elem() (Expr, bool) {
	if e.elem == nil {
		return Expr{}, false
	}
	return *e.elem, true
}

// String renders the expression in TypeScript syntax. Unions inside arrays
// are parenthesised: ('a' | 'b')[].
func (e Expr) String() string {
	switch e.kind {
	case KindArray:
		inner := e.elem.String()
		if e.elem.kind == KindUnion || e.elem.kind == KindNullable {
			inner = "(" + inner + ")"
		}
		return inner + "[]"
	case KindUnion:
		parts := make([]string, len(e.members))
		for i, m := range e.members {
			parts[i] = quote(m)
		}
		return strings.Join(parts, " | ")
	case KindNullable:
		return e.elem.String() + " | null"
	default:
		return e.name
	}
}

func (e Expr) Equal(other Expr) bool {
	return e.String() == other.String() && e.kind == other.kind
}

// quote renders a single-quoted TypeScript string literal.
func quote(s string) string {
	q := strconv.Quote(s)
	body := q[1 : len(q)-1]
	body = strings.ReplaceAll(body, `\"`, `"`)
	body = strings.ReplaceAll(body, `'`, `\'`)
	return "'" + body + "'"
}
