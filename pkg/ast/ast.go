// Package ast defines the SQL query syntax tree shared by the forward
// planner and the unparser builders.
//
// The tree is deliberately narrower than a full SQL grammar: it covers the
// query surface (WITH, set operations, SELECT cores, ORDER BY, limit
// clauses, locking and FOR clauses) plus the expression and relation nodes
// those constructs reference. Statement kinds outside the query surface are
// out of scope.
//
// Node families are closed sums: each family is an interface with an
// unexported marker method, so the set of variants is fixed at compile time
// and consumption sites can type-switch exhaustively. Every node renders
// itself back to SQL text via String; keyword spelling lives here and
// nowhere else.
package ast

import "strings"

// Expr is a scalar SQL expression node.
type Expr interface {
	String() string
	exprNode()
}

// SetExpr is the body of a query: a bare SELECT core, a parenthesized
// query, a set operation over two bodies, or a VALUES list.
type SetExpr interface {
	String() string
	setExpr()
}

// TableFactor is a single relation in a FROM clause.
type TableFactor interface {
	String() string
	tableFactor()
}

// OrderByKind is the payload of an ORDER BY clause: either a literal ALL
// or an explicit expression list.
type OrderByKind interface {
	String() string
	orderByKind()
}

// LimitClause is one of the two row-limit surface syntaxes.
type LimitClause interface {
	String() string
	limitClause()
}

// SelectItem is one element of a projection list.
type SelectItem interface {
	String() string
	selectItem()
}

// GroupByExpr is the payload of a GROUP BY clause.
type GroupByExpr interface {
	String() string
	groupByExpr()
}

// Ident is a possibly quoted identifier part.
type Ident struct {
	Name  string
	Quote rune // 0 when unquoted
}

// NewIdent returns an unquoted identifier.
func NewIdent(name string) Ident { return Ident{Name: name} }

func (i Ident) String() string {
	if i.Quote == 0 {
		return i.Name
	}
	q := string(i.Quote)
	closing := q
	if i.Quote == '[' {
		closing = "]"
	}
	return q + strings.ReplaceAll(i.Name, closing, closing+closing) + closing
}

// ObjectName is a dotted, possibly multi-part object reference such as
// catalog.schema.table.
type ObjectName struct {
	Parts []Ident
}

// NewObjectName builds an ObjectName from unquoted parts.
func NewObjectName(parts ...string) ObjectName {
	idents := make([]Ident, len(parts))
	for i, p := range parts {
		idents[i] = NewIdent(p)
	}
	return ObjectName{Parts: idents}
}

func (o ObjectName) String() string {
	parts := make([]string, len(o.Parts))
	for i, p := range o.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, ".")
}

func identList(ids []Ident) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}

func exprList(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
