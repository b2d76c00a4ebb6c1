package logical

import (
	"reflect"
	"strings"
)

// Expr is a resolved scalar expression inside a plan.
type Expr interface {
	String() string
	logicalExpr()
}

// Column is a resolved column reference.
type Column struct {
	Relation string // optional qualifier
	Name     string
}

// NewColumn returns an unqualified column reference.
func NewColumn(name string) *Column { return &Column{Name: name} }

func (c *Column) String() string {
	if c.Relation != "" {
		return c.Relation + "." + c.Name
	}
	return c.Name
}

// Literal is a scalar constant carrying its display text.
type Literal struct {
	Value string
}

func (l *Literal) String() string { return l.Value }

// BinaryExpr applies an operator to two operands.
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

func (e *BinaryExpr) String() string {
	return e.Left.String() + " " + e.Op + " " + e.Right.String()
}

// Function is a scalar function application.
type Function struct {
	Name string
	Args []Expr
}

func (e *Function) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Alias renames the result of an expression.
type Alias struct {
	Expr Expr
	Name string
}

func (e *Alias) String() string { return e.Expr.String() + " AS " + e.Name }

func (*Column) logicalExpr()     {}
func (*Literal) logicalExpr()    {}
func (*BinaryExpr) logicalExpr() {}
func (*Function) logicalExpr()   {}
func (*Alias) logicalExpr()      {}

// ExprEqual reports structural equality of two expressions.
func ExprEqual(a, b Expr) bool { return reflect.DeepEqual(a, b) }

// OutputName returns the column name an expression produces.
func OutputName(e Expr) string {
	switch v := e.(type) {
	case *Column:
		return v.Name
	case *Alias:
		return v.Name
	default:
		return e.String()
	}
}

// SortExpr is one sort key with its resolved direction flags.
type SortExpr struct {
	Expr       Expr
	Asc        bool
	NullsFirst bool
}

func (s SortExpr) String() string {
	dir := " DESC"
	if s.Asc {
		dir = " ASC"
	}
	nulls := " NULLS LAST"
	if s.NullsFirst {
		nulls = " NULLS FIRST"
	}
	return s.Expr.String() + dir + nulls
}

func sortExprList(sorts []SortExpr) string {
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

func exprStrings(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
