package ast

import "strings"

// BinaryOp is a binary operator token.
type BinaryOp string

const (
	OpAnd      BinaryOp = "AND"
	OpOr       BinaryOp = "OR"
	OpEq       BinaryOp = "="
	OpNotEq    BinaryOp = "<>"
	OpLt       BinaryOp = "<"
	OpLtEq     BinaryOp = "<="
	OpGt       BinaryOp = ">"
	OpGtEq     BinaryOp = ">="
	OpPlus     BinaryOp = "+"
	OpMinus    BinaryOp = "-"
	OpMultiply BinaryOp = "*"
	OpDivide   BinaryOp = "/"
	OpModulo   BinaryOp = "%"
)

// UnaryOp is a unary operator token.
type UnaryOp string

const (
	OpNot    UnaryOp = "NOT"
	OpNegate UnaryOp = "-"
)

// LiteralKind discriminates Literal values.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// Identifier is a bare column or variable reference.
type Identifier struct {
	Ident Ident
}

// NewIdentifier returns an unquoted identifier expression.
func NewIdentifier(name string) *Identifier {
	return &Identifier{Ident: NewIdent(name)}
}

func (e *Identifier) String() string { return e.Ident.String() }

// CompoundIdentifier is a dotted reference such as t.c.
type CompoundIdentifier struct {
	Idents []Ident
}

func (e *CompoundIdentifier) String() string {
	parts := make([]string, len(e.Idents))
	for i, id := range e.Idents {
		parts[i] = id.String()
	}
	return strings.Join(parts, ".")
}

// Literal is a scalar constant. Value holds the source text for numbers
// and strings, "TRUE"/"FALSE" for booleans, and is empty for NULL.
type Literal struct {
	Kind  LiteralKind
	Value string
}

// NewNumber returns a numeric literal carrying the given source text.
func NewNumber(text string) *Literal { return &Literal{Kind: LiteralNumber, Value: text} }

// NewString returns a single-quoted string literal.
func NewString(text string) *Literal { return &Literal{Kind: LiteralString, Value: text} }

func (e *Literal) String() string {
	switch e.Kind {
	case LiteralString:
		return "'" + strings.ReplaceAll(e.Value, "'", "''") + "'"
	case LiteralNull:
		return "NULL"
	default:
		return e.Value
	}
}

// BinaryExpr applies Op to Left and Right.
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

func (e *BinaryExpr) String() string {
	return e.Left.String() + " " + string(e.Op) + " " + e.Right.String()
}

// UnaryExpr applies Op to a single operand.
type UnaryExpr struct {
	Op   UnaryOp
	Expr Expr
}

func (e *UnaryExpr) String() string {
	if e.Op == OpNot {
		return "NOT " + e.Expr.String()
	}
	return string(e.Op) + e.Expr.String()
}

// Nested is a parenthesized expression.
type Nested struct {
	Expr Expr
}

func (e *Nested) String() string { return "(" + e.Expr.String() + ")" }

// FunctionCall is a scalar function invocation.
type FunctionCall struct {
	Name ObjectName
	Args []FunctionArg
}

func (e *FunctionCall) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Name.String() + "(" + strings.Join(parts, ", ") + ")"
}

// FunctionArg is a positional or named function argument. A nil Expr with
// Wildcard set renders as *.
type FunctionArg struct {
	Name     *Ident
	Expr     Expr
	Wildcard bool
}

func (a FunctionArg) String() string {
	var v string
	switch {
	case a.Wildcard:
		v = "*"
	case a.Expr != nil:
		v = a.Expr.String()
	}
	if a.Name != nil {
		return a.Name.String() + " => " + v
	}
	return v
}

// Subquery is a parenthesized scalar subquery.
type Subquery struct {
	Query *Query
}

func (e *Subquery) String() string { return "(" + e.Query.String() + ")" }

func (*Identifier) exprNode()         {}
func (*CompoundIdentifier) exprNode() {}
func (*Literal) exprNode()            {}
func (*BinaryExpr) exprNode()         {}
func (*UnaryExpr) exprNode()          {}
func (*Nested) exprNode()             {}
func (*FunctionCall) exprNode()       {}
func (*Subquery) exprNode()           {}
