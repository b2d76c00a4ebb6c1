package ast

import "strings"

// Query is a complete query expression: an optional WITH clause, a body,
// and the trailing ordering, limiting and locking clauses that apply to the
// body as a whole.
type Query struct {
	With      *With
	Body      SetExpr
	OrderBy   *OrderBy
	Limit     LimitClause // nil when absent
	Fetch     *Fetch
	Locks     []LockClause
	ForClause *ForClause
}

func (q *Query) String() string {
	var b strings.Builder
	if q.With != nil {
		b.WriteString(q.With.String())
		b.WriteString(" ")
	}
	b.WriteString(q.Body.String())
	if q.OrderBy != nil {
		b.WriteString(" ")
		b.WriteString(q.OrderBy.String())
	}
	if q.Limit != nil {
		if s := q.Limit.String(); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
	}
	if q.Fetch != nil {
		b.WriteString(" ")
		b.WriteString(q.Fetch.String())
	}
	for _, l := range q.Locks {
		b.WriteString(" ")
		b.WriteString(l.String())
	}
	if q.ForClause != nil {
		b.WriteString(" ")
		b.WriteString(q.ForClause.String())
	}
	return b.String()
}

// With is a WITH clause holding one or more common table expressions.
type With struct {
	Recursive bool
	CTEs      []*CTE
}

func (w *With) String() string {
	var b strings.Builder
	b.WriteString("WITH ")
	if w.Recursive {
		b.WriteString("RECURSIVE ")
	}
	for i, cte := range w.CTEs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(cte.String())
	}
	return b.String()
}

// CteMaterialized records an explicit materialization hint on a CTE.
type CteMaterialized int

const (
	CteMaterializedNone CteMaterialized = iota
	CteMaterializedAlways
	CteMaterializedNever
)

// CTE is one common table expression inside a WITH clause.
type CTE struct {
	Alias        TableAlias
	Query        *Query
	Materialized CteMaterialized
}

func (c *CTE) String() string {
	var b strings.Builder
	b.WriteString(c.Alias.String())
	b.WriteString(" AS ")
	switch c.Materialized {
	case CteMaterializedAlways:
		b.WriteString("MATERIALIZED ")
	case CteMaterializedNever:
		b.WriteString("NOT MATERIALIZED ")
	}
	b.WriteString("(")
	b.WriteString(c.Query.String())
	b.WriteString(")")
	return b.String()
}

// SetOperator is the operator of a set operation.
type SetOperator string

const (
	Union     SetOperator = "UNION"
	Intersect SetOperator = "INTERSECT"
	Except    SetOperator = "EXCEPT"
)

// SetQuantifier qualifies a set operator.
type SetQuantifier int

const (
	SetQuantifierNone SetQuantifier = iota
	SetQuantifierAll
	SetQuantifierDistinct
	SetQuantifierByName
	SetQuantifierAllByName
	SetQuantifierDistinctByName
)

func (q SetQuantifier) String() string {
	switch q {
	case SetQuantifierAll:
		return "ALL"
	case SetQuantifierDistinct:
		return "DISTINCT"
	case SetQuantifierByName:
		return "BY NAME"
	case SetQuantifierAllByName:
		return "ALL BY NAME"
	case SetQuantifierDistinctByName:
		return "DISTINCT BY NAME"
	default:
		return ""
	}
}

// SetOperation combines two bodies with UNION, INTERSECT or EXCEPT.
type SetOperation struct {
	Op         SetOperator
	Quantifier SetQuantifier
	Left       SetExpr
	Right      SetExpr
}

func (s *SetOperation) String() string {
	var b strings.Builder
	b.WriteString(s.Left.String())
	b.WriteString(" ")
	b.WriteString(string(s.Op))
	if q := s.Quantifier.String(); q != "" {
		b.WriteString(" ")
		b.WriteString(q)
	}
	b.WriteString(" ")
	b.WriteString(s.Right.String())
	return b.String()
}

// Values is a VALUES list body.
type Values struct {
	ExplicitRow bool
	Rows        [][]Expr
}

func (v *Values) String() string {
	var b strings.Builder
	b.WriteString("VALUES ")
	prefix := ""
	if v.ExplicitRow {
		prefix = "ROW"
	}
	for i, row := range v.Rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(prefix)
		b.WriteString("(")
		b.WriteString(exprList(row))
		b.WriteString(")")
	}
	return b.String()
}

func (*Select) setExpr()       {}
func (*Query) setExpr()        {}
func (*SetOperation) setExpr() {}
func (*Values) setExpr()       {}

// OrderBy is an ORDER BY clause. Interpolate carries a ClickHouse-style
// INTERPOLATE suffix, present only to be detected and rejected downstream.
type OrderBy struct {
	Kind        OrderByKind
	Interpolate *Interpolate
}

func (o *OrderBy) String() string {
	s := "ORDER BY " + o.Kind.String()
	if o.Interpolate != nil {
		s += " " + o.Interpolate.String()
	}
	return s
}

// OrderByAll is ORDER BY ALL with one shared set of options.
type OrderByAll struct {
	Options OrderByOptions
}

func (o *OrderByAll) String() string { return "ALL" + o.Options.String() }

// OrderByExprList is an explicit ORDER BY expression list.
type OrderByExprList struct {
	Exprs []OrderByExpr
}

func (o *OrderByExprList) String() string {
	parts := make([]string, len(o.Exprs))
	for i, e := range o.Exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func (*OrderByAll) orderByKind()      {}
func (*OrderByExprList) orderByKind() {}

// OrderByExpr is a single sort key.
type OrderByExpr struct {
	Expr    Expr
	Options OrderByOptions
}

func (o OrderByExpr) String() string { return o.Expr.String() + o.Options.String() }

// OrderByOptions are the optional direction and null-ordering flags of a
// sort key. Nil means the syntax did not specify the flag.
type OrderByOptions struct {
	Asc        *bool
	NullsFirst *bool
}

func (o OrderByOptions) String() string {
	var b strings.Builder
	if o.Asc != nil {
		if *o.Asc {
			b.WriteString(" ASC")
		} else {
			b.WriteString(" DESC")
		}
	}
	if o.NullsFirst != nil {
		if *o.NullsFirst {
			b.WriteString(" NULLS FIRST")
		} else {
			b.WriteString(" NULLS LAST")
		}
	}
	return b.String()
}

// Interpolate is the ORDER BY ... INTERPOLATE suffix.
type Interpolate struct {
	Exprs []InterpolateExpr
}

func (i *Interpolate) String() string { return "INTERPOLATE" }

// InterpolateExpr is one column interpolation rule.
type InterpolateExpr struct {
	Column Ident
	Expr   Expr
}

// LimitOffset is the common LIMIT n [BY exprs] [OFFSET m [ROW|ROWS]] shape.
// All fields are optional.
type LimitOffset struct {
	Limit   Expr
	Offset  *Offset
	LimitBy []Expr
}

func (l *LimitOffset) String() string {
	var parts []string
	if l.Limit != nil {
		parts = append(parts, "LIMIT "+l.Limit.String())
	}
	if len(l.LimitBy) > 0 {
		parts = append(parts, "BY "+exprList(l.LimitBy))
	}
	if l.Offset != nil {
		parts = append(parts, l.Offset.String())
	}
	return strings.Join(parts, " ")
}

// OffsetCommaLimit is the MySQL LIMIT offset, limit shape. Both fields are
// required by the grammar.
type OffsetCommaLimit struct {
	Offset Expr
	Limit  Expr
}

func (l *OffsetCommaLimit) String() string {
	return "LIMIT " + l.Offset.String() + ", " + l.Limit.String()
}

func (*LimitOffset) limitClause()      {}
func (*OffsetCommaLimit) limitClause() {}

// OffsetRows is the optional ROW/ROWS keyword after an offset value.
type OffsetRows int

const (
	OffsetRowsNone OffsetRows = iota
	OffsetRowsRow
	OffsetRowsRows
)

// Offset is an OFFSET clause.
type Offset struct {
	Value Expr
	Rows  OffsetRows
}

func (o *Offset) String() string {
	s := "OFFSET " + o.Value.String()
	switch o.Rows {
	case OffsetRowsRow:
		s += " ROW"
	case OffsetRowsRows:
		s += " ROWS"
	}
	return s
}

// Fetch is a FETCH FIRST clause.
type Fetch struct {
	Quantity Expr
	Percent  bool
	WithTies bool
}

func (f *Fetch) String() string {
	extension := "ONLY"
	if f.WithTies {
		extension = "WITH TIES"
	}
	if f.Quantity == nil {
		return "FETCH FIRST ROWS " + extension
	}
	percent := ""
	if f.Percent {
		percent = " PERCENT"
	}
	return "FETCH FIRST " + f.Quantity.String() + percent + " ROWS " + extension
}

// LockType is the strength of a locking clause.
type LockType string

const (
	LockUpdate LockType = "UPDATE"
	LockShare  LockType = "SHARE"
)

// NonBlock is the non-blocking behavior of a locking clause.
type NonBlock int

const (
	NonBlockNone NonBlock = iota
	NonBlockNowait
	NonBlockSkipLocked
)

// LockClause is a FOR UPDATE / FOR SHARE clause.
type LockClause struct {
	Type     LockType
	Of       *ObjectName
	NonBlock NonBlock
}

func (l LockClause) String() string {
	s := "FOR " + string(l.Type)
	if l.Of != nil {
		s += " OF " + l.Of.String()
	}
	switch l.NonBlock {
	case NonBlockNowait:
		s += " NOWAIT"
	case NonBlockSkipLocked:
		s += " SKIP LOCKED"
	}
	return s
}

// ForClauseKind is the output mode of a trailing FOR clause.
type ForClauseKind string

const (
	ForJSON   ForClauseKind = "JSON"
	ForXML    ForClauseKind = "XML"
	ForBrowse ForClauseKind = "BROWSE"
)

// ForClause is a trailing FOR JSON / FOR XML / FOR BROWSE clause.
type ForClause struct {
	Kind ForClauseKind
}

func (f *ForClause) String() string { return "FOR " + string(f.Kind) }

// SelectInto is a SELECT ... INTO target.
type SelectInto struct {
	Temporary bool
	Unlogged  bool
	Table     bool
	Name      ObjectName
}

func (s *SelectInto) String() string {
	var b strings.Builder
	b.WriteString("INTO ")
	if s.Temporary {
		b.WriteString("TEMPORARY ")
	}
	if s.Unlogged {
		b.WriteString("UNLOGGED ")
	}
	if s.Table {
		b.WriteString("TABLE ")
	}
	b.WriteString(s.Name.String())
	return b.String()
}
