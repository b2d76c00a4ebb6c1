package ast

import "strings"

// SelectFlavor distinguishes the clause order a SELECT core was written in.
type SelectFlavor int

const (
	// SelectFlavorStandard is SELECT ... FROM ...
	SelectFlavorStandard SelectFlavor = iota
	// SelectFlavorFromFirst is FROM ... SELECT ...
	SelectFlavorFromFirst
	// SelectFlavorFromFirstNoSelect is a bare FROM ... with no projection.
	SelectFlavorFromFirstNoSelect
)

// ValueTableMode is a BigQuery-style SELECT AS STRUCT / AS VALUE marker.
type ValueTableMode int

const (
	ValueTableModeNone ValueTableMode = iota
	ValueTableModeAsStruct
	ValueTableModeAsValue
)

func (m ValueTableMode) String() string {
	switch m {
	case ValueTableModeAsStruct:
		return "AS STRUCT"
	case ValueTableModeAsValue:
		return "AS VALUE"
	default:
		return ""
	}
}

// Select is a single SELECT core without the query-level trailing clauses.
type Select struct {
	Distinct       *Distinct
	Top            *Top
	Projection     []SelectItem
	Into           *SelectInto
	From           []TableWithJoins
	LateralViews   []LateralView
	Selection      Expr
	GroupBy        GroupByExpr
	ClusterBy      []Expr
	DistributeBy   []Expr
	SortBy         []Expr
	Having         Expr
	NamedWindows   []NamedWindowDefinition
	Qualify        Expr
	ValueTableMode ValueTableMode
	Flavor         SelectFlavor
}

func (s *Select) String() string {
	var b strings.Builder
	writeFrom := func() {
		if len(s.From) == 0 {
			return
		}
		b.WriteString(" FROM ")
		for i, twj := range s.From {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(twj.String())
		}
	}
	writeProjection := func() {
		b.WriteString("SELECT")
		if m := s.ValueTableMode.String(); m != "" {
			b.WriteString(" ")
			b.WriteString(m)
		}
		if s.Distinct != nil {
			b.WriteString(" ")
			b.WriteString(s.Distinct.String())
		}
		if s.Top != nil {
			b.WriteString(" ")
			b.WriteString(s.Top.String())
		}
		if len(s.Projection) > 0 {
			parts := make([]string, len(s.Projection))
			for i, item := range s.Projection {
				parts[i] = item.String()
			}
			b.WriteString(" ")
			b.WriteString(strings.Join(parts, ", "))
		}
		if s.Into != nil {
			b.WriteString(" ")
			b.WriteString(s.Into.String())
		}
	}
	writeFromFirst := func() {
		b.WriteString("FROM ")
		for i, twj := range s.From {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(twj.String())
		}
	}
	switch s.Flavor {
	case SelectFlavorFromFirst:
		writeFromFirst()
		b.WriteString(" ")
		writeProjection()
	case SelectFlavorFromFirstNoSelect:
		writeFromFirst()
	default:
		writeProjection()
		writeFrom()
	}
	for _, lv := range s.LateralViews {
		b.WriteString(lv.String())
	}
	if s.Selection != nil {
		b.WriteString(" WHERE ")
		b.WriteString(s.Selection.String())
	}
	if s.GroupBy != nil {
		if g := s.GroupBy.String(); g != "" {
			b.WriteString(" GROUP BY ")
			b.WriteString(g)
		}
	}
	if len(s.ClusterBy) > 0 {
		b.WriteString(" CLUSTER BY ")
		b.WriteString(exprList(s.ClusterBy))
	}
	if len(s.DistributeBy) > 0 {
		b.WriteString(" DISTRIBUTE BY ")
		b.WriteString(exprList(s.DistributeBy))
	}
	if len(s.SortBy) > 0 {
		b.WriteString(" SORT BY ")
		b.WriteString(exprList(s.SortBy))
	}
	if s.Having != nil {
		b.WriteString(" HAVING ")
		b.WriteString(s.Having.String())
	}
	if len(s.NamedWindows) > 0 {
		parts := make([]string, len(s.NamedWindows))
		for i, w := range s.NamedWindows {
			parts[i] = w.String()
		}
		b.WriteString(" WINDOW ")
		b.WriteString(strings.Join(parts, ", "))
	}
	if s.Qualify != nil {
		b.WriteString(" QUALIFY ")
		b.WriteString(s.Qualify.String())
	}
	return b.String()
}

// Distinct is a DISTINCT or DISTINCT ON (...) marker. A nil On slice means
// plain DISTINCT.
type Distinct struct {
	On []Expr
}

func (d *Distinct) String() string {
	if len(d.On) == 0 {
		return "DISTINCT"
	}
	return "DISTINCT ON (" + exprList(d.On) + ")"
}

// Top is a TOP n [PERCENT] [WITH TIES] clause.
type Top struct {
	Quantity Expr
	Percent  bool
	WithTies bool
}

func (t *Top) String() string {
	var b strings.Builder
	b.WriteString("TOP")
	if t.Quantity != nil {
		b.WriteString(" ")
		b.WriteString(t.Quantity.String())
	}
	if t.Percent {
		b.WriteString(" PERCENT")
	}
	if t.WithTies {
		b.WriteString(" WITH TIES")
	}
	return b.String()
}

// UnnamedExpr projects an expression under its own name.
type UnnamedExpr struct {
	Expr Expr
}

func (s *UnnamedExpr) String() string { return s.Expr.String() }

// ExprWithAlias projects an expression under an explicit alias.
type ExprWithAlias struct {
	Expr  Expr
	Alias Ident
}

func (s *ExprWithAlias) String() string { return s.Expr.String() + " AS " + s.Alias.String() }

// QualifiedWildcard projects every column of one relation.
type QualifiedWildcard struct {
	Qualifier ObjectName
}

func (s *QualifiedWildcard) String() string { return s.Qualifier.String() + ".*" }

// Wildcard projects every input column.
type Wildcard struct{}

func (s *Wildcard) String() string { return "*" }

func (*UnnamedExpr) selectItem()       {}
func (*ExprWithAlias) selectItem()     {}
func (*QualifiedWildcard) selectItem() {}
func (*Wildcard) selectItem()          {}

// GroupByExpressions is an explicit GROUP BY list. An empty list renders as
// no GROUP BY clause at all.
type GroupByExpressions struct {
	Exprs []Expr
}

func (g *GroupByExpressions) String() string { return exprList(g.Exprs) }

// GroupByAll is GROUP BY ALL.
type GroupByAll struct{}

func (g *GroupByAll) String() string { return "ALL" }

func (*GroupByExpressions) groupByExpr() {}
func (*GroupByAll) groupByExpr()         {}

// LateralView is a Hive LATERAL VIEW clause.
type LateralView struct {
	Expr     Expr
	ViewName ObjectName
	Columns  []Ident
	Outer    bool
}

func (v LateralView) String() string {
	var b strings.Builder
	b.WriteString(" LATERAL VIEW")
	if v.Outer {
		b.WriteString(" OUTER")
	}
	b.WriteString(" ")
	b.WriteString(v.Expr.String())
	b.WriteString(" ")
	b.WriteString(v.ViewName.String())
	if len(v.Columns) > 0 {
		b.WriteString(" AS ")
		b.WriteString(identList(v.Columns))
	}
	return b.String()
}

// NamedWindowDefinition is one entry of a WINDOW clause.
type NamedWindowDefinition struct {
	Name Ident
	Spec WindowSpec
}

func (w NamedWindowDefinition) String() string {
	return w.Name.String() + " AS (" + w.Spec.String() + ")"
}

// WindowSpec is the parenthesized body of a window definition.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []OrderByExpr
}

func (w WindowSpec) String() string {
	var parts []string
	if len(w.PartitionBy) > 0 {
		parts = append(parts, "PARTITION BY "+exprList(w.PartitionBy))
	}
	if len(w.OrderBy) > 0 {
		keys := make([]string, len(w.OrderBy))
		for i, k := range w.OrderBy {
			keys[i] = k.String()
		}
		parts = append(parts, "ORDER BY "+strings.Join(keys, ", "))
	}
	return strings.Join(parts, " ")
}
