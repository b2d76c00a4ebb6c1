package ast

import "strings"

// TableWithJoins is one FROM-clause element: a leading relation and the
// joins chained onto it.
type TableWithJoins struct {
	Relation TableFactor
	Joins    []Join
}

func (t TableWithJoins) String() string {
	var b strings.Builder
	b.WriteString(t.Relation.String())
	for _, j := range t.Joins {
		b.WriteString(j.String())
	}
	return b.String()
}

// JoinKind is the join operator.
type JoinKind string

const (
	JoinInner    JoinKind = "JOIN"
	JoinLeft     JoinKind = "LEFT JOIN"
	JoinRight    JoinKind = "RIGHT JOIN"
	JoinFull     JoinKind = "FULL JOIN"
	JoinCross    JoinKind = "CROSS JOIN"
	JoinLeftSemi JoinKind = "LEFT SEMI JOIN"
	JoinLeftAnti JoinKind = "LEFT ANTI JOIN"
)

// Join attaches one relation to the chain. At most one of On, Using and
// Natural is set; CROSS JOIN takes none.
type Join struct {
	Relation TableFactor
	Kind     JoinKind
	On       Expr
	Using    []Ident
	Natural  bool
}

func (j Join) String() string {
	var b strings.Builder
	b.WriteString(" ")
	if j.Natural {
		b.WriteString("NATURAL ")
	}
	b.WriteString(string(j.Kind))
	b.WriteString(" ")
	b.WriteString(j.Relation.String())
	switch {
	case j.On != nil:
		b.WriteString(" ON ")
		b.WriteString(j.On.String())
	case len(j.Using) > 0:
		b.WriteString(" USING(")
		b.WriteString(identList(j.Using))
		b.WriteString(")")
	}
	return b.String()
}

// TableAlias is an AS alias with optional column renames.
type TableAlias struct {
	Name    Ident
	Columns []Ident
}

func (a TableAlias) String() string {
	s := a.Name.String()
	if len(a.Columns) > 0 {
		s += " (" + identList(a.Columns) + ")"
	}
	return s
}

// TableVersion is a temporal FOR SYSTEM_TIME AS OF qualifier.
type TableVersion struct {
	Expr Expr
}

func (v TableVersion) String() string { return "FOR SYSTEM_TIME AS OF " + v.Expr.String() }

// IndexHintType is the action of a MySQL index hint.
type IndexHintType string

const (
	IndexHintUse    IndexHintType = "USE"
	IndexHintIgnore IndexHintType = "IGNORE"
	IndexHintForce  IndexHintType = "FORCE"
)

// TableIndexHint is a MySQL USE/IGNORE/FORCE INDEX hint.
type TableIndexHint struct {
	Type    IndexHintType
	Indexes []Ident
}

func (h TableIndexHint) String() string {
	return string(h.Type) + " INDEX (" + identList(h.Indexes) + ")"
}

// Table is a named relation, optionally a table function when Args is
// non-nil.
type Table struct {
	Name           ObjectName
	Alias          *TableAlias
	Args           []FunctionArg // nil means not a table function
	WithHints      []Expr
	Version        *TableVersion
	Partitions     []Ident
	WithOrdinality bool
	IndexHints     []TableIndexHint
}

func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(t.Name.String())
	if t.Args != nil {
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		b.WriteString("(")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}
	if len(t.Partitions) > 0 {
		b.WriteString(" PARTITION (")
		b.WriteString(identList(t.Partitions))
		b.WriteString(")")
	}
	if t.WithOrdinality {
		b.WriteString(" WITH ORDINALITY")
	}
	if t.Alias != nil {
		b.WriteString(" AS ")
		b.WriteString(t.Alias.String())
	}
	if t.Version != nil {
		b.WriteString(" ")
		b.WriteString(t.Version.String())
	}
	if len(t.WithHints) > 0 {
		b.WriteString(" WITH (")
		b.WriteString(exprList(t.WithHints))
		b.WriteString(")")
	}
	for _, h := range t.IndexHints {
		b.WriteString(" ")
		b.WriteString(h.String())
	}
	return b.String()
}

// Derived is a parenthesized subquery relation.
type Derived struct {
	Lateral  bool
	Subquery *Query
	Alias    *TableAlias
}

func (d *Derived) String() string {
	var b strings.Builder
	if d.Lateral {
		b.WriteString("LATERAL ")
	}
	b.WriteString("(")
	b.WriteString(d.Subquery.String())
	b.WriteString(")")
	if d.Alias != nil {
		b.WriteString(" AS ")
		b.WriteString(d.Alias.String())
	}
	return b.String()
}

// Unnest is an UNNEST(...) relation.
type Unnest struct {
	Alias           *TableAlias
	ArrayExprs      []Expr
	WithOffset      bool
	WithOffsetAlias *Ident
	WithOrdinality  bool
}

func (u *Unnest) String() string {
	var b strings.Builder
	b.WriteString("UNNEST(")
	b.WriteString(exprList(u.ArrayExprs))
	b.WriteString(")")
	if u.WithOrdinality {
		b.WriteString(" WITH ORDINALITY")
	}
	if u.Alias != nil {
		b.WriteString(" AS ")
		b.WriteString(u.Alias.String())
	}
	if u.WithOffset {
		b.WriteString(" WITH OFFSET")
		if u.WithOffsetAlias != nil {
			b.WriteString(" AS ")
			b.WriteString(u.WithOffsetAlias.String())
		}
	}
	return b.String()
}

func (*Table) tableFactor()   {}
func (*Derived) tableFactor() {}
func (*Unnest) tableFactor()  {}
