package logical

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlrel/pkg/sqlerr"
)

// Plan is one operator of the logical plan tree.
type Plan interface {
	// Schema is the operator's output schema.
	Schema() *Schema
	// Children returns the input plans, outermost first.
	Children() []Plan
	// String is the one-line operator description used by FormatTree.
	String() string
	logicalPlan()
}

// EmptyRelation produces zero rows, or a single empty row when
// ProduceOneRow is set.
type EmptyRelation struct {
	ProduceOneRow bool
	Sch           *Schema
}

func (p *EmptyRelation) Schema() *Schema {
	if p.Sch == nil {
		return EmptySchema()
	}
	return p.Sch
}
func (p *EmptyRelation) Children() []Plan { return nil }
func (p *EmptyRelation) String() string   { return "EmptyRelation" }

// TableScan reads a base table.
type TableScan struct {
	Table TableReference
	Sch   *Schema
}

func (p *TableScan) Schema() *Schema  { return p.Sch }
func (p *TableScan) Children() []Plan { return nil }
func (p *TableScan) String() string   { return "TableScan: " + p.Table.String() }

// Values produces inline literal rows.
type Values struct {
	Rows [][]Expr
	Sch  *Schema
}

func (p *Values) Schema() *Schema  { return p.Sch }
func (p *Values) Children() []Plan { return nil }
func (p *Values) String() string {
	rows := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = "(" + exprStrings(r) + ")"
	}
	return "Values: " + strings.Join(rows, ", ")
}

// Projection evaluates expressions over its input.
type Projection struct {
	Exprs []Expr
	Input Plan
	sch   *Schema
}

// NewProjection derives the output schema from the expressions: plain
// column references keep their qualifier, everything else is named by its
// output name.
func NewProjection(exprs []Expr, input Plan) *Projection {
	return &Projection{Exprs: exprs, Input: input, sch: schemaFor(exprs)}
}

func schemaFor(exprs []Expr) *Schema {
	fields := make([]Field, len(exprs))
	for i, e := range exprs {
		if col, ok := e.(*Column); ok {
			fields[i] = Field{Qualifier: col.Relation, Name: col.Name}
			continue
		}
		fields[i] = Field{Name: OutputName(e)}
	}
	return &Schema{Fields: fields}
}

func (p *Projection) Schema() *Schema  { return p.sch }
func (p *Projection) Children() []Plan { return []Plan{p.Input} }
func (p *Projection) String() string   { return "Projection: " + exprStrings(p.Exprs) }

// Filter keeps input rows satisfying the predicate.
type Filter struct {
	Predicate Expr
	Input     Plan
}

func (p *Filter) Schema() *Schema  { return p.Input.Schema() }
func (p *Filter) Children() []Plan { return []Plan{p.Input} }
func (p *Filter) String() string   { return "Filter: " + p.Predicate.String() }

// Sort orders its input by the sort keys.
type Sort struct {
	SortExprs []SortExpr
	Input     Plan
}

func (p *Sort) Schema() *Schema  { return p.Input.Schema() }
func (p *Sort) Children() []Plan { return []Plan{p.Input} }
func (p *Sort) String() string   { return "Sort: " + sortExprList(p.SortExprs) }

// Limit skips then fetches a bounded number of rows. Either expression may
// be nil.
type Limit struct {
	Skip  Expr
	Fetch Expr
	Input Plan
}

func (p *Limit) Schema() *Schema  { return p.Input.Schema() }
func (p *Limit) Children() []Plan { return []Plan{p.Input} }
func (p *Limit) String() string {
	skip, fetch := "none", "none"
	if p.Skip != nil {
		skip = p.Skip.String()
	}
	if p.Fetch != nil {
		fetch = p.Fetch.String()
	}
	return fmt.Sprintf("Limit: skip=%s, fetch=%s", skip, fetch)
}

// Distinct removes duplicate rows.
type Distinct struct {
	Input Plan
}

func (p *Distinct) Schema() *Schema  { return p.Input.Schema() }
func (p *Distinct) Children() []Plan { return []Plan{p.Input} }
func (p *Distinct) String() string   { return "Distinct" }

// DistinctOn keeps the first row per distinct value of the ON expressions,
// selected according to SortExprs when present.
type DistinctOn struct {
	OnExpr     []Expr
	SelectExpr []Expr
	SortExprs  []SortExpr
	Input      Plan
	sch        *Schema
}

// NewDistinctOn derives the output schema from the select expressions.
func NewDistinctOn(onExpr, selectExpr []Expr, input Plan) *DistinctOn {
	return &DistinctOn{
		OnExpr:     onExpr,
		SelectExpr: selectExpr,
		Input:      input,
		sch:        schemaFor(selectExpr),
	}
}

// WithSortExpr attaches the ordering that picks the surviving row per
// group. The leading sort keys must match the ON expressions or the
// combination is ambiguous.
func (p *DistinctOn) WithSortExpr(sorts []SortExpr) (*DistinctOn, error) {
	matched := true
	for i, on := range p.OnExpr {
		if i >= len(sorts) {
			break
		}
		if !ExprEqual(sorts[i].Expr, on) {
			matched = false
			break
		}
	}
	if len(p.OnExpr) > len(sorts) || !matched {
		return nil, sqlerr.Planf("SELECT DISTINCT ON expressions must match initial ORDER BY expressions")
	}
	out := *p
	out.SortExprs = sorts
	return &out, nil
}

func (p *DistinctOn) Schema() *Schema  { return p.sch }
func (p *DistinctOn) Children() []Plan { return []Plan{p.Input} }
func (p *DistinctOn) String() string {
	s := "DistinctOn: on=" + exprStrings(p.OnExpr) + " select=" + exprStrings(p.SelectExpr)
	if len(p.SortExprs) > 0 {
		s += " sort=" + sortExprList(p.SortExprs)
	}
	return s
}

// SetOpKind is the set operation of a SetOp node.
type SetOpKind string

const (
	UnionDistinct     SetOpKind = "Union"
	UnionAll          SetOpKind = "Union All"
	IntersectDistinct SetOpKind = "Intersect"
	IntersectAll      SetOpKind = "Intersect All"
	ExceptDistinct    SetOpKind = "Except"
	ExceptAll         SetOpKind = "Except All"
)

// SetOp combines two inputs with a set operation. Output schema follows the
// left input.
type SetOp struct {
	Kind  SetOpKind
	Left  Plan
	Right Plan
}

func (p *SetOp) Schema() *Schema  { return p.Left.Schema() }
func (p *SetOp) Children() []Plan { return []Plan{p.Left, p.Right} }
func (p *SetOp) String() string   { return string(p.Kind) }

// SubqueryAlias renames its input relation, requalifying every field.
type SubqueryAlias struct {
	Input Plan
	Alias string
	sch   *Schema
}

// NewSubqueryAlias wraps input under a new relation name.
func NewSubqueryAlias(input Plan, alias string) *SubqueryAlias {
	return &SubqueryAlias{
		Input: input,
		Alias: alias,
		sch:   input.Schema().WithQualifier(alias),
	}
}

func (p *SubqueryAlias) Schema() *Schema  { return p.sch }
func (p *SubqueryAlias) Children() []Plan { return []Plan{p.Input} }
func (p *SubqueryAlias) String() string   { return "SubqueryAlias: " + p.Alias }

func (*EmptyRelation) logicalPlan()     {}
func (*TableScan) logicalPlan()         {}
func (*Values) logicalPlan()            {}
func (*Projection) logicalPlan()        {}
func (*Filter) logicalPlan()            {}
func (*Sort) logicalPlan()              {}
func (*Limit) logicalPlan()             {}
func (*Distinct) logicalPlan()          {}
func (*DistinctOn) logicalPlan()        {}
func (*SetOp) logicalPlan()             {}
func (*SubqueryAlias) logicalPlan()     {}
func (*CreateMemoryTable) logicalPlan() {}
