package logical

import "github.com/leapstack-labs/sqlrel/pkg/sqlerr"

// Builder assembles a plan tree by wrapping operators around an input.
// Methods chain; the first error sticks and surfaces from Build.
type Builder struct {
	plan Plan
	err  error
}

// NewBuilder starts a builder from an existing plan.
func NewBuilder(input Plan) *Builder { return &Builder{plan: input} }

// Project wraps the plan in a Projection.
func (b *Builder) Project(exprs ...Expr) *Builder {
	if b.err != nil {
		return b
	}
	b.plan = NewProjection(exprs, b.plan)
	return b
}

// Filter wraps the plan in a Filter.
func (b *Builder) Filter(predicate Expr) *Builder {
	if b.err != nil {
		return b
	}
	b.plan = &Filter{Predicate: predicate, Input: b.plan}
	return b
}

// Sort wraps the plan in a Sort.
func (b *Builder) Sort(sorts ...SortExpr) *Builder {
	if b.err != nil {
		return b
	}
	b.plan = &Sort{SortExprs: sorts, Input: b.plan}
	return b
}

// LimitByExpr wraps the plan in a Limit with unevaluated skip and fetch
// expressions. Either may be nil.
func (b *Builder) LimitByExpr(skip, fetch Expr) *Builder {
	if b.err != nil {
		return b
	}
	b.plan = &Limit{Skip: skip, Fetch: fetch, Input: b.plan}
	return b
}

// Distinct wraps the plan in a Distinct.
func (b *Builder) Distinct() *Builder {
	if b.err != nil {
		return b
	}
	b.plan = &Distinct{Input: b.plan}
	return b
}

// Union combines the plan with another input. Schemas must have matching
// arity.
func (b *Builder) Union(right Plan, kind SetOpKind) *Builder {
	if b.err != nil {
		return b
	}
	if b.plan.Schema().Len() != right.Schema().Len() {
		b.err = sqlerr.Planf("set operation inputs must have the same number of columns: %d vs %d",
			b.plan.Schema().Len(), right.Schema().Len())
		return b
	}
	b.plan = &SetOp{Kind: kind, Left: b.plan, Right: right}
	return b
}

// Alias wraps the plan in a SubqueryAlias.
func (b *Builder) Alias(name string) *Builder {
	if b.err != nil {
		return b
	}
	b.plan = NewSubqueryAlias(b.plan, name)
	return b
}

// Build returns the assembled plan or the first recorded error.
func (b *Builder) Build() (Plan, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.plan == nil {
		return nil, sqlerr.Internalf("plan builder has no input")
	}
	return b.plan, nil
}
