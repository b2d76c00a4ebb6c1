package planner

import (
	"log/slog"

	"github.com/leapstack-labs/sqlrel/pkg/ast"
	"github.com/leapstack-labs/sqlrel/pkg/logical"
	"github.com/leapstack-labs/sqlrel/pkg/sqlerr"
)

// DefaultMaxSetExprDepth bounds how deeply set-expression bodies may nest.
// Planning is recursive, so pathological inputs (thousands of chained
// UNIONs) would otherwise grow the stack without limit.
const DefaultMaxSetExprDepth = 128

// Planner plans query expressions. A Planner is not safe for concurrent
// use; create one per statement or serialize calls.
type Planner struct {
	provider ContextProvider
	rel      RelationPlanner
	logger   *slog.Logger

	maxSetExprDepth int
	setExprDepth    int
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the planner's logger. Nil restores the default discard
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) { p.logger = logger }
}

// WithMaxSetExprDepth overrides DefaultMaxSetExprDepth.
func WithMaxSetExprDepth(n int) Option {
	return func(p *Planner) { p.maxSetExprDepth = n }
}

// New returns a Planner delegating to rel. provider may be nil when the
// delegate resolves tables itself.
func New(provider ContextProvider, rel RelationPlanner, opts ...Option) (*Planner, error) {
	if rel == nil {
		return nil, sqlerr.Internalf("planner requires a relation planner")
	}
	p := &Planner{
		provider:        provider,
		rel:             rel,
		maxSetExprDepth: DefaultMaxSetExprDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.maxSetExprDepth < 1 {
		return nil, sqlerr.Internalf("set expression depth budget must be positive, got %d", p.maxSetExprDepth)
	}
	return p, nil
}

// Provider returns the catalog provider handed to New, for use by
// delegates.
func (p *Planner) Provider() ContextProvider { return p.provider }

// QueryToPlan plans a full query expression. The outer context is cloned on
// entry, so CTEs registered while planning this query stay local to it. A
// nil outer context is treated as empty.
func (p *Planner) QueryToPlan(query *ast.Query, outer *Context) (logical.Plan, error) {
	if outer == nil {
		outer = NewContext()
	}
	ctx := outer.Clone()

	if query.With != nil {
		if err := p.planWithClause(query.With, ctx); err != nil {
			return nil, err
		}
	}

	if sel, ok := query.Body.(*ast.Select); ok {
		// Detach INTO so the select planner never sees it; it wraps the
		// finished plan below, after the limit.
		into := sel.Into
		core := *sel
		core.Into = nil

		plan, err := p.rel.PlanSelect(&core, query.OrderBy, ctx)
		if err != nil {
			return nil, err
		}
		plan, err = p.limit(plan, query.Limit, ctx)
		if err != nil {
			return nil, err
		}
		return p.selectInto(plan, into)
	}

	plan, err := p.planSetExprBody(query.Body, ctx)
	if err != nil {
		return nil, err
	}

	orderByExprs, err := ToOrderByExprs(query.OrderBy)
	if err != nil {
		return nil, err
	}
	sorts, err := p.rel.PlanSortExprs(orderByExprs, plan.Schema(), ctx)
	if err != nil {
		return nil, err
	}
	plan, err = p.orderBy(plan, sorts)
	if err != nil {
		return nil, err
	}
	return p.limit(plan, query.Limit, ctx)
}

// planSetExprBody delegates a set-expression body inside the recursion
// depth guard. The guard is released on every exit path.
func (p *Planner) planSetExprBody(body ast.SetExpr, ctx *Context) (logical.Plan, error) {
	if p.setExprDepth >= p.maxSetExprDepth {
		return nil, sqlerr.ResourcesExhaustedf("set operations nested deeper than %d", p.maxSetExprDepth)
	}
	p.setExprDepth++
	defer func() { p.setExprDepth-- }()
	return p.rel.PlanSetExpr(body, ctx)
}

// planWithClause plans each CTE in order and registers it into ctx, so
// later CTEs in the same clause can reference earlier ones.
func (p *Planner) planWithClause(with *ast.With, ctx *Context) error {
	if with.Recursive {
		return sqlerr.NotImplementedf("recursive CTEs are not supported")
	}
	for _, cte := range with.CTEs {
		name := normalizeIdent(cte.Alias.Name)
		if ctx.ContainsCTE(name) {
			return sqlerr.Planf("WITH query name %q specified more than once", name)
		}
		plan, err := p.QueryToPlan(cte.Query, ctx)
		if err != nil {
			return err
		}
		plan, err = applyCTEAlias(plan, name, cte.Alias.Columns)
		if err != nil {
			return err
		}
		ctx.RegisterCTE(name, plan)
		p.logger.Debug("registered CTE", "name", name, "columns", plan.Schema().Len())
	}
	return nil
}

// applyCTEAlias renames the CTE's relation and, when the alias lists column
// names, its columns positionally.
func applyCTEAlias(plan logical.Plan, name string, columns []ast.Ident) (logical.Plan, error) {
	if len(columns) > 0 {
		fields := plan.Schema().Fields
		if len(columns) != len(fields) {
			return nil, sqlerr.Planf("CTE %q has %d columns available but %d names given",
				name, len(fields), len(columns))
		}
		exprs := make([]logical.Expr, len(fields))
		for i, f := range fields {
			exprs[i] = &logical.Alias{
				Expr: &logical.Column{Relation: f.Qualifier, Name: f.Name},
				Name: normalizeIdent(columns[i]),
			}
		}
		plan = logical.NewProjection(exprs, plan)
	}
	return logical.NewSubqueryAlias(plan, name), nil
}

// limit wraps plan in a Limit operator. Both limit shapes normalize to a
// skip and a fetch expression, each planned against the empty schema since
// they may not reference columns.
func (p *Planner) limit(input logical.Plan, clause ast.LimitClause, ctx *Context) (logical.Plan, error) {
	if clause == nil {
		return input, nil
	}

	var skipExpr, fetchExpr ast.Expr
	var limitBy []ast.Expr
	switch c := clause.(type) {
	case *ast.LimitOffset:
		if c.Offset != nil {
			skipExpr = c.Offset.Value
		}
		fetchExpr = c.Limit
		limitBy = c.LimitBy
	case *ast.OffsetCommaLimit:
		skipExpr = c.Offset
		fetchExpr = c.Limit
	default:
		return nil, sqlerr.Internalf("unknown limit clause %T", clause)
	}

	empty := logical.EmptySchema()
	var skip, fetch logical.Expr
	var err error
	if skipExpr != nil {
		if skip, err = p.rel.PlanExpr(skipExpr, empty, ctx); err != nil {
			return nil, err
		}
	}
	if fetchExpr != nil {
		if fetch, err = p.rel.PlanExpr(fetchExpr, empty, ctx); err != nil {
			return nil, err
		}
	}

	if len(limitBy) > 0 {
		return nil, sqlerr.NotImplementedf("LIMIT BY clause is not supported yet")
	}
	if skip == nil && fetch == nil {
		return input, nil
	}
	return logical.NewBuilder(input).LimitByExpr(skip, fetch).Build()
}

// orderBy wraps plan in a Sort, except when the plan is a DistinctOn: there
// the ordering selects the surviving row per group and attaches to the
// operator itself.
func (p *Planner) orderBy(plan logical.Plan, sorts []logical.SortExpr) (logical.Plan, error) {
	if len(sorts) == 0 {
		return plan, nil
	}
	p.logger.Debug("applying sort", "keys", len(sorts))
	if d, ok := plan.(*logical.DistinctOn); ok {
		return d.WithSortExpr(sorts)
	}
	return logical.NewBuilder(plan).Sort(sorts...).Build()
}

// selectInto wraps the finished plan in a CreateMemoryTable when the SELECT
// carried an INTO clause.
func (p *Planner) selectInto(plan logical.Plan, into *ast.SelectInto) (logical.Plan, error) {
	if into == nil {
		return plan, nil
	}
	ref, err := objectNameToTableReference(into.Name)
	if err != nil {
		return nil, err
	}
	return &logical.CreateMemoryTable{Name: ref, Input: plan}, nil
}

// objectNameToTableReference resolves a 1-3 part object name.
func objectNameToTableReference(name ast.ObjectName) (logical.TableReference, error) {
	parts := name.Parts
	switch len(parts) {
	case 1:
		return logical.TableReference{
			Table: normalizeIdent(parts[0]),
		}, nil
	case 2:
		return logical.TableReference{
			Schema: normalizeIdent(parts[0]),
			Table:  normalizeIdent(parts[1]),
		}, nil
	case 3:
		return logical.TableReference{
			Catalog: normalizeIdent(parts[0]),
			Schema:  normalizeIdent(parts[1]),
			Table:   normalizeIdent(parts[2]),
		}, nil
	default:
		return logical.TableReference{}, sqlerr.Planf(
			"table reference %q must have between one and three parts", name.String())
	}
}
