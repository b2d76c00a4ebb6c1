package planner

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlrel/internal/testutil"
	"github.com/leapstack-labs/sqlrel/pkg/ast"
	"github.com/leapstack-labs/sqlrel/pkg/logical"
	"github.com/leapstack-labs/sqlrel/pkg/sqlerr"
)

// testCatalog resolves table names from a fixed map.
type testCatalog struct {
	tables map[string]*logical.Schema
}

func (c *testCatalog) GetTable(ref logical.TableReference) (*logical.Schema, error) {
	sch, ok := c.tables[ref.Table]
	if !ok {
		return nil, sqlerr.Planf("table %q not found", ref.String())
	}
	return sch, nil
}

// testRelationPlanner is a deliberately small select planner: single-table
// FROM clauses, column and literal expressions, DISTINCT [ON]. Enough to
// drive every query-level code path.
type testRelationPlanner struct {
	planner  *Planner
	provider ContextProvider
	sawInto  []*ast.SelectInto
}

func (r *testRelationPlanner) PlanSelect(sel *ast.Select, orderBy *ast.OrderBy, ctx *Context) (logical.Plan, error) {
	r.sawInto = append(r.sawInto, sel.Into)

	plan, err := r.planFrom(sel.From, ctx)
	if err != nil {
		return nil, err
	}
	if sel.Selection != nil {
		pred, err := r.PlanExpr(sel.Selection, plan.Schema(), ctx)
		if err != nil {
			return nil, err
		}
		plan = &logical.Filter{Predicate: pred, Input: plan}
	}
	inputSchema := plan.Schema()

	selectExprs, err := r.planProjection(sel.Projection, inputSchema, ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case sel.Distinct != nil && len(sel.Distinct.On) > 0:
		onExprs := make([]logical.Expr, len(sel.Distinct.On))
		for i, e := range sel.Distinct.On {
			if onExprs[i], err = r.PlanExpr(e, inputSchema, ctx); err != nil {
				return nil, err
			}
		}
		plan = logical.NewDistinctOn(onExprs, selectExprs, plan)
	case sel.Distinct != nil:
		plan = &logical.Distinct{Input: logical.NewProjection(selectExprs, plan)}
	default:
		plan = logical.NewProjection(selectExprs, plan)
	}

	sortExprs, err := ToOrderByExprsWithSelect(orderBy, selectExprs)
	if err != nil {
		return nil, err
	}
	sorts, err := r.PlanSortExprs(sortExprs, inputSchema, ctx)
	if err != nil {
		return nil, err
	}
	return r.planner.orderBy(plan, sorts)
}

func (r *testRelationPlanner) planFrom(from []ast.TableWithJoins, ctx *Context) (logical.Plan, error) {
	if len(from) == 0 {
		return &logical.EmptyRelation{ProduceOneRow: true}, nil
	}
	if len(from) != 1 || len(from[0].Joins) != 0 {
		return nil, sqlerr.NotImplementedf("test planner supports only single-relation FROM clauses")
	}
	table, ok := from[0].Relation.(*ast.Table)
	if !ok {
		return nil, sqlerr.NotImplementedf("test planner supports only plain table relations")
	}
	ref, err := objectNameToTableReference(table.Name)
	if err != nil {
		return nil, err
	}
	if len(table.Name.Parts) == 1 {
		if plan, ok := ctx.CTE(ref.Table); ok {
			return plan, nil
		}
	}
	sch, err := r.provider.GetTable(ref)
	if err != nil {
		return nil, err
	}
	return &logical.TableScan{Table: ref, Sch: sch}, nil
}

func (r *testRelationPlanner) planProjection(items []ast.SelectItem, schema *logical.Schema, ctx *Context) ([]logical.Expr, error) {
	var out []logical.Expr
	for _, item := range items {
		switch it := item.(type) {
		case *ast.UnnamedExpr:
			e, err := r.PlanExpr(it.Expr, schema, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		case *ast.ExprWithAlias:
			e, err := r.PlanExpr(it.Expr, schema, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, &logical.Alias{Expr: e, Name: normalizeIdent(it.Alias)})
		case *ast.Wildcard:
			for _, f := range schema.Fields {
				out = append(out, &logical.Column{Relation: f.Qualifier, Name: f.Name})
			}
		default:
			return nil, sqlerr.NotImplementedf("test planner cannot project %T", item)
		}
	}
	return out, nil
}

func (r *testRelationPlanner) PlanSetExpr(body ast.SetExpr, ctx *Context) (logical.Plan, error) {
	switch b := body.(type) {
	case *ast.Select:
		return r.PlanSelect(b, nil, ctx)
	case *ast.Query:
		return r.planner.QueryToPlan(b, ctx)
	case *ast.SetOperation:
		left, err := r.PlanSetExpr(b.Left, ctx)
		if err != nil {
			return nil, err
		}
		right, err := r.PlanSetExpr(b.Right, ctx)
		if err != nil {
			return nil, err
		}
		return logical.NewBuilder(left).Union(right, setOpKind(b)).Build()
	case *ast.Values:
		return r.planValues(b, ctx)
	default:
		return nil, sqlerr.Internalf("unknown set expression %T", body)
	}
}

func setOpKind(op *ast.SetOperation) logical.SetOpKind {
	all := op.Quantifier == ast.SetQuantifierAll
	switch op.Op {
	case ast.Intersect:
		if all {
			return logical.IntersectAll
		}
		return logical.IntersectDistinct
	case ast.Except:
		if all {
			return logical.ExceptAll
		}
		return logical.ExceptDistinct
	default:
		if all {
			return logical.UnionAll
		}
		return logical.UnionDistinct
	}
}

func (r *testRelationPlanner) planValues(v *ast.Values, ctx *Context) (logical.Plan, error) {
	empty := logical.EmptySchema()
	rows := make([][]logical.Expr, len(v.Rows))
	width := 0
	for i, row := range v.Rows {
		rows[i] = make([]logical.Expr, len(row))
		for j, e := range row {
			var err error
			if rows[i][j], err = r.PlanExpr(e, empty, ctx); err != nil {
				return nil, err
			}
		}
		width = len(row)
	}
	names := make([]string, width)
	for i := range names {
		names[i] = "column" + strconv.Itoa(i+1)
	}
	return &logical.Values{Rows: rows, Sch: logical.NewSchema(names...)}, nil
}

func (r *testRelationPlanner) PlanExpr(e ast.Expr, schema *logical.Schema, ctx *Context) (logical.Expr, error) {
	switch v := e.(type) {
	case *ast.Literal:
		return &logical.Literal{Value: v.String()}, nil
	case *ast.Identifier:
		name := normalizeIdent(v.Ident)
		for _, f := range schema.Fields {
			if f.Name == name {
				return &logical.Column{Relation: f.Qualifier, Name: f.Name}, nil
			}
		}
		return nil, sqlerr.Planf("column %q not found in schema %s", name, schema)
	case *ast.BinaryExpr:
		left, err := r.PlanExpr(v.Left, schema, ctx)
		if err != nil {
			return nil, err
		}
		right, err := r.PlanExpr(v.Right, schema, ctx)
		if err != nil {
			return nil, err
		}
		return &logical.BinaryExpr{Left: left, Op: string(v.Op), Right: right}, nil
	case *ast.FunctionCall:
		args := make([]logical.Expr, 0, len(v.Args))
		for _, a := range v.Args {
			pe, err := r.PlanExpr(a.Expr, schema, ctx)
			if err != nil {
				return nil, err
			}
			args = append(args, pe)
		}
		return &logical.Function{Name: v.Name.String(), Args: args}, nil
	case *ast.Nested:
		return r.PlanExpr(v.Expr, schema, ctx)
	default:
		return nil, sqlerr.NotImplementedf("test planner cannot plan %T", e)
	}
}

func (r *testRelationPlanner) PlanSortExprs(exprs []ast.OrderByExpr, schema *logical.Schema, ctx *Context) ([]logical.SortExpr, error) {
	sorts := make([]logical.SortExpr, 0, len(exprs))
	for _, ob := range exprs {
		e, err := r.PlanExpr(ob.Expr, schema, ctx)
		if err != nil {
			return nil, err
		}
		asc := true
		if ob.Options.Asc != nil {
			asc = *ob.Options.Asc
		}
		nullsFirst := !asc
		if ob.Options.NullsFirst != nil {
			nullsFirst = *ob.Options.NullsFirst
		}
		sorts = append(sorts, logical.SortExpr{Expr: e, Asc: asc, NullsFirst: nullsFirst})
	}
	return sorts, nil
}

// newTestPlanner wires a planner to the test delegate over a two-table
// catalog.
func newTestPlanner(t *testing.T, opts ...Option) (*Planner, *testRelationPlanner) {
	t.Helper()
	catalog := &testCatalog{tables: map[string]*logical.Schema{
		"t": logical.NewSchema("a", "b").WithQualifier("t"),
		"u": logical.NewSchema("a", "b").WithQualifier("u"),
	}}
	rel := &testRelationPlanner{provider: catalog}
	opts = append(opts, WithLogger(testutil.NewTestLogger(t)))
	p, err := New(catalog, rel, opts...)
	require.NoError(t, err)
	rel.planner = p
	return p, rel
}

func selectCols(table string, cols ...string) *ast.Select {
	items := make([]ast.SelectItem, len(cols))
	for i, c := range cols {
		items[i] = &ast.UnnamedExpr{Expr: ast.NewIdentifier(c)}
	}
	return &ast.Select{
		Projection: items,
		From: []ast.TableWithJoins{
			{Relation: &ast.Table{Name: ast.NewObjectName(table)}},
		},
	}
}

func orderByCols(cols ...string) *ast.OrderBy {
	exprs := make([]ast.OrderByExpr, len(cols))
	for i, c := range cols {
		exprs[i] = ast.OrderByExpr{Expr: ast.NewIdentifier(c)}
	}
	return &ast.OrderBy{Kind: &ast.OrderByExprList{Exprs: exprs}}
}
