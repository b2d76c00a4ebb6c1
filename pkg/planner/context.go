// Package planner turns query syntax trees into logical plans. It owns the
// query-level clauses (WITH, ORDER BY, limits, SELECT INTO) and delegates
// SELECT-core and scalar-expression planning to a RelationPlanner supplied
// by the caller.
package planner

import (
	"strings"

	"github.com/leapstack-labs/sqlrel/pkg/ast"
	"github.com/leapstack-labs/sqlrel/pkg/logical"
)

// Context carries the common table expressions visible while planning one
// query. Each query level works on its own clone, so names registered
// inside a subquery never leak into the enclosing scope.
type Context struct {
	ctes map[string]logical.Plan
}

// NewContext returns an empty planning context.
func NewContext() *Context {
	return &Context{ctes: make(map[string]logical.Plan)}
}

// Clone returns an independent copy of the context.
func (c *Context) Clone() *Context {
	out := NewContext()
	for name, plan := range c.ctes {
		out.ctes[name] = plan
	}
	return out
}

// RegisterCTE makes plan visible under name for the rest of this scope.
func (c *Context) RegisterCTE(name string, plan logical.Plan) {
	c.ctes[name] = plan
}

// CTE looks up a registered plan by normalized name.
func (c *Context) CTE(name string) (logical.Plan, bool) {
	plan, ok := c.ctes[name]
	return plan, ok
}

// ContainsCTE reports whether name is already registered.
func (c *Context) ContainsCTE(name string) bool {
	_, ok := c.ctes[name]
	return ok
}

// ContextProvider resolves catalog objects for the planner and its
// delegates.
type ContextProvider interface {
	// GetTable returns the schema of a base table.
	GetTable(ref logical.TableReference) (*logical.Schema, error)
}

// RelationPlanner is the externally implemented planning capability the
// query planner delegates to: SELECT cores, set-expression bodies and
// scalar expressions.
type RelationPlanner interface {
	// PlanSelect plans one SELECT core. orderBy is the query-level ORDER BY,
	// handed down because sort expressions may reference select aliases.
	PlanSelect(sel *ast.Select, orderBy *ast.OrderBy, ctx *Context) (logical.Plan, error)
	// PlanSetExpr plans a non-SELECT query body.
	PlanSetExpr(body ast.SetExpr, ctx *Context) (logical.Plan, error)
	// PlanExpr resolves one scalar expression against a schema.
	PlanExpr(e ast.Expr, schema *logical.Schema, ctx *Context) (logical.Expr, error)
	// PlanSortExprs resolves ORDER BY keys against the plan's schema.
	PlanSortExprs(exprs []ast.OrderByExpr, schema *logical.Schema, ctx *Context) ([]logical.SortExpr, error)
}

// normalizeIdent maps an identifier to its lookup form: unquoted names fold
// to lower case, quoted names are taken verbatim.
func normalizeIdent(id ast.Ident) string {
	if id.Quote == 0 {
		return strings.ToLower(id.Name)
	}
	return id.Name
}
