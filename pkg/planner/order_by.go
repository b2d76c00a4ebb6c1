package planner

import (
	"github.com/leapstack-labs/sqlrel/pkg/ast"
	"github.com/leapstack-labs/sqlrel/pkg/logical"
	"github.com/leapstack-labs/sqlrel/pkg/sqlerr"
)

// ToOrderByExprs expands an ORDER BY clause into its expression list.
// ORDER BY ALL cannot be expanded without the select list; use
// ToOrderByExprsWithSelect for that.
func ToOrderByExprs(orderBy *ast.OrderBy) ([]ast.OrderByExpr, error) {
	return ToOrderByExprsWithSelect(orderBy, nil)
}

// ToOrderByExprsWithSelect expands an ORDER BY clause into its expression
// list. selectExprs, when non-nil, is the planned select list used to
// expand ORDER BY ALL: every output must be a plain column, and each
// becomes one sort key carrying the shared options.
func ToOrderByExprsWithSelect(orderBy *ast.OrderBy, selectExprs []logical.Expr) ([]ast.OrderByExpr, error) {
	if orderBy == nil {
		return nil, nil
	}
	if orderBy.Interpolate != nil {
		return nil, sqlerr.NotImplementedf("ORDER BY INTERPOLATE is not supported")
	}

	switch kind := orderBy.Kind.(type) {
	case *ast.OrderByAll:
		if selectExprs == nil {
			return nil, nil
		}
		exprs := make([]ast.OrderByExpr, 0, len(selectExprs))
		for _, se := range selectExprs {
			col, ok := se.(*logical.Column)
			if !ok {
				return nil, sqlerr.NotImplementedf("ORDER BY ALL is not supported for non-column expressions")
			}
			exprs = append(exprs, ast.OrderByExpr{
				Expr:    ast.NewIdentifier(col.Name),
				Options: kind.Options,
			})
		}
		return exprs, nil
	case *ast.OrderByExprList:
		return kind.Exprs, nil
	default:
		return nil, sqlerr.Internalf("unknown ORDER BY kind %T", orderBy.Kind)
	}
}
