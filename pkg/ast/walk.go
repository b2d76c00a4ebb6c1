package ast

import "reflect"

// RewriteExprs rewrites the expression tree rooted at e. fn is applied to
// each node before its children, and descent continues into whatever fn
// returned, so a replacement subtree is itself rewritten.
func RewriteExprs(e Expr, fn func(Expr) Expr) Expr {
	if e == nil {
		return nil
	}
	e = fn(e)
	switch n := e.(type) {
	case *BinaryExpr:
		n.Left = RewriteExprs(n.Left, fn)
		n.Right = RewriteExprs(n.Right, fn)
	case *UnaryExpr:
		n.Expr = RewriteExprs(n.Expr, fn)
	case *Nested:
		n.Expr = RewriteExprs(n.Expr, fn)
	case *FunctionCall:
		for i := range n.Args {
			n.Args[i].Expr = RewriteExprs(n.Args[i].Expr, fn)
		}
	}
	return e
}

// ExprEqual reports whether two expressions are structurally identical.
// Expression nodes carry no source positions, so deep equality over the
// exported fields is exact.
func ExprEqual(a, b Expr) bool {
	return reflect.DeepEqual(a, b)
}
