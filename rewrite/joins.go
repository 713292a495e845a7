package rewrite

import "github.com/patrickdubios/sqlquerypp/ast"

// promoteJoins walks every JoinExpr reachable from te and turns it into a
// LEFT JOIN, leaving a CROSS JOIN untouched since it carries no constraint
// to weaken. Mirrors the Rust source's transform_all_joins_to_left_joins.
func promoteJoins(te ast.TableExpr) ast.TableExpr {
	j, ok := te.(*ast.JoinExpr)
	if !ok {
		return te
	}
	j.Left = promoteJoins(j.Left)
	j.Right = promoteJoins(j.Right)
	if j.Type != ast.JoinCross {
		j.Type = ast.JoinLeft
	}
	return j
}

// rewriteBase walks down the left spine of a join tree — where the single
// original FROM-clause base table always sits, since parseTableExpr builds
// the tree left-associatively — and applies fn to that base leaf. Works
// correctly no matter how many joins have since been stacked above it.
func rewriteBase(te ast.TableExpr, fn func(ast.TableExpr) ast.TableExpr) ast.TableExpr {
	if j, ok := te.(*ast.JoinExpr); ok {
		j.Left = rewriteBase(j.Left, fn)
		return j
	}
	return fn(te)
}

// baseTableName returns the bare table name sitting at the bottom of te's
// left spine, unwrapping a single optional alias, or "" if the base isn't a
// plain table reference.
func baseTableName(te ast.TableExpr) string {
	if j, ok := te.(*ast.JoinExpr); ok {
		return baseTableName(j.Left)
	}
	switch t := te.(type) {
	case *ast.TableName:
		return t.Name()
	case *ast.AliasedTableExpr:
		if tn, ok := t.Expr.(*ast.TableName); ok {
			return tn.Name()
		}
	}
	return ""
}
