package rewrite

import (
	"github.com/patrickdubios/sqlquerypp/ast"
	"github.com/patrickdubios/sqlquerypp/directive"
)

// buildAnchor constructs the anchor leg of the recursive CTE: the inner
// query re-parsed fresh, with a literal 0 prepended as the running index
// column, every join weakened to LEFT, and the iteration variable in WHERE
// replaced with a reference to the first row of loop_values.
func buildAnchor(d directive.Complete) (*ast.SelectStmt, error) {
	sel, err := parseInner(d.InnerQuery)
	if err != nil {
		return nil, err
	}
	indexExpr := &ast.AliasedExpr{Expr: &ast.Literal{Type: ast.LiteralInt, Value: "0"}}
	sel.Columns = append([]ast.SelectExpr{indexExpr}, sel.Columns...)
	sel.From = promoteJoins(sel.From)
	if sel.Where != nil {
		where, err := substituteVar(sel.Where, d.IterationVar)
		if err != nil {
			return nil, err
		}
		sel.Where = where
	}
	return sel, nil
}
