package rewrite

import "github.com/patrickdubios/sqlquerypp/ast"

// qualifiedColumn is one (qualifier, column) pair derived from a
// two-part compound identifier projection, e.g. "a.col_a1" -> {"a", "col_a1"}.
type qualifiedColumn struct {
	Qualifier string
	Column    string
}

// deriveColumns walks the inner query's projection list and returns:
//   - cols: the trailing identifier of every identifier projection, in
//     order (non-identifier projections, such as function calls or *, are
//     dropped)
//   - full: the subset of projections that are two-part compound
//     identifiers, as (qualifier, column) pairs
func deriveColumns(items []ast.SelectExpr) (cols []string, full []qualifiedColumn) {
	for _, item := range items {
		ae, ok := item.(*ast.AliasedExpr)
		if !ok {
			continue
		}
		col, ok := ae.Expr.(*ast.ColName)
		if !ok || len(col.Parts) == 0 {
			continue
		}
		cols = append(cols, col.Parts[len(col.Parts)-1])
		if len(col.Parts) == 2 {
			full = append(full, qualifiedColumn{Qualifier: col.Parts[0], Column: col.Parts[1]})
		}
	}
	return cols, full
}

// identifierColumns builds a plain, unqualified SELECT projection list from
// a list of column names, in the order given.
func identifierColumns(cols []string) []ast.SelectExpr {
	items := make([]ast.SelectExpr, len(cols))
	for i, c := range cols {
		items[i] = &ast.AliasedExpr{Expr: &ast.ColName{Parts: []string{c}}}
	}
	return items
}
