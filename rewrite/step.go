package rewrite

import (
	"github.com/patrickdubios/sqlquerypp/ast"
	"github.com/patrickdubios/sqlquerypp/directive"
	"github.com/patrickdubios/sqlquerypp/parser"
	"github.com/patrickdubios/sqlquerypp/sqlquerypperr"
	"github.com/patrickdubios/sqlquerypp/token"
)

// buildStep constructs the recursive leg of the CTE: the inner query
// re-parsed fresh, with "n + 1" prepended as the running index column, its
// base table renamed to all_entries (the recursive reference), every
// existing join weakened to LEFT, a new LEFT JOIN spliced in directly
// against the renamed base to pull the next row of loop_values, and WHERE
// replaced with the recursion's termination condition.
//
// qualifier/column identify the iteration query's join key as found by
// findIterationEquality in the inner query's WHERE clause — the same
// qualifier the directive's variable was equated against, which the new
// join's alias must reuse so the inner query's other references to it keep
// resolving.
func buildStep(d directive.Complete, iterationTable, qualifier, column string) (*ast.SelectStmt, error) {
	sel, err := parseInner(d.InnerQuery)
	if err != nil {
		return nil, err
	}

	indexExpr := &ast.AliasedExpr{Expr: &ast.BinaryExpr{
		Op:    token.PLUS,
		Left:  &ast.ColName{Parts: []string{indexColumn}},
		Right: &ast.Literal{Type: ast.LiteralInt, Value: "1"},
	}}
	sel.Columns = append([]ast.SelectExpr{indexExpr}, sel.Columns...)

	sel.From = rewriteBase(sel.From, func(ast.TableExpr) ast.TableExpr {
		return &ast.TableName{Parts: []string{allEntriesName}}
	})
	sel.From = promoteJoins(sel.From)

	newRelation, err := parser.ParseTableFactor(iterationTable + " AS " + qualifier)
	if err != nil {
		return nil, &sqlquerypperr.InnerQueryInvalid{Message: err.Error()}
	}
	onExpr := &ast.BinaryExpr{
		Op:   token.EQ,
		Left: &ast.ColName{Parts: []string{qualifier, column}},
		Right: &ast.Subquery{Select: &ast.SelectStmt{
			Columns: []ast.SelectExpr{&ast.AliasedExpr{Expr: &ast.ColName{Parts: []string{column}}}},
			From:    &ast.TableName{Parts: []string{loopValuesName}},
			Where: &ast.BinaryExpr{
				Op:    token.GT,
				Left:  &ast.ColName{Parts: []string{column}},
				Right: &ast.ColName{Parts: []string{allEntriesName, column}},
			},
			Limit: &ast.Limit{Count: &ast.Literal{Type: ast.LiteralInt, Value: "1"}},
		}},
	}
	sel.From = rewriteBase(sel.From, func(base ast.TableExpr) ast.TableExpr {
		return &ast.JoinExpr{Type: ast.JoinLeft, Left: base, Right: newRelation, On: onExpr}
	})

	sel.Where = &ast.BinaryExpr{
		Op: token.LT,
		Left: &ast.BinaryExpr{
			Op:    token.PLUS,
			Left:  &ast.ColName{Parts: []string{indexColumn}},
			Right: &ast.Literal{Type: ast.LiteralInt, Value: "1"},
		},
		Right: &ast.Subquery{Select: &ast.SelectStmt{
			Columns: []ast.SelectExpr{&ast.AliasedExpr{Expr: &ast.FuncExpr{
				Name: "COUNT",
				Args: []ast.Expr{&ast.StarExpr{}},
			}}},
			From: &ast.TableName{Parts: []string{loopValuesName}},
		}},
	}

	return sel, nil
}
