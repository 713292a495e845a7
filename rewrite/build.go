// Package rewrite turns a single completed combined_result directive into
// the recursive CTE statement that replaces it, following the same shape
// described by spec.md section 4.3: an anchor leg over the iteration query's
// first row, a step leg that walks one row at a time, wrapped in a
// RECURSIVE WITH and a final projection restricted to the columns the
// inner query asked for.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/patrickdubios/sqlquerypp/ast"
	"github.com/patrickdubios/sqlquerypp/directive"
	"github.com/patrickdubios/sqlquerypp/format"
	"github.com/patrickdubios/sqlquerypp/parser"
	"github.com/patrickdubios/sqlquerypp/sqlquerypperr"
	"github.com/patrickdubios/sqlquerypp/token"
)

const loopValuesName = "loop_values"
const allEntriesName = "all_entries"
const indexColumn = "n"

// Build compiles a single completed directive into the recursive CTE
// statement that takes its place in the emitted output.
func Build(d directive.Complete) (ast.Statement, error) {
	iterationStmt, err := parseInner(d.IterationQuery)
	if err != nil {
		return nil, err
	}
	iterationTable := singleTableName(iterationStmt.From)
	if iterationTable == "" {
		return nil, &sqlquerypperr.InnerQueryInvalid{
			Message: "iteration query must select from exactly one table",
		}
	}

	innerStmt, err := parseInner(d.InnerQuery)
	if err != nil {
		return nil, err
	}
	if baseTableName(innerStmt.From) == "" {
		return nil, &sqlquerypperr.InnerQueryInvalid{
			Message: "inner query must select from exactly one base table",
		}
	}
	qualifier, column, ok := findIterationEquality(innerStmt.Where, d.IterationVar)
	if !ok {
		return nil, &sqlquerypperr.InnerQueryInvalid{
			Message: fmt.Sprintf("inner query WHERE clause must equate a column to %s", d.IterationVar),
		}
	}

	cols, fullCols := deriveColumns(innerStmt.Columns)

	anchor, err := buildAnchor(d)
	if err != nil {
		return nil, err
	}
	step, err := buildStep(d, iterationTable, qualifier, column)
	if err != nil {
		return nil, err
	}

	loopValuesCTE := &ast.CTE{Name: loopValuesName, Query: iterationStmt}

	allEntriesCTE := &ast.CTE{
		Name:    allEntriesName,
		Columns: append([]string{indexColumn}, cols...),
		Query: &ast.SetOp{
			With: &ast.WithClause{CTEs: []*ast.CTE{loopValuesCTE}},
			Type: ast.Union,
			All:  true,
			Left: anchor,
			Right: step,
		},
	}

	outer := &ast.SelectStmt{
		With:    &ast.WithClause{Recursive: true, CTEs: []*ast.CTE{allEntriesCTE}},
		Columns: identifierColumns(cols),
		From:    &ast.TableName{Parts: []string{allEntriesName}},
		Where:   finalWhere(fullCols, qualifier),
	}
	return outer, nil
}

// finalWhere builds the AND-chain of "column IS NOT NULL" guards
// that filter out the sentinel rows the recursive walk runs past the end of
// loop_values, one per fully-qualified projected column whose qualifier
// isn't the iteration row's own table. A directive with no such column (the
// inner query only ever projected the iteration table's own columns) falls
// back to a bare TRUE so the emitted query never carries an empty WHERE.
func finalWhere(fullCols []qualifiedColumn, ownQualifier string) ast.Expr {
	var guards []ast.Expr
	for _, fc := range fullCols {
		if fc.Qualifier == ownQualifier {
			continue
		}
		guards = append(guards, &ast.IsExpr{
			Expr: &ast.ColName{Parts: []string{fc.Column}},
			Not:  true,
			What: ast.IsNull,
		})
	}
	if len(guards) == 0 {
		return &ast.Literal{Type: ast.LiteralBool, Value: "TRUE"}
	}
	expr := guards[0]
	for _, g := range guards[1:] {
		expr = &ast.BinaryExpr{Op: token.AND, Left: expr, Right: g}
	}
	return expr
}

// substituteVar textually replaces every occurrence of the iteration
// variable in expr's formatted text with a reference to the current loop
// row, then reparses the result as a standalone expression. This mirrors
// how the directive's iteration variable is woven into the anchor's WHERE
// clause: a placeholder identifier, not a bindable parameter.
func substituteVar(expr ast.Expr, iterationVar string) (ast.Expr, error) {
	text := format.String(expr)
	replaced := strings.ReplaceAll(text, iterationVar, "(SELECT * FROM "+loopValuesName+" LIMIT 1)")
	out, err := parser.ParseExpr(replaced)
	if err != nil {
		return nil, &sqlquerypperr.InnerQueryInvalid{Message: err.Error()}
	}
	return out, nil
}
