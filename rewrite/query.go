package rewrite

import (
	"strings"

	"github.com/patrickdubios/sqlquerypp/ast"
	"github.com/patrickdubios/sqlquerypp/parser"
	"github.com/patrickdubios/sqlquerypp/sqlquerypperr"
	"github.com/patrickdubios/sqlquerypp/token"
)

// parseInner reparses a query fragment (the directive's inner query or
// iteration query) in isolation, wrapping any failure as InnerQueryInvalid.
func parseInner(query string) (*ast.SelectStmt, error) {
	stmt, err := parser.ParseQuery(query)
	if err != nil {
		return nil, &sqlquerypperr.InnerQueryInvalid{Message: err.Error()}
	}
	sel, ok := stmt.(*ast.SelectStmt)
	if !ok {
		return nil, &sqlquerypperr.InnerQueryInvalid{Message: "expected a single SELECT statement"}
	}
	return sel, nil
}

// singleTableName reports the table name of a FROM clause that is, or
// resolves down to, exactly one base table — no joins. Returns "" if the
// FROM clause is anything else (a join, a subquery, a comma list).
func singleTableName(from ast.TableExpr) string {
	switch t := from.(type) {
	case *ast.TableName:
		return t.Name()
	case *ast.AliasedTableExpr:
		if tn, ok := t.Expr.(*ast.TableName); ok {
			return tn.Name()
		}
	}
	return ""
}

// findIterationEquality walks a WHERE expression tree looking for an
// equality comparison between a qualified column and the directive's
// iteration variable: "<qualifier>.<column> = $var". It recurses into both
// operands of every BinaryExpr, correcting the non-terminating
// self-recursion present in the implementation this is grounded on.
func findIterationEquality(expr ast.Expr, iterationVar string) (qualifier, column string, ok bool) {
	if expr == nil {
		return "", "", false
	}
	b, isBinary := expr.(*ast.BinaryExpr)
	if !isBinary {
		return "", "", false
	}
	if b.Op == token.EQ {
		if col, isCol := b.Left.(*ast.ColName); isCol && len(col.Parts) == 2 {
			if p, isParam := b.Right.(*ast.Param); isParam && p.Type == ast.ParamNamedDollar {
				if p.Name == strings.TrimPrefix(iterationVar, "$") {
					return col.Parts[0], col.Parts[1], true
				}
			}
		}
	}
	if q, c, found := findIterationEquality(b.Left, iterationVar); found {
		return q, c, true
	}
	if q, c, found := findIterationEquality(b.Right, iterationVar); found {
		return q, c, true
	}
	return "", "", false
}
