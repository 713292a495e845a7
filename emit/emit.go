// Package emit performs the code-emission pass: it replaces every completed
// combined_result directive in the original statement text with its
// compiled recursive CTE, then reparses and pretty-prints the result.
package emit

import (
	"sort"
	"strings"

	"github.com/patrickdubios/sqlquerypp/directive"
	"github.com/patrickdubios/sqlquerypp/format"
	"github.com/patrickdubios/sqlquerypp/parser"
	"github.com/patrickdubios/sqlquerypp/rewrite"
	"github.com/patrickdubios/sqlquerypp/sqlquerypperr"
)

// Statement rewrites every directive in final.Statement and returns the
// final, pretty-printed output. Directives are processed in descending
// order of their end offset, so a substitution never shifts the offsets of
// a directive still waiting to be processed. Substitution is a literal,
// whole-statement string replace of the directive's exact source span,
// which means two byte-identical directive spans collapse into the same
// replacement — an accepted quirk inherited from how the original
// implementation performs this step, not something this package corrects.
func Statement(final *directive.Final) (string, error) {
	ordered := make([]directive.Complete, len(final.Directives))
	copy(ordered, final.Directives)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].EndOffset > ordered[j].EndOffset
	})

	statement := final.Statement
	for _, d := range ordered {
		replacement, err := rewrite.Build(d)
		if err != nil {
			return "", err
		}
		original := statement[d.BeginOffset : d.EndOffset+1]
		generated := format.String(replacement)
		statement = strings.ReplaceAll(statement, original, "("+generated+")")
	}

	if strings.TrimSpace(statement) == "" {
		return "", nil
	}
	stmt, err := parser.ParseQuery(statement)
	if err != nil {
		return "", &sqlquerypperr.ResultingQueryInvalid{
			Statement:     statement,
			ParserMessage: err.Error(),
		}
	}
	return format.String(stmt), nil
}
