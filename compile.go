package sqlquerypp

import (
	"github.com/patrickdubios/sqlquerypp/directive"
	"github.com/patrickdubios/sqlquerypp/emit"
	"github.com/patrickdubios/sqlquerypp/internal/clog"
)

// ScopeRange is the span of a single compiled directive, measured in the
// byte coordinates of the original input statement: Begin is the
// directive's opening brace, End its closing one. Callers that need to
// report a diagnostic pointing at "the combined_result block that produced
// this part of the output" use these ranges rather than trying to recover
// them from the compiled statement.
type ScopeRange struct {
	Begin int
	End   int
}

// CompiledArtifact is the result of compiling a statement: the final SQL
// text with every combined_result directive replaced by its recursive CTE
// equivalent, plus the input-coordinate scope of each directive that was
// found, in the order the scanner encountered them.
type CompiledArtifact struct {
	Statement   string
	ScopeRanges []ScopeRange
}

// Compile scans statement for combined_result directives, rewrites each one
// into a WITH RECURSIVE tree, and substitutes it back into the statement.
// It fails fast on the first error encountered, at whichever stage produced
// it: directive scanning, inner-query parsing, or re-parsing the final
// output.
func Compile(statement string) (CompiledArtifact, error) {
	log := clog.With("op", "compile")

	final, err := directive.Parse(statement)
	if err != nil {
		log.WithError(err).Debug("directive scan failed")
		return CompiledArtifact{}, err
	}
	log.WithField("directives", len(final.Directives)).Debug("directives scanned")

	ranges := make([]ScopeRange, len(final.Directives))
	for i, d := range final.Directives {
		ranges[i] = ScopeRange{Begin: d.ScopeBegin(), End: d.ScopeEnd()}
	}

	out, err := emit.Statement(final)
	if err != nil {
		log.WithError(err).Debug("code emission failed")
		return CompiledArtifact{}, err
	}

	return CompiledArtifact{Statement: out, ScopeRanges: ranges}, nil
}
