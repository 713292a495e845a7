// Package directive implements the single-pass state machine that locates
// every combined_result directive in a statement and produces a complete,
// offset-annotated record for each one.
package directive

import "github.com/patrickdubios/sqlquerypp/sqlquerypperr"

// InProgress is a directive the scanner has started but not yet closed.
// Every field but BeginOffset is filled in incrementally as the scanner
// observes the directive's tokens; any of them may still be unset when the
// statement ends.
type InProgress struct {
	BeginOffset     int
	EndOffset       *int
	IterationQuery  *string
	IterationVar    *string
	InnerQueryBegin *int
	InnerQuery      *string
}

func newInProgress(beginOffset int) *InProgress {
	return &InProgress{BeginOffset: beginOffset}
}

// Complete is a fully populated directive, the only shape the rewriter ever
// sees. The sole construction path is Finalize, which fails with
// sqlquerypperr.DirectiveIncomplete if any attribute was never filled in.
type Complete struct {
	BeginOffset     int
	EndOffset       int
	IterationQuery  string
	IterationVar    string
	InnerQueryBegin int
	InnerQuery      string
}

// Finalize converts an in-progress directive into a Complete one, or fails
// if any attribute is still missing.
func (d *InProgress) Finalize() (Complete, error) {
	if d.IterationQuery == nil || d.EndOffset == nil || d.IterationVar == nil ||
		d.InnerQueryBegin == nil || d.InnerQuery == nil {
		return Complete{}, &sqlquerypperr.DirectiveIncomplete{
			Keyword: "combined_result",
			Offset:  d.BeginOffset,
		}
	}
	return Complete{
		BeginOffset:     d.BeginOffset,
		EndOffset:       *d.EndOffset,
		IterationQuery:  *d.IterationQuery,
		IterationVar:    *d.IterationVar,
		InnerQueryBegin: *d.InnerQueryBegin,
		InnerQuery:      *d.InnerQuery,
	}, nil
}

// ScopeBegin is the offset downstream code associates with this directive's
// inner-query body: the Output Packager reports (InnerQueryBegin, EndOffset)
// in input-statement coordinates, not (BeginOffset, EndOffset).
func (c Complete) ScopeBegin() int { return c.InnerQueryBegin }

// ScopeEnd is the offset of the directive's closing brace.
func (c Complete) ScopeEnd() int { return c.EndOffset }

// nodesState holds the completed directives plus at most one open one, as
// spec.md's §3 NodesState record describes.
type nodesState struct {
	all     []*InProgress
	current *InProgress
}
