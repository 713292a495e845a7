package directive

import (
	"strings"

	"github.com/patrickdubios/sqlquerypp/lex"
	"github.com/patrickdubios/sqlquerypp/scanner"
	"github.com/patrickdubios/sqlquerypp/sqlquerypperr"
)

// Scanner is the working state of a single parse pass: the borrowed source
// statement, a running word offset, and the nodesState (completed
// directives plus at most one in-progress one). It is never mutated after
// Finalize and never mutates statement.
type Scanner struct {
	statement string
	offset    int
	nodes     nodesState
}

// Final is an owned copy of the statement plus the fully-finalized
// directive list, produced by Scanner.Finalize.
type Final struct {
	Statement  string
	Directives []Complete
}

// New creates a scanner over statement. statement is never written to by
// the scanner; it is borrowed for the lifetime of the parse.
func New(statement string) *Scanner {
	return &Scanner{statement: statement}
}

// Parse steps through the statement word by word (split on a single literal
// space), updating the state machine. It returns the first error
// encountered, if any.
func (s *Scanner) Parse() error {
	words := strings.Split(s.statement, lex.WordDelimiter)
	for _, word := range words {
		if err := s.advanceWord(word); err != nil {
			return err
		}
		s.offset += len(word) + len(lex.WordDelimiter)
	}
	return nil
}

func (s *Scanner) advanceWord(word string) error {
	if lex.IsKeyword(word) {
		return s.handleKeyword(s.offset)
	}
	if word == "" {
		return nil
	}
	switch word[0] {
	case lex.ParenStart:
		return s.handleParenStart(s.offset)
	case lex.BraceStart:
		return s.handleBraceStart(s.offset)
	case lex.BraceEnd:
		s.handleBraceEnd(s.offset)
	case lex.VarStart:
		return s.handleVar(s.offset)
	}
	return nil
}

func (s *Scanner) handleKeyword(offset int) error {
	if s.nodes.current != nil {
		return &sqlquerypperr.UnsupportedNesting{
			Outer: lex.KeywordCombinedResult,
			Inner: lex.KeywordCombinedResult,
		}
	}
	s.nodes.current = newInProgress(offset)
	return nil
}

func (s *Scanner) handleParenStart(offset int) error {
	node := s.nodes.current
	if node == nil {
		return nil
	}
	cursor := offset + 1
	braceStart, err := scanner.FindRequiredChar(s.statement, cursor, len(s.statement), lex.BraceStart, lex.KeywordCombinedResult)
	if err != nil {
		return err
	}
	parenEnd, err := scanner.FindRequiredChar(s.statement, cursor, braceStart, lex.ParenEnd, lex.KeywordCombinedResult)
	if err != nil {
		return err
	}
	iterationQuery := s.statement[cursor:parenEnd]
	node.IterationQuery = &iterationQuery
	return nil
}

func (s *Scanner) handleVar(offset int) error {
	node := s.nodes.current
	if node == nil {
		return nil
	}
	rest := s.statement[offset:]
	word := rest
	if idx := strings.Index(rest, lex.WordDelimiter); idx >= 0 {
		word = rest[:idx]
	}
	trimmed := strings.TrimSpace(word)
	node.IterationVar = &trimmed
	return nil
}

func (s *Scanner) handleBraceStart(offset int) error {
	node := s.nodes.current
	if node == nil {
		return nil
	}
	node.InnerQueryBegin = &offset
	return nil
}

func (s *Scanner) handleBraceEnd(offset int) {
	node := s.nodes.current
	if node == nil {
		return
	}
	if node.InnerQueryBegin != nil {
		sliceStart := *node.InnerQueryBegin + 1
		sliceEnd := offset - 1
		inner := strings.TrimSpace(s.statement[sliceStart:sliceEnd])
		node.InnerQuery = &inner
	}
	node.EndOffset = &offset
	s.nodes.all = append(s.nodes.all, node)
	s.nodes.current = nil
}

// Finalize converts every observed directive into its Complete form and
// returns an owned Final state. It fails with the first
// sqlquerypperr.DirectiveIncomplete it encounters, in observed order.
func (s *Scanner) Finalize() (*Final, error) {
	pending := s.nodes.all
	if s.nodes.current != nil {
		// Never saw a closing brace: this directive is incomplete, not
		// silently dropped.
		pending = append(pending, s.nodes.current)
	}
	complete := make([]Complete, 0, len(pending))
	for _, n := range pending {
		c, err := n.Finalize()
		if err != nil {
			return nil, err
		}
		complete = append(complete, c)
	}
	return &Final{Statement: s.statement, Directives: complete}, nil
}

// Parse is a convenience entry point: it scans statement and returns its
// finalized directive list in one call.
func Parse(statement string) (*Final, error) {
	s := New(statement)
	if err := s.Parse(); err != nil {
		return nil, err
	}
	return s.Finalize()
}
