// Package scanner provides the position-tracking primitive the directive
// parser builds on: locating a required delimiter inside a byte window of
// the source statement.
package scanner

import (
	"strings"

	"github.com/patrickdubios/sqlquerypp/sqlquerypperr"
)

// FindRequiredChar returns the absolute offset of the first occurrence of ch
// within statement[start:end]. owningKeyword names the directive keyword the
// search is performed on behalf of, purely for the error message produced
// when ch is absent.
func FindRequiredChar(statement string, start, end int, ch byte, owningKeyword string) (int, error) {
	idx := strings.IndexByte(statement[start:end], ch)
	if idx < 0 {
		return 0, &sqlquerypperr.MissingCharacter{Char: ch, Keyword: owningKeyword}
	}
	return start + idx, nil
}
