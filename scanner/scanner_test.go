package scanner

import (
	"testing"

	"github.com/patrickdubios/sqlquerypp/sqlquerypperr"
)

func TestFindRequiredCharFindsOffset(t *testing.T) {
	stmt := "combined_result (x) AS $v { body }"
	got, err := FindRequiredChar(stmt, 0, len(stmt), '{', "combined_result")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 26
	if stmt[want] != '{' {
		t.Fatalf("test fixture broken: stmt[%d] = %q, want '{'", want, stmt[want])
	}
	if got != want {
		t.Fatalf("got offset %d, want %d", got, want)
	}
}

func TestFindRequiredCharRespectsWindow(t *testing.T) {
	stmt := "{ earlier } combined_result (x) AS $v { body }"
	_, err := FindRequiredChar(stmt, 12, len(stmt), '{', "combined_result")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFindRequiredCharMissing(t *testing.T) {
	stmt := "combined_result (x) AS $v no brace here"
	_, err := FindRequiredChar(stmt, 0, len(stmt), '{', "combined_result")
	if err == nil {
		t.Fatal("expected an error when the character is absent")
	}
	var missing *sqlquerypperr.MissingCharacter
	if !asMissingCharacter(err, &missing) {
		t.Fatalf("expected *sqlquerypperr.MissingCharacter, got %T", err)
	}
	if missing.Char != '{' || missing.Keyword != "combined_result" {
		t.Fatalf("unexpected error fields: %+v", missing)
	}
}

func asMissingCharacter(err error, target **sqlquerypperr.MissingCharacter) bool {
	mc, ok := err.(*sqlquerypperr.MissingCharacter)
	if !ok {
		return false
	}
	*target = mc
	return true
}
