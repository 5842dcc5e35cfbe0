package sexp

import "testing"

func TestParseAtom(t *testing.T) {
	e, err := Parse("foo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sym, ok := e.(*Symbol)
	if !ok || sym.Value != "foo" {
		t.Fatalf("got %#v", e)
	}
}

func TestParseNestedList(t *testing.T) {
	e, err := Parse("(fun f (-> nat nat))")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	l, ok := e.(*List)
	if !ok || len(l.Elements) != 3 {
		t.Fatalf("got %#v", e)
	}
	if !l.MatchSymbols(1, "fun") {
		t.Fatalf("MatchSymbols failed on %s", l.String())
	}
	inner, ok := l.Elements[2].(*List)
	if !ok || !inner.MatchSymbols(1, "->") {
		t.Fatalf("expected nested (-> ...) list, got %#v", l.Elements[2])
	}
}

func TestParseAllReadsMultipleTopLevelForms(t *testing.T) {
	exprs, err := ParseAll("(format MS)\n(sort nat)\n; a comment\n(sort bool)\n")
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(exprs) != 3 {
		t.Fatalf("expected 3 top-level forms, got %d", len(exprs))
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	if _, err := Parse("foo bar"); err == nil {
		t.Fatal("expected an error for trailing input")
	}
}

func TestParseRejectsUnterminatedList(t *testing.T) {
	if _, err := Parse("(foo bar"); err == nil {
		t.Fatal("expected an error for an unterminated list")
	}
}
