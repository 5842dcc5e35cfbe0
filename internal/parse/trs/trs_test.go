package trs

import (
	"testing"

	"github.com/hezzel/wanda-sub001/internal/term"
)

const plusDoc = `
(VAR x y)
(RULES
  plus(0,y) -> y
  plus(s(x),y) -> s(plus(x,y))
)
(STRATEGY INNERMOST)
`

func TestParseDeclaresAlphabetAndRules(t *testing.T) {
	res, err := Parse(plusDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.Innermost {
		t.Fatal("expected innermost strategy to be recognised")
	}
	if typ, ok := res.Alphabet.Lookup("plus"); !ok || term.Arity(typ) != 2 {
		t.Fatalf("plus not declared with arity 2: %v %v", typ, ok)
	}
	if len(res.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(res.Rules))
	}
}

func TestParseSharesVariableAcrossRuleSides(t *testing.T) {
	res, err := Parse(plusDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := res.Rules[0]
	_, largs := term.Spine(r.Left)
	lm, ok := largs[len(largs)-1].(term.MetaApplication)
	if !ok {
		t.Fatalf("expected a meta-variable occurrence, got %#v", largs[len(largs)-1])
	}
	rm, ok := r.Right.(term.MetaApplication)
	if !ok {
		t.Fatalf("expected right-hand side to be a bare meta-variable, got %#v", r.Right)
	}
	if lm.Meta.Index != rm.Meta.Index {
		t.Fatalf("variable y was not shared across the rule: %d != %d", lm.Meta.Index, rm.Meta.Index)
	}
}

func TestParseRejectsMissingRulesBlock(t *testing.T) {
	if _, err := Parse("(VAR x)\n"); err == nil {
		t.Fatal("expected an error when RULES is missing")
	}
}

func TestParseRejectsUnknownPart(t *testing.T) {
	if _, err := Parse("(VAR x)\n(RULES f(x) -> x)\n(BOGUS foo)\n"); err == nil {
		t.Fatal("expected an error for an unexpected part")
	}
}
