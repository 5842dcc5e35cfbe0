package ari

import (
	"testing"

	"github.com/hezzel/wanda-sub001/internal/term"
)

const plusSystem = `
(format MS)
(sort nat)
(fun 0 nat)
(fun s (-> nat nat))
(fun plus (-> nat nat nat))
(rule (plus 0 y) y)
(rule (plus (s x) y) (s (plus x y)))
`

func TestParseDeclaresAlphabetAndRules(t *testing.T) {
	res, err := Parse(plusSystem)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Format != "MS" {
		t.Fatalf("expected format MS, got %q", res.Format)
	}
	if typ, ok := res.Alphabet.Lookup("plus"); !ok || term.Arity(typ) != 2 {
		t.Fatalf("plus not declared with arity 2: %v %v", typ, ok)
	}
	if len(res.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(res.Rules))
	}
}

func TestParseSharesVariableAcrossRuleSides(t *testing.T) {
	res, err := Parse(plusSystem)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := res.Rules[0]
	_, rargs := term.Spine(r.Left)
	lastLeftArg := rargs[len(rargs)-1]
	lm, ok := lastLeftArg.(term.MetaApplication)
	if !ok {
		t.Fatalf("expected a meta-variable occurrence, got %#v", lastLeftArg)
	}
	rm, ok := r.Right.(term.MetaApplication)
	if !ok {
		t.Fatalf("expected right-hand side to be a bare meta-variable, got %#v", r.Right)
	}
	if lm.Meta.Index != rm.Meta.Index {
		t.Fatalf("variable y was not shared across the rule: %d != %d", lm.Meta.Index, rm.Meta.Index)
	}
}

func TestParseRejectsUndeclaredFunction(t *testing.T) {
	_, err := Parse("(fun f (-> nat nat))\n(rule (g 0) 0)\n")
	if err == nil {
		t.Fatal("expected an error for an undeclared function symbol")
	}
}
