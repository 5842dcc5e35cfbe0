package atrs

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
`

func TestParseInfersMonomorphicTypes(t *testing.T) {
	res, err := Parse(plusDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(res.Rules))
	}
	plusType, ok := res.Alphabet.Lookup("plus")
	if !ok {
		t.Fatal("plus not declared")
	}
	if term.Arity(plusType) != 2 {
		t.Fatalf("expected plus to have arity 2, got %d (%s)", term.Arity(plusType), plusType)
	}
	zeroType, ok := res.Alphabet.Lookup("0")
	if !ok {
		t.Fatal("0 not declared")
	}
	if !zeroType.IsBase() {
		t.Fatalf("expected 0 to be base-typed, got %s", zeroType)
	}
	sType, ok := res.Alphabet.Lookup("s")
	if !ok {
		t.Fatal("s not declared")
	}
	ins, out := term.InputsAndOutput(sType)
	if len(ins) != 1 || !ins[0].Equals(out) || !out.Equals(zeroType) {
		t.Fatalf("expected s : nat -> nat consistent with 0's sort, got %s", sType)
	}
}

const higherOrderDoc = `
(VAR f x)
(RULES
  map(f,x) -> f(x)
)
`

func TestParseAllowsApplicativeVariable(t *testing.T) {
	res, err := Parse(higherOrderDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	right := res.Rules[0].Right
	app, ok := right.(term.Application)
	if !ok {
		t.Fatalf("expected f(x) to elaborate as an Application, got %#v", right)
	}
	if _, ok := app.Fun.(term.MetaApplication); !ok {
		t.Fatalf("expected the applied head to be a meta-variable, got %#v", app.Fun)
	}
}

func TestParseRejectsMissingRules(t *testing.T) {
	if _, err := Parse("(VAR x)\n"); err == nil {
		t.Fatal("expected an error when RULES is missing")
	}
}
