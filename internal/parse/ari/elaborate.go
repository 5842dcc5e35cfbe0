package ari

import (
	"github.com/pkg/errors"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/parse/sexp"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// defaultSort is used for a variable whose type cannot be recovered
// from its applied position (the root of a rule side is a bare
// identifier, which ARI never actually produces but which this
// reader tolerates rather than rejects).
var defaultSort = term.BaseType{Name: "o"}

// elaborator converts ARI's applicative s-expression terms, "(f a1
// ... an)", into term.Term, tracking the meta-variables (ARI's
// first-order variables, which this module represents as 0-ary
// meta-variables) allocated so far for one rule: a variable used on
// both sides of a rule, or twice on one side, must resolve to the
// same MetaVariable.
type elaborator struct {
	alph       *alphabet.Alphabet
	metaByName map[string]term.MetaVariable
}

func newElaborator(alph *alphabet.Alphabet) *elaborator {
	return &elaborator{alph: alph, metaByName: map[string]term.MetaVariable{}}
}

// term is the entry point for one rule side.
func (e *elaborator) term(s sexp.SExp) (term.Term, error) {
	return e.elaborate(s, nil)
}

// elaborate converts s, using expected (if non-nil) as the type a
// variable occurrence should take when s turns out to be an
// undeclared identifier.
func (e *elaborator) elaborate(s sexp.SExp, expected term.Type) (term.Term, error) {
	switch n := s.(type) {
	case *sexp.Symbol:
		if typ, ok := e.alph.Lookup(n.Value); ok {
			return term.Constant{Name: n.Value, Typ: typ}, nil
		}
		return e.variable(n.Value, expected)
	case *sexp.List:
		if len(n.Elements) == 0 {
			return nil, errors.New("ari: empty term list")
		}
		head, ok := n.Elements[0].(*sexp.Symbol)
		if !ok {
			return nil, errors.New("ari: applied term must begin with a function symbol")
		}
		typ, ok := e.alph.Lookup(head.Value)
		if !ok {
			return nil, errors.Errorf("ari: undeclared function symbol %q", head.Value)
		}
		ins, _ := term.InputsAndOutput(typ)
		rawArgs := n.Elements[1:]
		if len(rawArgs) != len(ins) {
			return nil, errors.Errorf("ari: %q applied to %d arguments, expected %d", head.Value, len(rawArgs), len(ins))
		}
		args := make([]term.Term, len(rawArgs))
		for i, raw := range rawArgs {
			a, err := e.elaborate(raw, ins[i])
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return term.ApplyArgs(term.Constant{Name: head.Value, Typ: typ}, args), nil
	default:
		return nil, errors.New("ari: malformed term")
	}
}

func (e *elaborator) variable(name string, expected term.Type) (term.Term, error) {
	if mv, ok := e.metaByName[name]; ok {
		return term.MetaApplication{Meta: mv}, nil
	}
	typ := expected
	if typ == nil {
		typ = defaultSort
	}
	mv := term.FreshMetaVariable(typ)
	e.metaByName[name] = mv
	return term.MetaApplication{Meta: mv}, nil
}
