package trs

import (
	"github.com/pkg/errors"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// elaborator converts one rule's TermExpr trees into term.Term,
// sharing a MetaVariable per variable name across both sides of the
// rule, matching internal/parse/ari's convention for first-order
// variables (there are no bound variables or lambdas in this
// format).
type elaborator struct {
	alph       *alphabet.Alphabet
	vars       map[string]bool
	metaByName map[string]term.MetaVariable
}

func newElaborator(alph *alphabet.Alphabet, vars map[string]bool) *elaborator {
	return &elaborator{alph: alph, vars: vars, metaByName: map[string]term.MetaVariable{}}
}

func (e *elaborator) term(t *TermExpr) (term.Term, error) {
	if e.vars[t.Head] {
		if len(t.Args) != 0 {
			return nil, errors.Errorf("trs: variable %q applied to arguments", t.Head)
		}
		mv, ok := e.metaByName[t.Head]
		if !ok {
			mv = term.FreshMetaVariable(sort)
			e.metaByName[t.Head] = mv
		}
		return term.MetaApplication{Meta: mv}, nil
	}

	typ, ok := e.alph.Lookup(t.Head)
	if !ok {
		return nil, errors.Errorf("trs: undeclared function symbol %q", t.Head)
	}
	head := term.Term(term.Constant{Name: t.Head, Typ: typ})
	for _, raw := range t.Args {
		arg, err := e.term(raw)
		if err != nil {
			return nil, err
		}
		head = term.Application{Fun: head, Arg: arg}
	}
	return head, nil
}
