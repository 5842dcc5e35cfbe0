package afsm

import (
	"fmt"
	"unicode"

	"github.com/hezzel/wanda-sub001/internal/term"
)

// declarations is the combined alphabet-block lookup table: a name
// starting with an upper-case letter is a meta-variable (its rule-
// level placeholder type), anything else is a function symbol.
type declarations struct {
	symbols map[string]term.Type
	metas   map[string]term.Type
}

func isMetaName(name string) bool {
	r := []rune(name)
	return len(r) > 0 && unicode.IsUpper(r[0])
}

// elaborateType converts a surface TypeExpr into a term.Type.
func elaborateType(t TypeExpr) term.Type {
	left := elaborateTypeAtom(*t.Left)
	if t.Arrow == nil {
		return left
	}
	return term.ArrowType{Left: left, Right: elaborateType(*t.Arrow)}
}

func elaborateTypeAtom(a TypeAtom) term.Type {
	if a.Nested != nil {
		return elaborateType(*a.Nested)
	}
	return term.BaseType{Name: a.Name}
}

// elaborator holds the per-rule state needed while converting a
// TermExpr into a term.Term: the declared symbol/meta-variable types,
// the current bound-variable scope, and the meta-variable instances
// already allocated for this rule (so that two occurrences of the
// same name Z share one MetaVariable.Index, as linearity analysis
// requires).
type elaborator struct {
	decls      declarations
	bound      map[string]term.Variable
	metaByName map[string]term.MetaVariable
}

func newElaborator(decls declarations) *elaborator {
	return &elaborator{decls: decls, bound: map[string]term.Variable{}, metaByName: map[string]term.MetaVariable{}}
}

func (e *elaborator) metaVar(name string) (term.MetaVariable, error) {
	if mv, ok := e.metaByName[name]; ok {
		return mv, nil
	}
	typ, ok := e.decls.metas[name]
	if !ok {
		return term.MetaVariable{}, fmt.Errorf("undeclared meta-variable %q", name)
	}
	mv := term.FreshMetaVariable(typ)
	e.metaByName[name] = mv
	return mv, nil
}

func (e *elaborator) term(expr *TermExpr) (term.Term, error) {
	switch {
	case expr.Lambda != nil:
		return e.lambda(expr.Lambda)
	case expr.Atom != nil:
		return e.atom(expr.Atom)
	default:
		return nil, fmt.Errorf("empty term expression")
	}
}

func (e *elaborator) lambda(l *LambdaExpr) (term.Term, error) {
	typ := elaborateType(l.Type)
	bv := term.FreshVariable(typ)
	prior, had := e.bound[l.Bound]
	e.bound[l.Bound] = bv
	body, err := e.term(l.Body)
	if had {
		e.bound[l.Bound] = prior
	} else {
		delete(e.bound, l.Bound)
	}
	if err != nil {
		return nil, err
	}
	return term.Abstraction{Bound: bv, Body: body}, nil
}

func (e *elaborator) atom(a *TermAtom) (term.Term, error) {
	var head term.Term

	switch {
	case len(a.MetaArgs) > 0 || isDeclaredMeta(e.decls, a.Head):
		mv, err := e.metaVar(a.Head)
		if err != nil {
			return nil, err
		}
		args, err := e.terms(a.MetaArgs)
		if err != nil {
			return nil, err
		}
		head = term.MetaApplication{Meta: mv, Args: args}
	case isDeclaredSymbol(e.decls, a.Head):
		head = term.Constant{Name: a.Head, Typ: e.decls.symbols[a.Head]}
	default:
		bv, ok := e.bound[a.Head]
		if !ok {
			return nil, fmt.Errorf("undeclared identifier %q (not a symbol, meta-variable, or bound variable in scope)", a.Head)
		}
		head = bv
	}

	callArgs, err := e.terms(a.CallArgs)
	if err != nil {
		return nil, err
	}
	return term.ApplyArgs(head, callArgs), nil
}

func (e *elaborator) terms(exprs []*TermExpr) ([]term.Term, error) {
	out := make([]term.Term, len(exprs))
	for i, x := range exprs {
		t, err := e.term(x)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func isDeclaredMeta(d declarations, name string) bool {
	_, ok := d.metas[name]
	return ok
}

func isDeclaredSymbol(d declarations, name string) bool {
	_, ok := d.symbols[name]
	return ok
}
