package xmlfmt

import (
	"github.com/pkg/errors"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/term"
)

var defaultSort = term.BaseType{Name: "o"}

// elaborator converts one rule's xmlTerm trees into term.Term,
// tracking lambda-bound variables in scope and the meta-variables
// allocated so far for the declared free variables, mirroring
// internal/parse/afsm's elaborator (bound map + metaByName map) and
// internal/parse/ari's free-variable-as-meta-variable convention.
type elaborator struct {
	alph         *alphabet.Alphabet
	freeVarTypes map[string]term.Type
	bound        map[string]term.Variable
	metaByName   map[string]term.MetaVariable
}

func newElaborator(alph *alphabet.Alphabet, freeVarTypes map[string]term.Type) *elaborator {
	return &elaborator{
		alph:         alph,
		freeVarTypes: freeVarTypes,
		bound:        map[string]term.Variable{},
		metaByName:   map[string]term.MetaVariable{},
	}
}

// term is an alias of elaborate, named like the afsm/ari elaborators'
// own entry points; elaborateRules calls elaborate directly.
func (e *elaborator) term(h xmlTerm) (term.Term, error) { return e.elaborate(h) }

func (e *elaborator) elaborate(t xmlTerm) (term.Term, error) {
	switch {
	case t.varName != "":
		return e.variable(t.varName)
	case t.funName != "" || t.funArgs != nil:
		return e.funapp(t)
	case t.appFun != nil:
		fun, err := e.elaborate(*t.appFun)
		if err != nil {
			return nil, err
		}
		arg, err := e.elaborate(*t.appArg)
		if err != nil {
			return nil, err
		}
		return term.Application{Fun: fun, Arg: arg}, nil
	case t.lamVar != "":
		return e.lambda(t)
	default:
		return nil, errors.New("xmlfmt: empty term node")
	}
}

func (e *elaborator) funapp(t xmlTerm) (term.Term, error) {
	typ, ok := e.alph.Lookup(t.funName)
	if !ok {
		return nil, errors.Errorf("xmlfmt: undeclared function symbol %q", t.funName)
	}
	head := term.Term(term.Constant{Name: t.funName, Typ: typ})
	for _, raw := range t.funArgs {
		arg, err := e.elaborate(raw)
		if err != nil {
			return nil, err
		}
		head = term.Application{Fun: head, Arg: arg}
	}
	return head, nil
}

func (e *elaborator) lambda(t xmlTerm) (term.Term, error) {
	typ, err := t.lamType.toType()
	if err != nil {
		return nil, errors.Wrapf(err, "xmlfmt: type of bound variable %q", t.lamVar)
	}
	bv := term.FreshVariable(typ)
	prior, had := e.bound[t.lamVar]
	e.bound[t.lamVar] = bv
	body, err := e.elaborate(*t.lamBody)
	if had {
		e.bound[t.lamVar] = prior
	} else {
		delete(e.bound, t.lamVar)
	}
	if err != nil {
		return nil, err
	}
	return term.Abstraction{Bound: bv, Body: body}, nil
}

func (e *elaborator) variable(name string) (term.Term, error) {
	if bv, ok := e.bound[name]; ok {
		return bv, nil
	}
	if mv, ok := e.metaByName[name]; ok {
		return term.MetaApplication{Meta: mv}, nil
	}
	var typ term.Type = defaultSort
	if e.freeVarTypes != nil {
		if t, ok := e.freeVarTypes[name]; ok {
			typ = t
		}
	}
	mv := term.FreshMetaVariable(typ)
	e.metaByName[name] = mv
	return term.MetaApplication{Meta: mv}, nil
}
