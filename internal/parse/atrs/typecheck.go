package atrs

import (
	"github.com/pkg/errors"

	"github.com/hezzel/wanda-sub001/internal/term"
)

// typeEnv accumulates the substitution discovered while unifying
// occurrences of the same symbol or rule-local variable across the
// whole file, matching Typer's incremental approach of typing one
// combined term built from every rule. There is no occurs check,
// matching internal/term.Unify's own behaviour.
type typeEnv struct {
	sub     term.TypeSubstitution
	tvCount int
}

func newTypeEnv() *typeEnv {
	return &typeEnv{sub: term.TypeSubstitution{}}
}

func (e *typeEnv) fresh() term.Type {
	e.tvCount++
	return term.TypeVar{Name: typeVarName(e.tvCount)}
}

func typeVarName(n int) string {
	// "t1", "t2", ...; distinct from the monomorphisation names below.
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return "t" + string(digits)
}

// apply resolves t through e.sub to a fixpoint: a bare type variable
// is followed through however many bindings chain off it (sub.Apply
// itself only ever takes one step), and an arrow's components are
// resolved the same way. bounded so a stray cycle cannot loop forever.
func (e *typeEnv) apply(t term.Type) term.Type {
	for i := 0; i < 1000; i++ {
		v, ok := t.(term.TypeVar)
		if !ok {
			break
		}
		next, ok := e.sub[v.Name]
		if !ok {
			return t
		}
		t = next
	}
	if arrow, ok := t.(term.ArrowType); ok {
		return term.ArrowType{Left: e.apply(arrow.Left), Right: e.apply(arrow.Right)}
	}
	return t
}

// unify merges a and b, recording whatever bindings that requires.
// Resolution of multi-step chains happens in apply, not here.
func (e *typeEnv) unify(a, b term.Type) error {
	a, b = e.apply(a), e.apply(b)
	fresh, ok := term.Unify(a, b)
	if !ok {
		return errors.Errorf("atrs: cannot unify %s with %s", a, b)
	}
	for k, v := range fresh {
		e.sub[k] = v
	}
	return nil
}

// buildArrow constructs ins[0] -> ins[1] -> ... -> out, or out itself
// when ins is empty.
func buildArrow(ins []term.Type, out term.Type) term.Type {
	t := out
	for i := len(ins) - 1; i >= 0; i-- {
		t = term.ArrowType{Left: ins[i], Right: t}
	}
	return t
}

// typeChecker walks every rule's surface term tree once, assigning
// each distinct global symbol name and each rule-local variable name
// a type, unifying every occurrence against the ones already seen.
type typeChecker struct {
	env     *typeEnv
	symbols map[string]term.Type
}

func newTypeChecker() *typeChecker {
	return &typeChecker{env: newTypeEnv(), symbols: map[string]term.Type{}}
}

// visit returns the type this particular occurrence of t evaluates
// to; local holds the rule-scoped variable bindings (reset per rule).
func (c *typeChecker) visit(t *TermExpr, vars map[string]bool, local map[string]term.Type) (term.Type, error) {
	argTypes := make([]term.Type, len(t.Args))
	for i, a := range t.Args {
		ty, err := c.visit(a, vars, local)
		if err != nil {
			return nil, err
		}
		argTypes[i] = ty
	}
	out := c.env.fresh()
	wanted := buildArrow(argTypes, out)

	table := c.symbols
	if vars[t.Head] {
		table = local
	}
	if stored, ok := table[t.Head]; ok {
		if err := c.env.unify(stored, wanted); err != nil {
			return nil, errors.Wrapf(err, "atrs: %q", t.Head)
		}
	} else {
		table[t.Head] = wanted
	}
	return out, nil
}

// monomorphiser resolves every type variable remaining free after
// unification to a distinct fresh base sort, once typeEnv.apply has
// resolved the type's bindings (see resolve).
type monomorphiser struct {
	assigned map[string]term.Type
	next     byte
	width    int
}

func newMonomorphiser() *monomorphiser {
	return &monomorphiser{assigned: map[string]term.Type{}, next: 'a', width: 1}
}

func (m *monomorphiser) sortFor(name string) term.Type {
	if t, ok := m.assigned[name]; ok {
		return t
	}
	t := term.BaseType{Name: monoLabel(m.width, m.next)}
	m.assigned[name] = t
	if m.next == 'z' {
		m.next = 'a'
		m.width++
	} else {
		m.next++
	}
	return t
}

func monoLabel(width int, last byte) string {
	b := make([]byte, width)
	for i := range b {
		b[i] = 'a'
	}
	b[width-1] = last
	return "T" + string(b)
}

// resolve fully resolves typ through env, then replaces any
// remaining free TypeVar with its assigned monomorphic sort.
func (m *monomorphiser) resolve(env *typeEnv, typ term.Type) term.Type {
	typ = env.apply(typ)
	switch t := typ.(type) {
	case term.TypeVar:
		return m.sortFor(t.Name)
	case term.ArrowType:
		return term.ArrowType{Left: m.resolve(env, t.Left), Right: m.resolve(env, t.Right)}
	default:
		return typ
	}
}
