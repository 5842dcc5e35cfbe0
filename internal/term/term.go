// Package term implements the simply-typed lambda terms with
// meta-variables (AFSM terms) that the rest of the framework operates
// on: variables, constants, applications, abstractions, and
// meta-applications, plus substitution, unification, and the single
// beta-reduction step described in the data model.
package term

import (
	"fmt"
	"strings"
)

// Term is a simply-typed lambda term with meta-variables. Every term
// carries a type derived compositionally from its children; there is
// no separate "typecheck" pass. Terms are owned exclusively by the
// rule or dependency pair that contains them (see the lifecycle note
// on deep copying), so mutation always happens through construction
// of a new node, never in place.
type Term interface {
	// Type returns this term's type.
	Type() Type
	// String renders the term using a fresh naming environment.
	String() string
}

// Variable is a bound variable, identified by a process-wide unique
// index. Two variables are the same binder iff their indices match.
type Variable struct {
	Index int
	Typ   Type
}

// Type implements Term.
func (v Variable) Type() Type { return v.Typ }

func (v Variable) String() string { return fmt.Sprintf("x%d", v.Index) }

// Constant is a function symbol occurrence: a name drawn from the
// alphabet together with its declared type.
type Constant struct {
	Name string
	Typ  Type
}

// Type implements Term.
func (c Constant) Type() Type { return c.Typ }

func (c Constant) String() string { return c.Name }

// Application is "Fun Arg"; Fun's type must be an ArrowType whose
// Left matches Arg's type.
type Application struct {
	Fun Term
	Arg Term
}

// Type implements Term.
func (a Application) Type() Type {
	arrow, ok := a.Fun.Type().(ArrowType)
	if !ok {
		// Malformed application; callers are expected to have
		// type-checked already. Returning the function's own type
		// keeps String()/traversal total rather than panicking.
		return a.Fun.Type()
	}
	return arrow.Right
}

func (a Application) String() string {
	return a.Fun.String() + "(" + a.Arg.String() + ")"
}

// Abstraction is "\x:Bound.Body". Bound carries its own fresh index;
// occurrences of that index inside Body refer to this binder.
type Abstraction struct {
	Bound Variable
	Body  Term
}

// Type implements Term.
func (l Abstraction) Type() Type {
	return ArrowType{Left: l.Bound.Typ, Right: l.Body.Type()}
}

func (l Abstraction) String() string {
	return "\\" + l.Bound.String() + "." + l.Body.String()
}

// MetaVariable is a rule-level placeholder, distinct from a bound
// Variable: it gets instantiated by a term during matching rather
// than bound by an abstraction. Typ is the full curried type
// rho_1 -> ... -> rho_n -> kappa; a MetaApplication need not supply
// all n arguments (see headmost dependency pairs).
type MetaVariable struct {
	Index int
	Typ   Type
}

// Arity is the number of arguments this meta-variable ultimately
// accepts (the n above).
func (z MetaVariable) Arity() int { return Arity(z.Typ) }

func (z MetaVariable) String() string { return fmt.Sprintf("Z%d", z.Index) }

// MetaApplication is "Z[s1,...,sn]" with 0 <= n <= Meta.Arity().
type MetaApplication struct {
	Meta MetaVariable
	Args []Term
}

// Type implements Term.
func (m MetaApplication) Type() Type {
	typ := m.Meta.Typ
	for range m.Args {
		typ = typ.(ArrowType).Right
	}
	return typ
}

func (m MetaApplication) String() string {
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = a.String()
	}
	return m.Meta.String() + "[" + strings.Join(parts, ",") + "]"
}

// Equals is structural equality up to alpha-renaming of abstractions:
// two abstractions are equal iff their bodies are equal after
// substituting one's bound variable for the other's.
func Equals(a, b Term) bool {
	switch at := a.(type) {
	case Variable:
		bt, ok := b.(Variable)
		return ok && at.Index == bt.Index
	case Constant:
		bt, ok := b.(Constant)
		return ok && at.Name == bt.Name && at.Typ.Equals(bt.Typ)
	case Application:
		bt, ok := b.(Application)
		return ok && Equals(at.Fun, bt.Fun) && Equals(at.Arg, bt.Arg)
	case Abstraction:
		bt, ok := b.(Abstraction)
		if !ok || !at.Bound.Typ.Equals(bt.Bound.Typ) {
			return false
		}
		renamed := Substitute(bt.Body, bt.Bound.Index, at.Bound)
		return Equals(at.Body, renamed)
	case MetaApplication:
		bt, ok := b.(MetaApplication)
		if !ok || at.Meta.Index != bt.Meta.Index || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Equals(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Spine returns the head of the applicative spine f s1 ... sn together
// with its arguments (head, args). A variable, constant, abstraction,
// or meta-application can all be a head.
func Spine(t Term) (head Term, args []Term) {
	for {
		app, ok := t.(Application)
		if !ok {
			return t, reverseArgs(args)
		}
		args = append(args, app.Arg)
		t = app.Fun
	}
}

func reverseArgs(args []Term) []Term {
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return args
}

// ApplyArgs rebuilds a term head s1 ... sn from its head and argument
// list, the inverse of Spine.
func ApplyArgs(head Term, args []Term) Term {
	result := head
	for _, a := range args {
		result = Application{Fun: result, Arg: a}
	}
	return result
}

// IsFunctional returns whether typ is a (possibly 0-ary) function
// type, i.e. whether a term of this type can still be applied.
func IsFunctional(typ Type) bool {
	return typ.IsArrow()
}
