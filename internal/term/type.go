package term

import "strings"

// Type is a simple type of the simply-typed lambda calculus extended
// with type variables for polymorphic surface formats (AFS, ATRS)
// that get monomorphised before reaching the core framework.
type Type interface {
	// IsBase returns true for a named base sort.
	IsBase() bool
	// IsArrow returns true for a function type.
	IsArrow() bool
	// Equals performs structural equality (no unification).
	Equals(other Type) bool
	// HasTypeVariables returns true if this type or any of its
	// components mentions a type variable.
	HasTypeVariables() bool
	// String renders the type using the usual infix "->" notation,
	// right-associative.
	String() string
}

// BaseType is a named, 0-ary sort such as "nat" or "o".
type BaseType struct {
	Name string
}

// IsBase implements Type.
func (BaseType) IsBase() bool { return true }

// IsArrow implements Type.
func (BaseType) IsArrow() bool { return false }

// HasTypeVariables implements Type.
func (BaseType) HasTypeVariables() bool { return false }

// Equals implements Type.
func (b BaseType) Equals(other Type) bool {
	o, ok := other.(BaseType)
	return ok && o.Name == b.Name
}

func (b BaseType) String() string { return b.Name }

// ArrowType is a function type "Left -> Right".
type ArrowType struct {
	Left  Type
	Right Type
}

// IsBase implements Type.
func (ArrowType) IsBase() bool { return false }

// IsArrow implements Type.
func (ArrowType) IsArrow() bool { return true }

// HasTypeVariables implements Type.
func (a ArrowType) HasTypeVariables() bool {
	return a.Left.HasTypeVariables() || a.Right.HasTypeVariables()
}

// Equals implements Type.
func (a ArrowType) Equals(other Type) bool {
	o, ok := other.(ArrowType)
	return ok && a.Left.Equals(o.Left) && a.Right.Equals(o.Right)
}

func (a ArrowType) String() string {
	var sb strings.Builder
	if a.Left.IsArrow() {
		sb.WriteString("(" + a.Left.String() + ")")
	} else {
		sb.WriteString(a.Left.String())
	}
	sb.WriteString(" -> ")
	sb.WriteString(a.Right.String())
	return sb.String()
}

// TypeVar is a placeholder sort used by the ATRS/AFS readers before
// monomorphisation; it must never reach the core DP framework.
type TypeVar struct {
	Name string
}

// IsBase implements Type.
func (TypeVar) IsBase() bool { return true }

// IsArrow implements Type.
func (TypeVar) IsArrow() bool { return false }

// HasTypeVariables implements Type.
func (TypeVar) HasTypeVariables() bool { return true }

// Equals implements Type.
func (t TypeVar) Equals(other Type) bool {
	o, ok := other.(TypeVar)
	return ok && o.Name == t.Name
}

func (t TypeVar) String() string { return "'" + t.Name }

// Arity returns the number of curried arguments of the type, i.e. the
// n such that typ = s1 -> s2 -> ... -> sn -> out with out a base type.
func Arity(typ Type) int {
	n := 0
	for typ.IsArrow() {
		n++
		typ = typ.(ArrowType).Right
	}
	return n
}

// Output returns the base output type of a (possibly curried) type.
func Output(typ Type) Type {
	for typ.IsArrow() {
		typ = typ.(ArrowType).Right
	}
	return typ
}

// InputsAndOutput splits typ into its curried argument types and the
// final output type.
func InputsAndOutput(typ Type) ([]Type, Type) {
	var ins []Type
	for typ.IsArrow() {
		a := typ.(ArrowType)
		ins = append(ins, a.Left)
		typ = a.Right
	}
	return ins, typ
}

// TypeSubstitution maps type-variable names to concrete types.
type TypeSubstitution map[string]Type

// Apply substitutes every type variable in typ according to sub.
func (sub TypeSubstitution) Apply(typ Type) Type {
	switch t := typ.(type) {
	case TypeVar:
		if repl, ok := sub[t.Name]; ok {
			return repl
		}
		return t
	case ArrowType:
		return ArrowType{Left: sub.Apply(t.Left), Right: sub.Apply(t.Right)}
	default:
		return typ
	}
}

// Unify computes the most general type substitution making a and b
// structurally equal, or reports failure. Used by the ATRS/AFS
// readers during type inference and by the dependency-graph edge
// test when comparing heads of different arity.
func Unify(a, b Type) (TypeSubstitution, bool) {
	sub := TypeSubstitution{}
	if !unify(a, b, sub) {
		return nil, false
	}
	return sub, true
}

func unify(a, b Type, sub TypeSubstitution) bool {
	a = sub.Apply(a)
	b = sub.Apply(b)
	switch at := a.(type) {
	case TypeVar:
		if bv, ok := b.(TypeVar); ok && bv.Name == at.Name {
			return true
		}
		sub[at.Name] = b
		return true
	case BaseType:
		if bv, ok := b.(TypeVar); ok {
			sub[bv.Name] = at
			return true
		}
		bt, ok := b.(BaseType)
		return ok && bt.Name == at.Name
	case ArrowType:
		if bv, ok := b.(TypeVar); ok {
			sub[bv.Name] = at
			return true
		}
		bt, ok := b.(ArrowType)
		if !ok {
			return false
		}
		return unify(at.Left, bt.Left, sub) && unify(at.Right, bt.Right, sub)
	default:
		return false
	}
}
