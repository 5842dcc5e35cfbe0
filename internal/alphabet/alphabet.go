// Package alphabet holds the signature of an AFSM: the mapping from
// function symbol name to its declared type, the arity table computed
// by rule analysis, and the "upped" f# companions used by dependency
// pairs. The alphabet and arity maps are read-only once the framework
// driver starts (see the shared-resource policy); they outlive any
// single framework run and are never copied per DP problem.
package alphabet

import (
	"sort"

	"github.com/hezzel/wanda-sub001/internal/term"
)

// UppedSuffix marks the dependency-chain-head companion of a defined
// symbol, f#.
const UppedSuffix = "#"

// Alphabet is the symbol -> type signature of an AFSM, plus the
// per-symbol arity computed by rule analysis.
type Alphabet struct {
	types   map[string]term.Type
	arities map[string]int
	// order preserves declaration order for deterministic output.
	order []string
}

// New creates an empty alphabet.
func New() *Alphabet {
	return &Alphabet{types: map[string]term.Type{}, arities: map[string]int{}}
}

// Declare adds a symbol with its type. Declaring the same name twice
// overwrites the type but preserves declaration order.
func (a *Alphabet) Declare(name string, typ term.Type) {
	if _, exists := a.types[name]; !exists {
		a.order = append(a.order, name)
	}
	a.types[name] = typ
}

// Lookup returns the type of name and whether it is declared.
func (a *Alphabet) Lookup(name string) (term.Type, bool) {
	t, ok := a.types[name]
	return t, ok
}

// Symbols returns every declared symbol name in declaration order.
func (a *Alphabet) Symbols() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// SetArity records the arity of a symbol, as computed by rule
// analysis: the maximum n such that f s1 ... sn occurs in any rule.
func (a *Alphabet) SetArity(name string, arity int) {
	if cur, ok := a.arities[name]; !ok || arity > cur {
		a.arities[name] = arity
	}
}

// Arity returns the recorded arity of name, or 0 if never set.
func (a *Alphabet) Arity(name string) int {
	return a.arities[name]
}

// Upped returns the f# companion symbol's name for a defined symbol
// f. The upped symbol is declared lazily in the same alphabet with
// the same type as f, the first time it is requested.
func (a *Alphabet) Upped(name string) string {
	upped := name + UppedSuffix
	if _, ok := a.types[upped]; !ok {
		if typ, ok := a.types[name]; ok {
			a.Declare(upped, typ)
			a.arities[upped] = a.arities[name]
		}
	}
	return upped
}

// IsUpped reports whether name is an f# companion symbol.
func IsUpped(name string) bool {
	return len(name) > 0 && name[len(name)-1] == '#'
}

// Base returns the original symbol name for an upped f#, or name
// itself if it is not upped.
func Base(name string) string {
	if IsUpped(name) {
		return name[:len(name)-1]
	}
	return name
}

// SortedSymbols returns every declared symbol in lexical order,
// useful for deterministic iteration in processors that must not
// depend on map order.
func (a *Alphabet) SortedSymbols() []string {
	out := a.Symbols()
	sort.Strings(out)
	return out
}
