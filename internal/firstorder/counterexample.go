package firstorder

import (
	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// SingleSortedAlphabet reports whether every symbol's output type, at
// the end of its curried argument chain, is the same base sort,
// grounded on FirstOrderSplitter::single_sorted_alphabet. A single
// sorted alphabet is one of the two conditions under which a
// first-order NO counterexample can be lifted to the full AFSM
// without further checking (the other being that the first-order
// part is an orthogonal sub-system of the whole).
func SingleSortedAlphabet(alph *alphabet.Alphabet) bool {
	var sort string
	seen := false
	for _, name := range alph.Symbols() {
		typ, _ := alph.Lookup(name)
		_, out := term.InputsAndOutput(typ)
		base, ok := out.(term.BaseType)
		if !ok {
			return false
		}
		if !seen {
			sort, seen = base.Name, true
			continue
		}
		if base.Name != sort {
			return false
		}
	}
	return true
}

// LiftCounterexample decides whether a NO verdict obtained for the
// first-order part may be reported as a NO verdict for the whole
// system: a first-order rewrite sequence witnessing non-termination
// of the first-order rules is still a valid rewrite sequence of the
// full AFSM, so it lifts whenever the first-order part's behaviour
// cannot be disturbed by the higher-order rules around it. This is
// conservative: it only accepts the single-sorted-alphabet condition
// (orthogonality is not checked here, since establishing it requires
// inspecting overlaps between the first-order and higher-order rules,
// which belongs to the caller driving both splits together).
func LiftCounterexample(alph *alphabet.Alphabet) bool {
	return SingleSortedAlphabet(alph)
}
