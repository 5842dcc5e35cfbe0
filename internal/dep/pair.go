// Package dep constructs dependency pairs from an analysed rule set
// (spec §4.3), grounded on dependencypair.h/.cpp and the DP-generation
// half of dpframework.h.
package dep

import (
	"fmt"

	"github.com/hezzel/wanda-sub001/internal/term"
)

// Style distinguishes a normal dependency pair from a headmost one.
type Style int

const (
	StyleNormal Style = iota
	StyleHeadmost
)

// Pair is a single dependency pair left ~~> right.
type Pair struct {
	Left, Right term.Term
	Style       Style

	// noneating records, per meta-variable index, a bitmask of
	// argument positions at which that meta-variable is known not to
	// "eat" (erase) the arguments substituted into it.
	noneating map[int]uint32

	// id is a stable label used by the dependency graph and proof
	// output to refer to this pair without relying on pointer
	// identity (the Go port uses slices of value Pairs, not the
	// garbage-collected PTerm* graph the original manages by hand).
	id int
}

var nextID = struct {
	n int
}{n: 0}

// NewPair builds a fresh pair, assigning it the next sequential id.
func NewPair(left, right term.Term, style Style) *Pair {
	nextID.n++
	return &Pair{Left: left, Right: right, Style: style, noneating: map[int]uint32{}, id: nextID.n}
}

// ID returns the pair's stable label.
func (p *Pair) ID() int { return p.id }

// SetNoneating records that meta-variable Z is known not to eat
// position pos. Positions beyond bit 30 are silently dropped, mirroring
// the original's 31-bit bitmask cap (set_noneating's "if pos >= 31
// return").
func (p *Pair) SetNoneating(z, pos int) {
	if pos >= 31 {
		return
	}
	p.noneating[z] |= 1 << uint(pos)
}

// QueryNoneating reports whether meta-variable Z is marked non-eating
// at pos.
//
// This deliberately reproduces a bug present in the reference tool:
// its C++ condition was
//
//	noneating[Z] & (1 << pos) != 0
//
// which, because != binds tighter than & in C++, actually parses as
// noneating[Z] & ((1 << pos) != 0) — and since (1 << pos) != 0 is true
// for every pos in range, this collapses to testing only bit 0 of the
// mask regardless of which pos was asked about. Go's own precedence
// would not reproduce this (here & binds tighter than !=, and the
// types involved wouldn't even compile without an explicit bool-to-int
// conversion), so the effective behaviour is hand-reproduced directly:
// every call answers as if pos were 0. Left unfixed per the open
// question on preserving rather than silently correcting questionable
// behaviour inherited from the tool this was ported from.
func (p *Pair) QueryNoneating(z, pos int) bool {
	if pos >= 31 {
		return false
	}
	mask, ok := p.noneating[z]
	if !ok {
		return false
	}
	return mask&1 != 0
}

// NoneatingMapping returns the raw per-meta-variable bitmasks.
func (p *Pair) NoneatingMapping() map[int]uint32 {
	return p.noneating
}

// SetHeadmost toggles between the two pair styles.
func (p *Pair) SetHeadmost(v bool) {
	if v {
		p.Style = StyleHeadmost
	} else {
		p.Style = StyleNormal
	}
}

// IsHeadmost reports whether p is a headmost dependency pair.
func (p *Pair) IsHeadmost() bool { return p.Style == StyleHeadmost }

func (p *Pair) String() string {
	s := fmt.Sprintf("%s ~~> %s", p.Left, p.Right)
	if p.Style == StyleHeadmost {
		s += " (left-most)"
	}
	return s
}

// Set is an ordered collection of dependency pairs, the Go analogue
// of the original's DPSet (vector<DependencyPair*>).
type Set []*Pair

// Clone returns a shallow copy of the slice header; individual *Pair
// values are shared, matching DependencyGraph's "given, not copied"
// contract for the pairs it is handed.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	copy(out, s)
	return out
}

// Remove returns s with every pair in dead excluded, by id.
func (s Set) Remove(dead Set) Set {
	drop := map[int]bool{}
	for _, p := range dead {
		drop[p.id] = true
	}
	out := make(Set, 0, len(s))
	for _, p := range s {
		if !drop[p.id] {
			out = append(out, p)
		}
	}
	return out
}
