package depgraph

import "github.com/hezzel/wanda-sub001/internal/term"

// computeEatingInfo fills noneatingPos: noneatingPos[f][k] is true
// unless some rule shows that position k of f's arguments can have a
// variable eaten away by reduction. Grounded on get_eating_info's
// fixed-point loop.
func (g *Graph) computeEatingInfo() {
	g.noneatingPos = map[string][]bool{}
	for _, name := range g.alph.Symbols() {
		n := g.alph.Arity(name)
		positions := make([]bool, n)
		for i := range positions {
			positions[i] = true
		}
		g.noneatingPos[name] = positions
	}

	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			head, args := term.Spine(r.Left)
			fc, ok := head.(term.Constant)
			if !ok {
				continue
			}
			positions := g.noneatingPos[fc.Name]
			for k := 0; k < len(positions) && k < len(args); k++ {
				if !positions[k] {
					continue
				}
				for z := range term.FreeMetaVariables(args[k]) {
					if !g.AtNonEatingPos(r.Right, z.Index) {
						positions[k] = false
						changed = true
						break
					}
				}
			}
		}
	}
}

// computeReductionInfo fills canReduceTo, grounded on
// get_reduction_info: seeded with identity, extended by each rule's
// immediate LHS-head -> RHS-head relationship, then transitively
// closed over all symbols plus the pseudo-heads #ABS and #VAR.
func (g *Graph) computeReductionInfo() {
	names := g.alph.Symbols()
	g.canReduceTo = map[[2]string]bool{}
	for _, a := range names {
		for _, b := range names {
			g.canReduceTo[[2]string{a, b}] = a == b
		}
		g.canReduceTo[[2]string{a, pseudoAbs}] = false
		g.canReduceTo[[2]string{a, pseudoVar}] = false
	}

	for _, r := range g.rules {
		lhead, _ := term.Spine(r.Left)
		lc, ok := lhead.(term.Constant)
		if !ok {
			continue
		}
		right := r.Right
		if _, isAbs := right.(term.Abstraction); isAbs {
			g.canReduceTo[[2]string{lc.Name, pseudoAbs}] = true
			for {
				abs, isAbs := right.(term.Abstraction)
				if !isAbs {
					break
				}
				right = abs.Body
			}
		}
		rhead, _ := term.Spine(right)
		switch rh := rhead.(type) {
		case term.Constant:
			g.canReduceTo[[2]string{lc.Name, rh.Name}] = true
		case term.MetaApplication, term.Variable:
			for _, name := range names {
				g.canReduceTo[[2]string{lc.Name, name}] = true
			}
			g.canReduceTo[[2]string{lc.Name, pseudoAbs}] = true
			g.canReduceTo[[2]string{lc.Name, pseudoVar}] = true
		}
	}

	pseudos := append(append([]string{}, names...), pseudoVar, pseudoAbs)
	changed := true
	for changed {
		changed = false
		for _, i := range names {
			for _, j := range names {
				if i == j || !g.canReduceTo[[2]string{i, j}] {
					continue
				}
				for _, k := range pseudos {
					if g.canReduceTo[[2]string{j, k}] && !g.canReduceTo[[2]string{i, k}] {
						g.canReduceTo[[2]string{i, k}] = true
						changed = true
					}
				}
			}
		}
	}
}
