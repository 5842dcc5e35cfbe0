package nonterm

import (
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// LambdaCalculus reports whether r encodes the beta-reduction rule of
// the untyped lambda calculus: a single base sort D, an "apply"
// combinator App : D -> D -> D, an "abstraction" combinator
// Abs : (D -> D) -> D embedding an actual function as data, and a
// rule of the shape
//
//	App(Abs(Z), Y) -> Z[Y]
//
// where Z is a meta-variable of type D -> D. A system containing such
// a rule can represent and reduce any untyped lambda term (in
// particular the looping combinator (\x.xx)(\x.xx)), so it is
// automatically flagged non-terminating regardless of what its other
// rules do.
func LambdaCalculus(r rule.MatchRule) bool {
	appHead, appArgs := term.Spine(r.Left)
	if len(appArgs) != 2 {
		return false
	}
	appConst, ok := appHead.(term.Constant)
	if !ok {
		return false
	}
	absHead, absArgs := term.Spine(appArgs[0])
	if len(absArgs) != 1 {
		return false
	}
	absConst, ok := absHead.(term.Constant)
	if !ok || absConst.Name == appConst.Name {
		return false
	}
	z, ok := absArgs[0].(term.MetaApplication)
	if !ok || len(z.Args) != 0 {
		return false
	}
	y := appArgs[1]
	yMeta, ok := y.(term.MetaApplication)
	if !ok || len(yMeta.Args) != 0 {
		return false
	}

	d := yMeta.Meta.Typ
	if !appConst.Typ.Equals(arrow(d, arrow(d, d))) {
		return false
	}
	if !absConst.Typ.Equals(arrow(arrow(d, d), d)) {
		return false
	}
	if !z.Meta.Typ.Equals(arrow(d, d)) {
		return false
	}

	want := term.MetaApplication{Meta: z.Meta, Args: []term.Term{yMeta}}
	return term.Equals(r.Right, want)
}

func arrow(l, r term.Type) term.Type { return term.ArrowType{Left: l, Right: r} }
