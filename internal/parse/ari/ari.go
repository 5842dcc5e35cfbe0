// Package ari reads the ARI (algebraic rewriting interchange) format:
// a sequence of top-level s-expressions declaring a format tag,
// sorts, function symbols with their (possibly curried) types, and
// rewrite rules, as used by the termination-competition's first-order
// and many-sorted tracks. Grounded on inputreaderari.h/.cpp in
// original_source/, built atop internal/parse/sexp exactly as the
// teacher's pkg/corset builds its reader atop pkg/sexp.
package ari

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/parse/sexp"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// Result is the outcome of parsing one ARI file.
type Result struct {
	Alphabet *alphabet.Alphabet
	Rules    rule.Set
	// Format is the declared (format ...) tag, e.g. "MS" or "FO";
	// callers that care whether the system is many-sorted can inspect
	// it, but parsing itself does not depend on its value.
	Format string
}

// Parse reads source as a sequence of ARI top-level declarations.
func Parse(source string) (Result, error) {
	exprs, err := sexp.ParseAll(source)
	if err != nil {
		return Result{}, errors.Wrap(err, "ari: s-expression syntax")
	}

	alph := alphabet.New()
	sorts := map[string]bool{}
	var rawRules []*sexp.List
	var format string

	for _, e := range exprs {
		l, ok := e.(*sexp.List)
		if !ok || len(l.Elements) == 0 {
			return Result{}, errors.New("ari: every top-level form must be a non-empty list")
		}
		tag, ok := l.Elements[0].(*sexp.Symbol)
		if !ok {
			return Result{}, errors.New("ari: top-level list must begin with a tag symbol")
		}
		switch tag.Value {
		case "format":
			if len(l.Elements) < 2 {
				return Result{}, errors.New("ari: (format ...) needs an argument")
			}
			sym, ok := l.Elements[1].(*sexp.Symbol)
			if !ok {
				return Result{}, errors.New("ari: (format ...) argument must be a symbol")
			}
			format = sym.Value
		case "sort":
			if len(l.Elements) != 2 {
				return Result{}, errors.New("ari: (sort name) takes exactly one argument")
			}
			sym, ok := l.Elements[1].(*sexp.Symbol)
			if !ok {
				return Result{}, errors.New("ari: sort name must be a symbol")
			}
			sorts[sym.Value] = true
		case "fun":
			if len(l.Elements) != 3 {
				return Result{}, errors.New("ari: (fun name type) takes exactly two arguments")
			}
			name, ok := l.Elements[1].(*sexp.Symbol)
			if !ok {
				return Result{}, errors.New("ari: function name must be a symbol")
			}
			typ, err := parseTypeTree(l.Elements[2], sorts)
			if err != nil {
				return Result{}, errors.Wrapf(err, "ari: type of %q", name.Value)
			}
			alph.Declare(name.Value, typ)
			alph.SetArity(name.Value, term.Arity(typ))
		case "rule":
			if len(l.Elements) != 3 {
				return Result{}, errors.New("ari: (rule lhs rhs) takes exactly two arguments")
			}
			rawRules = append(rawRules, l)
		default:
			// Unrecognised top-level forms (e.g. metadata comments
			// encoded as declarations) are ignored, matching the
			// tolerant-unknown-form policy the rest of this module
			// uses for surface formats it does not fully model.
		}
	}

	var rs rule.Set
	for i, l := range rawRules {
		e := newElaborator(alph)
		left, err := e.term(l.Elements[1])
		if err != nil {
			return Result{}, errors.Wrapf(err, "ari: left-hand side of rule %d", i+1)
		}
		right, err := e.term(l.Elements[2])
		if err != nil {
			return Result{}, errors.Wrapf(err, "ari: right-hand side of rule %d", i+1)
		}
		rs = append(rs, rule.MatchRule{Name: fmt.Sprintf("r%d", i+1), Left: left, Right: right})
	}

	return Result{Alphabet: alph, Rules: rs, Format: format}, nil
}

// parseTypeTree reads a (-> in1 in2 ... out) type tree, or a bare
// sort symbol for a 0-ary type, declaring any sort mentioned but not
// previously (sort ...) declared as a base type (ARI permits using a
// sort before its declaration appears).
func parseTypeTree(e sexp.SExp, sorts map[string]bool) (term.Type, error) {
	switch n := e.(type) {
	case *sexp.Symbol:
		sorts[n.Value] = true
		return term.BaseType{Name: n.Value}, nil
	case *sexp.List:
		if !n.MatchSymbols(1, "->") {
			return nil, errors.New("type tree list must begin with \"->\"")
		}
		if len(n.Elements) < 3 {
			return nil, errors.New("(-> ...) needs at least one input and an output sort")
		}
		parts := n.Elements[1:]
		var types []term.Type
		for _, p := range parts {
			t, err := parseTypeTree(p, sorts)
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
		out := types[len(types)-1]
		for i := len(types) - 2; i >= 0; i-- {
			out = term.ArrowType{Left: types[i], Right: out}
		}
		return out, nil
	default:
		return nil, errors.New("malformed type tree")
	}
}
