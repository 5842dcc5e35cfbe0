// Package sexp implements a minimal s-expression reader, adapted from
// the teacher's pkg/sexp (SExp/List/Symbol node shapes) and
// pkg/util/source/sexp (the recursive-descent Parser driving them),
// for use by internal/parse/ari's ARI reader. Source-span tracking
// (the teacher's SourceMap) is not carried over: ARI error messages
// only need to name the offending s-expression's text, not its
// original line/column, so this package keeps the simpler two-type
// tree and drops the source-map machinery.
package sexp

import (
	"fmt"
	"strings"
	"unicode"
)

// SExp is either a List of zero or more SExps or a terminating
// Symbol, mirroring the teacher's sexp.SExp interface.
type SExp interface {
	IsList() bool
	IsSymbol() bool
	String() string
}

// List is a parenthesised sequence of s-expressions.
type List struct {
	Elements []SExp
}

// IsList implements SExp.
func (*List) IsList() bool { return true }

// IsSymbol implements SExp.
func (*List) IsSymbol() bool { return false }

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// MatchSymbols reports whether l has at least n elements and its
// first len(symbols) elements are symbols equal to the given strings,
// mirroring the teacher's List.MatchSymbols.
func (l *List) MatchSymbols(n int, symbols ...string) bool {
	if len(l.Elements) < n || len(symbols) > n {
		return false
	}
	for i, want := range symbols {
		sym, ok := l.Elements[i].(*Symbol)
		if !ok || sym.Value != want {
			return false
		}
	}
	return true
}

// Symbol is an atomic token.
type Symbol struct {
	Value string
}

// IsList implements SExp.
func (*Symbol) IsList() bool { return false }

// IsSymbol implements SExp.
func (*Symbol) IsSymbol() bool { return true }

func (s *Symbol) String() string { return s.Value }

// parser drives a single left-to-right pass over text, grounded on
// pkg/util/source/sexp.Parser's index-based recursive descent.
type parser struct {
	text  []rune
	index int
}

// Parse reads exactly one s-expression from source, erroring if
// anything other than trailing whitespace follows it.
func Parse(source string) (SExp, error) {
	p := &parser{text: []rune(source)}
	e, err := p.parseOne()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.index != len(p.text) {
		return nil, fmt.Errorf("sexp: unexpected trailing input at offset %d", p.index)
	}
	return e, nil
}

// ParseAll reads zero or more top-level s-expressions from source,
// e.g. an ARI file's sequence of (format ...)/(fun ...)/(rule ...)
// declarations.
func ParseAll(source string) ([]SExp, error) {
	p := &parser{text: []rune(source)}
	var out []SExp
	for {
		p.skipSpace()
		if p.index >= len(p.text) {
			return out, nil
		}
		e, err := p.parseOne()
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
}

func (p *parser) skipSpace() {
	for p.index < len(p.text) {
		r := p.text[p.index]
		if r == ';' {
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
			continue
		}
		if !unicode.IsSpace(r) {
			return
		}
		p.index++
	}
}

func (p *parser) parseOne() (SExp, error) {
	p.skipSpace()
	if p.index >= len(p.text) {
		return nil, fmt.Errorf("sexp: unexpected end of input")
	}
	if p.text[p.index] == '(' {
		return p.parseList()
	}
	return p.parseSymbol()
}

func (p *parser) parseList() (SExp, error) {
	p.index++ // consume '('
	var elements []SExp
	for {
		p.skipSpace()
		if p.index >= len(p.text) {
			return nil, fmt.Errorf("sexp: unterminated list")
		}
		if p.text[p.index] == ')' {
			p.index++
			return &List{Elements: elements}, nil
		}
		e, err := p.parseOne()
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
}

func (p *parser) parseSymbol() (SExp, error) {
	start := p.index
	for p.index < len(p.text) && isSymbolRune(p.text[p.index]) {
		p.index++
	}
	if p.index == start {
		return nil, fmt.Errorf("sexp: unexpected character %q at offset %d", p.text[p.index], p.index)
	}
	return &Symbol{Value: string(p.text[start:p.index])}, nil
}

func isSymbolRune(r rune) bool {
	return !unicode.IsSpace(r) && r != '(' && r != ')' && r != ';'
}
