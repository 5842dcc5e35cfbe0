// Package trs reads the first-order competition ".trs" text format's
// input side: a "(VAR ...)" block, a "(RULES ...)" block, and an
// optional "(STRATEGY INNERMOST|FULL)" block, grounded on
// inputreaderfo.h/.cpp's InputReaderFO::read_text in original_source/.
// It is the dual of internal/firstorder.WriteTRS, which only writes
// this format; nothing in the original module read it back in until
// now. Like internal/parse/afsm, it uses a participle grammar rather
// than a hand-rolled scanner, reusing that package's stateful-lexer
// convention.
package trs

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var termLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `\(\*([^*]|\*[^)])*\*\)`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Ident", Pattern: `[A-Za-z0-9_+\-*/<>=!?']+`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// TermExpr is a first-order term: a head name optionally followed by
// a parenthesised, comma-separated argument list.
type TermExpr struct {
	Head string      `@Ident`
	Args []*TermExpr `( "(" (@@ ("," @@)*)? ")" )?`
}

// RuleExpr is one "lhs -> rhs" line of a (RULES ...) block.
type RuleExpr struct {
	Left  TermExpr `@@ "->"`
	Right TermExpr `@@`
}

// Grammar builds the participle parsers used by Parse.
type Grammar struct {
	term *participle.Parser[TermExpr]
	rule *participle.Parser[RuleExpr]
}

// NewGrammar builds both sub-parsers once; callers should construct a
// single Grammar and reuse it.
func NewGrammar() (*Grammar, error) {
	opts := []participle.Option{
		participle.Lexer(termLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(4),
	}
	term, err := participle.Build[TermExpr](opts...)
	if err != nil {
		return nil, err
	}
	rule, err := participle.Build[RuleExpr](opts...)
	if err != nil {
		return nil, err
	}
	return &Grammar{term: term, rule: rule}, nil
}
