// Package atrs reads an untyped applicative TRS: a "(VAR ...)" block
// and a "(RULES ...)" block exactly like internal/parse/trs, except
// that function symbols and variables alike carry no declared type,
// and a variable may itself be applied (the "applicative" part).
// Types are reconstructed by unification across every rule at once
// and any type variable still free afterwards is monomorphised to a
// fresh base sort, grounded on InputReaderATRS::read_as_afs in
// inputreaderatrs.cpp/original_source (whose own Typer class is not
// among the retrieved original sources; this package's unifier is a
// good-faith reimplementation of the "unify, then monomorphise"
// behaviour that class is documented to perform, reusing
// internal/term's existing Unify/TypeSubstitution rather than
// building a second one, see DESIGN.md). It is the reader
// spec.md §6 calls "polymorphic type inference then monomorphisation"
// for this format.
package atrs

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var termLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `\(\*([^*]|\*[^)])*\*\)`},
	{Name: "Ident", Pattern: `[A-Za-z0-9_+\-*/<>=!?']+`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// TermExpr is a curried application term: a head name optionally
// followed by a single parenthesised, comma-separated argument list.
// Chained reapplication ("f(x)(y)") is not produced by the corpus
// this reader targets and is not accepted.
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
	rule *participle.Parser[RuleExpr]
}

// NewGrammar builds the rule sub-parser once; callers should
// construct a single Grammar and reuse it.
func NewGrammar() (*Grammar, error) {
	opts := []participle.Option{
		participle.Lexer(termLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(4),
	}
	rule, err := participle.Build[RuleExpr](opts...)
	if err != nil {
		return nil, err
	}
	return &Grammar{rule: rule}, nil
}
