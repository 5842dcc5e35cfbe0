// Package afsm parses the native AFSM surface syntax described in the
// external-interfaces section: an alphabet block (one "symbol : type"
// declaration per line), a blank line, then a rules block (one
// "lhs => rhs" per line), grounded on the teacher's participle-based
// grammar.KansoLexer/parser.ParseFile pattern (stateful lexer +
// participle.Build[T], reusing UseLookahead for the ambiguous
// application/bracket forms) rather than a hand-rolled scanner.
package afsm

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// termLexer tokenises both the type and term sub-grammars. Identifiers
// cover symbol/variable/meta-variable names; the term grammar
// disambiguates meta-variables from constants/variables by case
// during elaboration, not during lexing.
var termLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Arrow", Pattern: `->|=>`},
	{Name: "Lambda", Pattern: `\\`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_']*`},
	{Name: "Punct", Pattern: `[():,\[\].]`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n`},
})

// TypeExpr is the surface grammar for a (possibly higher-order) type:
// a right-associative arrow chain over base names and parenthesised
// sub-expressions.
type TypeExpr struct {
	Left  *TypeAtom  `@@`
	Arrow *TypeExpr  `( "->" @@ )?`
}

// TypeAtom is a base sort name or a parenthesised TypeExpr.
type TypeAtom struct {
	Name   string     `  @Ident`
	Nested *TypeExpr  `| "(" @@ ")"`
}

// SymbolDecl is one alphabet-block line: "name : type".
type SymbolDecl struct {
	Name string    `@Ident ":"`
	Type TypeExpr  `@@`
}

// TermExpr is the surface grammar for a term: an application spine of
// TermAtoms, left-associative via juxtaposition-free comma-separated
// argument lists "head(arg1,arg2,...)", plus abstraction "\x:type.body" and
// meta-application "Z[arg1,...]".
type TermExpr struct {
	Lambda *LambdaExpr `  @@`
	Atom   *TermAtom   `| @@`
}

// LambdaExpr is "\x:type.body". The bound variable's type is written
// explicitly rather than inferred, keeping elaboration syntax-directed
// (no unification pass over the surface AST).
type LambdaExpr struct {
	Bound string    `"\\" @Ident ":"`
	Type  TypeExpr  `@@ "."`
	Body  *TermExpr `@@`
}

// TermAtom is a head (identifier) optionally followed by a bracketed
// meta-application argument list "[...]" and/or a parenthesised
// curried application argument list "(...)"; both may be present when
// a meta-application is itself applied to further arguments (rare but
// not excluded by the grammar).
type TermAtom struct {
	Head      string      `@Ident`
	MetaArgs  []*TermExpr `( "[" (@@ ("," @@)*)? "]" )?`
	CallArgs  []*TermExpr `( "(" (@@ ("," @@)*)? ")" )?`
}

// RuleDecl is one rules-block line: "lhs => rhs".
type RuleDecl struct {
	Left  TermExpr `@@ "=>"`
	Right TermExpr `@@`
}

// Parser holds the participle parsers that Parse uses for
// alphabet-block lines and rules-block lines. Its fields are
// unexported.
type Parser struct {
	symbol *participle.Parser[SymbolDecl]
	rule   *participle.Parser[RuleDecl]
}

// NewParser builds both sub-parsers once; participle.Build is not
// cheap, so callers should construct a single Parser and reuse it.
func NewParser() (*Parser, error) {
	opts := []participle.Option{
		participle.Lexer(termLexer),
		participle.Elide("Whitespace", "Newline", "Comment"),
		participle.UseLookahead(4),
	}
	symbol, err := participle.Build[SymbolDecl](opts...)
	if err != nil {
		return nil, err
	}
	rule, err := participle.Build[RuleDecl](opts...)
	if err != nil {
		return nil, err
	}
	return &Parser{symbol: symbol, rule: rule}, nil
}
