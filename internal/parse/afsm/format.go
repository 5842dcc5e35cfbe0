package afsm

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// Result is the outcome of parsing one AFSM file: the declared
// alphabet together with the rule set elaborated against it.
type Result struct {
	Alphabet *alphabet.Alphabet
	Rules    rule.Set
}

// Parse reads the AFSM surface syntax from source: an alphabet block
// (one "symbol : type" declaration per line), a blank line, then a
// rules block (one "lhs => rhs" per line, terminated by a blank line
// or end of input). Trailing content after the rules block's
// terminating blank line is ignored, matching the format's own
// "blank line terminator" description.
func Parse(source string) (Result, error) {
	blocks := splitBlocks(source)
	if len(blocks) < 2 {
		return Result{}, errors.New("afsm: expected an alphabet block, a blank line, and a rules block")
	}

	p, err := NewParser()
	if err != nil {
		return Result{}, errors.Wrap(err, "afsm: building grammar")
	}

	decls := declarations{symbols: map[string]term.Type{}, metas: map[string]term.Type{}}
	alph := alphabet.New()
	for _, line := range blocks[0] {
		decl, err := p.symbol.ParseString("", line)
		if err != nil {
			return Result{}, errors.Wrapf(err, "afsm: parsing symbol declaration %q", line)
		}
		typ := elaborateType(decl.Type)
		if isMetaName(decl.Name) {
			decls.metas[decl.Name] = typ
			continue
		}
		decls.symbols[decl.Name] = typ
		alph.Declare(decl.Name, typ)
		alph.SetArity(decl.Name, term.Arity(typ))
	}

	var rs rule.Set
	for i, line := range blocks[1] {
		rawRule, err := p.rule.ParseString("", line)
		if err != nil {
			return Result{}, errors.Wrapf(err, "afsm: parsing rule %q", line)
		}
		e := newElaborator(decls)
		left, err := e.term(&rawRule.Left)
		if err != nil {
			return Result{}, errors.Wrapf(err, "afsm: elaborating left-hand side of rule %d", i+1)
		}
		right, err := e.term(&rawRule.Right)
		if err != nil {
			return Result{}, errors.Wrapf(err, "afsm: elaborating right-hand side of rule %d", i+1)
		}
		rs = append(rs, rule.MatchRule{Name: fmt.Sprintf("r%d", i+1), Left: left, Right: right})
	}

	return Result{Alphabet: alph, Rules: rs}, nil
}

// splitBlocks groups source's non-blank lines into consecutive blocks
// separated by one-or-more blank lines, discarding comment lines
// (those starting with '#') and leading/trailing whitespace.
func splitBlocks(source string) [][]string {
	var blocks [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}
	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}
