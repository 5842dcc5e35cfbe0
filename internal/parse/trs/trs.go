package trs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// Result is the outcome of parsing one .trs file: a single-sorted
// alphabet (the format carries no sort names, matching read_text's
// "new DataType(\"o\")" for every variable), its rules, and whether a
// "(STRATEGY INNERMOST)" block requested innermost-only termination.
// No sort inference is done, here or elsewhere: every symbol gets the
// single sort o, and Innermost is only passed on to the first-order
// delegation.
type Result struct {
	Alphabet  *alphabet.Alphabet
	Rules     rule.Set
	Innermost bool
}

var sort = term.BaseType{Name: "o"}

// Parse reads source as a "(VAR ...)"/"(RULES ...)"/optional
// "(STRATEGY ...)" document.
func Parse(source string) (Result, error) {
	parts, order, err := splitParts(source)
	if err != nil {
		return Result{}, err
	}
	if _, ok := parts["RULES"]; !ok {
		return Result{}, errors.New("trs: RULES not given")
	}
	if _, ok := parts["VAR"]; !ok {
		return Result{}, errors.New("trs: VAR not given")
	}
	seen := map[string]bool{}
	for _, name := range order {
		if seen[name] {
			return Result{}, errors.Errorf("trs: part %q given more than once", name)
		}
		seen[name] = true
		switch name {
		case "VAR", "RULES", "STRATEGY":
		default:
			return Result{}, errors.Errorf("trs: unexpected part %q", name)
		}
	}

	innermost := false
	if strat, ok := parts["STRATEGY"]; ok {
		switch strings.TrimSpace(strat) {
		case "INNERMOST":
			innermost = true
		case "FULL":
			innermost = false
		default:
			return Result{}, errors.Errorf("trs: unexpected strategy %q", strat)
		}
	}

	vars := map[string]bool{}
	for _, v := range strings.Fields(parts["VAR"]) {
		vars[v] = true
	}

	g, err := NewGrammar()
	if err != nil {
		return Result{}, errors.Wrap(err, "trs: building grammar")
	}

	var rawRules []*RuleExpr
	for _, line := range splitRuleLines(parts["RULES"]) {
		r, err := g.rule.ParseString("", line)
		if err != nil {
			return Result{}, errors.Wrapf(err, "trs: parsing rule %q", line)
		}
		rawRules = append(rawRules, r)
	}

	alph := alphabet.New()
	arities := map[string]int{}
	for _, r := range rawRules {
		collectArities(&r.Left, vars, arities)
		collectArities(&r.Right, vars, arities)
	}
	for name, n := range arities {
		alph.Declare(name, curried(n))
		alph.SetArity(name, n)
	}

	var rs rule.Set
	for i, r := range rawRules {
		e := newElaborator(alph, vars)
		left, err := e.term(&r.Left)
		if err != nil {
			return Result{}, errors.Wrapf(err, "trs: left-hand side of rule %d", i+1)
		}
		right, err := e.term(&r.Right)
		if err != nil {
			return Result{}, errors.Wrapf(err, "trs: right-hand side of rule %d", i+1)
		}
		rs = append(rs, rule.MatchRule{Name: fmt.Sprintf("r%d", i+1), Left: left, Right: right})
	}

	return Result{Alphabet: alph, Rules: rs, Innermost: innermost}, nil
}

func curried(arity int) term.Type {
	t := term.Type(sort)
	for i := 0; i < arity; i++ {
		t = term.ArrowType{Left: sort, Right: t}
	}
	return t
}

func collectArities(t *TermExpr, vars map[string]bool, arities map[string]int) {
	if t == nil || vars[t.Head] {
		return
	}
	if cur, ok := arities[t.Head]; !ok || len(t.Args) > cur {
		arities[t.Head] = len(t.Args)
	}
	for _, a := range t.Args {
		collectArities(a, vars, arities)
	}
}

// splitParts groups source into "(NAME ... )" top-level parenthesised
// blocks, mirroring split_parts' handling of the format's own
// peculiar bracketing (balanced parentheses, the part's name is the
// first token after the opening paren). order preserves the order
// the parts appeared in, for the "at most one of each, no stray
// parts" check Parse performs.
func splitParts(source string) (map[string]string, []string, error) {
	parts := map[string]string{}
	var order []string
	runes := []rune(source)
	i := 0
	for i < len(runes) {
		if runes[i] != '(' {
			if runes[i] != ' ' && runes[i] != '\t' && runes[i] != '\n' && runes[i] != '\r' {
				return nil, nil, errors.Errorf("trs: unexpected character %q outside any (...) part", runes[i])
			}
			i++
			continue
		}
		depth := 1
		j := i + 1
		for j < len(runes) && depth > 0 {
			switch runes[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
			j++
		}
		if depth != 0 {
			return nil, nil, errors.New("trs: unbalanced parentheses")
		}
		body := strings.TrimSpace(string(runes[i+1 : j-1]))
		name, rest, _ := cutField(body)
		parts[name] = rest
		order = append(order, name)
		i = j
	}
	return parts, order, nil
}

func cutField(s string) (head, rest string, ok bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	idx := strings.IndexAny(s, " \t\r\n")
	if idx < 0 {
		return s, "", s != ""
	}
	return s[:idx], s[idx+1:], true
}

// splitRuleLines splits a RULES block body into non-empty lines,
// tolerating rules that happen to span no more than one line (the
// format's own reader, read_text, also works strictly line by line).
func splitRuleLines(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
