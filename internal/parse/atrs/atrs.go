package atrs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// Result is the outcome of parsing and monomorphising one ATRS file.
type Result struct {
	Alphabet *alphabet.Alphabet
	Rules    rule.Set
}

// Parse reads source as a "(VAR ...)"/"(RULES ...)" applicative
// system, infers a monomorphic type for every symbol and rule-local
// variable by unification, and elaborates the result into an AFSM
// rule set.
func Parse(source string) (Result, error) {
	parts, err := splitParts(source)
	if err != nil {
		return Result{}, err
	}
	rtext, ok := parts["RULES"]
	if !ok {
		return Result{}, errors.New("atrs: RULES part of file missing or strange")
	}

	vars := map[string]bool{}
	for _, v := range strings.Fields(parts["VAR"]) {
		vars[v] = true
	}

	g, err := NewGrammar()
	if err != nil {
		return Result{}, errors.Wrap(err, "atrs: building grammar")
	}

	var rawRules []*RuleExpr
	for _, line := range splitLines(rtext) {
		r, err := g.rule.ParseString("", line)
		if err != nil {
			return Result{}, errors.Wrapf(err, "atrs: parsing rule %q", line)
		}
		rawRules = append(rawRules, r)
	}
	if len(rawRules) == 0 {
		return Result{}, errors.New("atrs: no rules found")
	}

	tc := newTypeChecker()
	locals := make([]map[string]term.Type, len(rawRules))
	for i, r := range rawRules {
		local := map[string]term.Type{}
		locals[i] = local
		lt, err := tc.visit(&r.Left, vars, local)
		if err != nil {
			return Result{}, errors.Wrapf(err, "atrs: rule %d", i+1)
		}
		rt, err := tc.visit(&r.Right, vars, local)
		if err != nil {
			return Result{}, errors.Wrapf(err, "atrs: rule %d", i+1)
		}
		if err := tc.env.unify(lt, rt); err != nil {
			return Result{}, errors.Wrapf(err, "atrs: rule %d: left- and right-hand sides disagree in type", i+1)
		}
	}

	mono := newMonomorphiser()
	alph := alphabet.New()
	for name, typ := range tc.symbols {
		resolved := mono.resolve(tc.env, typ)
		alph.Declare(name, resolved)
		alph.SetArity(name, term.Arity(resolved))
	}

	var rs rule.Set
	for i, r := range rawRules {
		e := &elaborator{alph: alph, vars: vars, local: locals[i], env: tc.env, mono: mono, metaByName: map[string]term.MetaVariable{}}
		left, err := e.term(&r.Left)
		if err != nil {
			return Result{}, errors.Wrapf(err, "atrs: left-hand side of rule %d", i+1)
		}
		right, err := e.term(&r.Right)
		if err != nil {
			return Result{}, errors.Wrapf(err, "atrs: right-hand side of rule %d", i+1)
		}
		rs = append(rs, rule.MatchRule{Name: fmt.Sprintf("r%d", i+1), Left: left, Right: right})
	}

	return Result{Alphabet: alph, Rules: rs}, nil
}

// splitParts groups source into its top-level "(NAME ... )" blocks,
// identical in shape to internal/parse/trs's splitParts; duplicated
// rather than shared because the two original readers
// (InputReaderFO, InputReaderATRS) each carry their own copy of this
// logic too.
func splitParts(source string) (map[string]string, error) {
	parts := map[string]string{}
	runes := []rune(source)
	i := 0
	for i < len(runes) {
		if runes[i] != '(' {
			if runes[i] != ' ' && runes[i] != '\t' && runes[i] != '\n' && runes[i] != '\r' {
				return nil, errors.Errorf("atrs: unexpected character %q outside any (...) part", runes[i])
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
			return nil, errors.New("atrs: unbalanced parentheses")
		}
		body := strings.TrimSpace(string(runes[i+1 : j-1]))
		idx := strings.IndexAny(body, " \t\r\n")
		if idx < 0 {
			parts[body] = ""
		} else {
			parts[body[:idx]] = body[idx+1:]
		}
		i = j
	}
	return parts, nil
}

func splitLines(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// elaborator rebuilds one rule's surface TermExpr tree into term.Term
// using the fully-resolved, monomorphised types computed by Parse.
type elaborator struct {
	alph       *alphabet.Alphabet
	vars       map[string]bool
	local      map[string]term.Type
	env        *typeEnv
	mono       *monomorphiser
	metaByName map[string]term.MetaVariable
}

func (e *elaborator) term(t *TermExpr) (term.Term, error) {
	if e.vars[t.Head] {
		mv, ok := e.metaByName[t.Head]
		if !ok {
			typ := e.mono.resolve(e.env, e.local[t.Head])
			mv = term.FreshMetaVariable(typ)
			e.metaByName[t.Head] = mv
		}
		if len(t.Args) > mv.Arity() {
			return nil, errors.Errorf("atrs: variable %q applied to more arguments than its inferred arity", t.Head)
		}
		head := term.Term(term.MetaApplication{Meta: mv})
		for _, raw := range t.Args {
			a, err := e.term(raw)
			if err != nil {
				return nil, err
			}
			head = term.Application{Fun: head, Arg: a}
		}
		return head, nil
	}

	typ, ok := e.alph.Lookup(t.Head)
	if !ok {
		return nil, errors.Errorf("atrs: undeclared symbol %q", t.Head)
	}
	head := term.Term(term.Constant{Name: t.Head, Typ: typ})
	for _, raw := range t.Args {
		arg, err := e.term(raw)
		if err != nil {
			return nil, err
		}
		head = term.Application{Fun: head, Arg: arg}
	}
	return head, nil
}
