package firstorder

import (
	"fmt"
	"strings"

	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// WriteTRS renders rules in the competition .trs text format (the
// "(VAR ...)"/"(RULES ...)"/optional "(STRATEGY INNERMOST)" blocks
// understood by most standalone first-order termination tools),
// grounded on FirstOrderSplitter::create_file. Every rule is assumed
// already first order; callers pass FirstOrderPart's output.
func WriteTRS(rules rule.Set, innermost bool) (string, error) {
	var body strings.Builder
	vars := map[string]bool{}
	var order []string

	for _, r := range rules {
		names := map[int]string{}
		lhs, err := printFunctionally(r.Left, names, &order, vars)
		if err != nil {
			return "", fmt.Errorf("rule %s: %w", r.Name, err)
		}
		rhs, err := printFunctionally(r.Right, names, &order, vars)
		if err != nil {
			return "", fmt.Errorf("rule %s: %w", r.Name, err)
		}
		fmt.Fprintf(&body, "  %s -> %s\n", lhs, rhs)
	}

	var txt strings.Builder
	txt.WriteString("(VAR")
	for _, v := range order {
		txt.WriteString(" " + v)
	}
	txt.WriteString(")\n(RULES\n")
	txt.WriteString(body.String())
	txt.WriteString(")\n")
	if innermost {
		txt.WriteString("(STRATEGY INNERMOST)\n")
	}
	return txt.String(), nil
}

// printFunctionally renders a first-order term using plain
// "name(arg1,...,argn)" notation. names maps a meta-variable or
// variable index to the stable name assigned the first time it is
// seen; vars/order accumulate the (VAR ...) block's contents in
// first-seen order, as the original's Environment-based dummy
// to_string calls did.
func printFunctionally(t term.Term, names map[int]string, order *[]string, vars map[string]bool) (string, error) {
	switch n := t.(type) {
	case term.Variable:
		return nameFor(n.Index, "x", names, order, vars), nil
	case term.MetaApplication:
		if len(n.Args) != 0 {
			return "", fmt.Errorf("meta-variable applied to arguments cannot be printed in first-order syntax")
		}
		return nameFor(n.Meta.Index, "z", names, order, vars), nil
	}

	head, args := term.Spine(t)
	c, ok := head.(term.Constant)
	if !ok {
		return "", fmt.Errorf("non-constant head in first-order term")
	}
	if len(args) == 0 {
		return c.Name, nil
	}
	parts := make([]string, len(args))
	for i, a := range args {
		s, err := printFunctionally(a, names, order, vars)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return c.Name + "(" + strings.Join(parts, ",") + ")", nil
}

func nameFor(index int, prefix string, names map[int]string, order *[]string, vars map[string]bool) string {
	if existing, ok := names[index]; ok {
		return existing
	}
	name := fmt.Sprintf("%s%d", prefix, index)
	names[index] = name
	if !vars[name] {
		vars[name] = true
		*order = append(*order, name)
	}
	return name
}
