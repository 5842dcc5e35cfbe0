package proof

import "strings"

func newArrowReplacer() *strings.Replacer {
	return strings.NewReplacer(
		"~~>", "↝", // ↝, dependency-pair reduction
		"->", "→", // →, rewrite rule
		"=>", "⇒", // ⇒
	)
}

func newHTMLReplacer() *strings.Replacer {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
}
