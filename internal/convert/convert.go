// Package convert declares the shape of a format converter without
// implementing one: file-format conversion and interactive
// term-rewriting tooling are explicit non-goals of this module (spec's
// "no term-conversion tooling, no file-format conversion"). The
// interface is kept so a caller wiring the surface-syntax parsers in
// internal/parse can still type-check against a converter without this
// module providing a concrete implementation.
package convert

import "github.com/hezzel/wanda-sub001/internal/rule"

// Converter translates between this module's internal rule
// representation and some external textual format. No implementation
// ships here; see the package doc comment.
type Converter interface {
	Encode(rs rule.Set) ([]byte, error)
	Decode([]byte) (rule.Set, error)
}
