package orderpair

import "github.com/hezzel/wanda-sub001/internal/dep"

// Engine attempts to orient a Problem: it must discharge every
// non-strict requirement (as >=) and as many strict requirements (as
// >) as it can, reporting the dependency pairs behind the strict
// requirements it succeeded on. Returning ok == false means the
// engine could not find any orientation satisfying all non-strict
// requirements, in which case the processor makes no progress.
//
// Only one concrete Engine ships here (poly_stub.go's simple additive
// weight function). A HORPO-based engine is intentionally left
// unimplemented: wiring a real higher-order recursive path ordering is
// out of scope, but the interface is shaped so one can be added
// without touching the framework driver.
type Engine interface {
	Orient(p Problem) (oriented []*dep.Pair, ok bool)
}
