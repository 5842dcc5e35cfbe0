// Package proof renders the driver's termination verdict and the
// processor trace that led to it, grounded on the teacher's
// colour/line-oriented reporting style (pkg/util/termio's AnsiEscape
// builder, and the fatih/color SprintFunc idiom used for structured
// diagnostics elsewhere in the corpus) rather than its terminal-widget
// machinery, which has no analogue here (a termination proof is a
// linear trace, not a redrawn screen).
package proof

// Sink receives the proof narrative as the framework driver works: one
// Step call per processor application that made progress, and exactly
// one Verdict call at the end (spec's three-line stdout contract: YES,
// NO, or MAYBE, followed by the proof unless suppressed).
type Sink interface {
	// Step records one processor's contribution to the proof, e.g.
	// "dependency graph split into 2 SCCs" or "subterm criterion
	// discharged pair #3 via projection s -> 1".
	Step(format string, args ...any)
	// Verdict renders the final YES/NO/MAYBE line.
	Verdict(verdict string)
	// Close flushes any buffered output.
	Close() error
}

// Discard is a Sink that drops everything, for callers that only want
// the verdict and not the proof trace.
type Discard struct{}

func (Discard) Step(string, ...any) {}
func (Discard) Verdict(string)      {}
func (Discard) Close() error        { return nil }
