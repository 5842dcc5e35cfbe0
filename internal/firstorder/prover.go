package firstorder

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"

	"github.com/hezzel/wanda-sub001/internal/rule"
)

// Verdict mirrors the three-valued result an external first-order
// prover reports, matching the "YES"/"NO"/"MAYBE" strings the
// reference tool's fotool/fonontool subprocesses print on their
// first output line.
type Verdict int

const (
	Maybe Verdict = iota
	Yes
	No
)

func (v Verdict) String() string {
	switch v {
	case Yes:
		return "YES"
	case No:
		return "NO"
	default:
		return "MAYBE"
	}
}

func parseVerdict(s string) Verdict {
	switch s {
	case "YES":
		return Yes
	case "NO":
		return No
	default:
		return Maybe
	}
}

// Prover delegates a first-order rule set to an external termination
// (or non-termination) tool.
type Prover interface {
	// Prove reports YES/NO/MAYBE for rules under the given rewriting
	// strategy, plus a human-readable reason/proof string.
	Prove(ctx context.Context, rules rule.Set, innermost bool) (Verdict, string, error)
}

// SubprocessProver invokes an external binary on a generated .trs
// file and reads back its verdict, grounded on
// FirstOrderSplitter::determine_termination_main: write the system to
// a temp file, run "<tool> <file> <timeout>", read the first line of
// its stdout as the verdict and the rest as the supporting reason.
type SubprocessProver struct {
	// Binary is the external prover's executable path (the
	// reference tool's "fotool"/"fonontool" configuration strings).
	Binary string
	// TimeoutSeconds is passed to the external tool as its own
	// internal budget argument, matching the original's hard-coded
	// "50" seconds.
	TimeoutSeconds int
	// WorkDir holds the generated .trs files; defaults to os.TempDir
	// if empty.
	WorkDir string
}

// Prove implements Prover.
//
// DetermineTermination in the reference tool is a thin wrapper that
// immediately "return determine_termination_main(...)"; the rest of
// its body - grouping rules by a shared-sort graph and proving each
// group separately - sits after that unconditional return and is
// therefore genuinely dead code, left in by its own author with the
// comment "might perhaps be useful in the future, but usually not
// very useful because in non-orthogonal systems, we get the ~PAIR
// rules anyway". This port reproduces that behaviour: sort-splitting
// is not implemented at all, rather than ported as unreachable code,
// since Go has no equivalent of "leave dead code after a return" that
// would compile; the same simplification (always attempt the whole
// rule set as one problem, never split it by shared-sort groups) is
// documented here instead.
func (p SubprocessProver) Prove(ctx context.Context, rules rule.Set, innermost bool) (Verdict, string, error) {
	trs, err := WriteTRS(rules, innermost)
	if err != nil {
		return Maybe, "", fmt.Errorf("rendering first-order system: %w", err)
	}

	dir := p.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, ksuid.New().String()+".trs")
	if err := os.WriteFile(path, []byte(trs), 0o644); err != nil {
		return Maybe, "", fmt.Errorf("writing first-order system: %w", err)
	}
	defer os.Remove(path)

	cmd := exec.CommandContext(ctx, p.Binary, path, fmt.Sprint(p.TimeoutSeconds))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stdout

	log := logrus.WithField("component", "firstorder").WithField("binary", p.Binary)
	if err := cmd.Run(); err != nil {
		log.WithError(err).Warn("external first-order prover did not complete")
		return Maybe, "first-order termination prover did not provide a result.\n", nil
	}

	scanner := bufio.NewScanner(&stdout)
	if !scanner.Scan() {
		return Maybe, "first-order termination prover did not provide a result.\n", nil
	}
	first := scanner.Text()
	verdict := parseVerdict(first)

	var reason string
	if first == "" {
		reason = " || first-order termination tool did not provide a result.\n"
	}
	for scanner.Scan() {
		reason += " || " + scanner.Text() + "\n"
	}
	return verdict, reason, nil
}

// WithTimeout bounds ctx to d if ctx has no earlier deadline,
// mirroring the caller-side budget the framework driver applies to
// every external-tool delegation.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
