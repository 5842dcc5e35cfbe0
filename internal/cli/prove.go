package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/firstorder"
	"github.com/hezzel/wanda-sub001/internal/framework"
	"github.com/hezzel/wanda-sub001/internal/nonterm"
	"github.com/hezzel/wanda-sub001/internal/orderpair"
	"github.com/hezzel/wanda-sub001/internal/parse/afs"
	"github.com/hezzel/wanda-sub001/internal/parse/afsm"
	"github.com/hezzel/wanda-sub001/internal/parse/ari"
	"github.com/hezzel/wanda-sub001/internal/parse/atrs"
	trsfmt "github.com/hezzel/wanda-sub001/internal/parse/trs"
	"github.com/hezzel/wanda-sub001/internal/parse/xmlfmt"
	"github.com/hezzel/wanda-sub001/internal/proof"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/sat"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// parsedSystem is the uniform outcome of every format-specific reader,
// matching internal/parse/*'s individual Result shapes.
type parsedSystem struct {
	Alphabet  *alphabet.Alphabet
	Rules     rule.Set
	Innermost bool
}

// parseFile dispatches to the right format reader, by the --format
// override if given, else by file extension, per spec.md §6 ("the
// driver dispatches by file extension or an explicit flag").
func parseFile(path string, formatOverride string) (parsedSystem, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return parsedSystem{}, errors.Wrapf(err, "reading %s", path)
	}
	format := formatOverride
	if format == "" {
		format = formatForExtension(filepath.Ext(path), string(source))
	}
	return parseSource(string(source), format)
}

func formatForExtension(ext, source string) string {
	switch strings.ToLower(ext) {
	case ".afsm":
		return "afsm"
	case ".afs":
		return "afs"
	case ".atrs":
		return "atrs"
	case ".ari":
		return "ari"
	case ".xml":
		return "xml"
	case ".trs":
		return "trs"
	default:
		if xmlfmt.Detect(source) || strings.Contains(source, "<rules>") {
			return "xml"
		}
		return "trs"
	}
}

// parseSource reads source under the named format, elaborating it into
// a uniform (alphabet, rule set) pair.
//
// "afs" shares the AFSM reader's concrete declaration-block syntax in
// this port (the original tool's AFS and AFSM surface grammars differ
// only in how arities are normalised afterwards, not in their token
// grammar); afs.AdjustArities/RecalculateArityEta is run over the
// AFSM-elaborated rules to apply the AFS-specific arity lowering and
// eta-expansion spec.md §6 describes, so internal/parse/afs's
// exported helpers are genuinely exercised rather than left as dead
// unused code. See DESIGN.md.
func parseSource(source, format string) (parsedSystem, error) {
	switch format {
	case "afsm":
		res, err := afsm.Parse(source)
		if err != nil {
			return parsedSystem{}, err
		}
		return parsedSystem{Alphabet: res.Alphabet, Rules: res.Rules}, nil
	case "afs":
		return parseAFS(source)
	case "atrs":
		res, err := atrs.Parse(source)
		if err != nil {
			return parsedSystem{}, err
		}
		return parsedSystem{Alphabet: res.Alphabet, Rules: res.Rules}, nil
	case "ari":
		res, err := ari.Parse(source)
		if err != nil {
			return parsedSystem{}, err
		}
		return parsedSystem{Alphabet: res.Alphabet, Rules: res.Rules}, nil
	case "xml":
		res, err := xmlfmt.Parse(source)
		if err != nil {
			return parsedSystem{}, err
		}
		return parsedSystem{Alphabet: res.Alphabet, Rules: res.Rules}, nil
	case "trs":
		res, err := trsfmt.Parse(source)
		if err != nil {
			return parsedSystem{}, err
		}
		return parsedSystem{Alphabet: res.Alphabet, Rules: res.Rules, Innermost: res.Innermost}, nil
	default:
		return parsedSystem{}, errors.Errorf("unknown input format %q", format)
	}
}

func parseAFS(source string) (parsedSystem, error) {
	res, err := afsm.Parse(source)
	if err != nil {
		return parsedSystem{}, err
	}
	initial := map[string]int{}
	for _, name := range res.Alphabet.Symbols() {
		initial[name] = res.Alphabet.Arity(name)
	}
	lhs := make([]term.Term, len(res.Rules))
	rhs := make([]term.Term, len(res.Rules))
	for i, r := range res.Rules {
		lhs[i], rhs[i] = r.Left, r.Right
	}
	arities, adjustedRHS := afs.RecalculateArityEta(lhs, rhs, initial)
	for name, ar := range arities {
		typ, ok := res.Alphabet.Lookup(name)
		if !ok {
			continue
		}
		res.Alphabet.SetArity(name, minArity(ar, term.Arity(typ)))
	}
	out := make(rule.Set, len(res.Rules))
	for i, r := range res.Rules {
		out[i] = rule.MatchRule{Name: r.Name, Left: r.Left, Right: adjustedRHS[i]}
	}
	return parsedSystem{Alphabet: res.Alphabet, Rules: out}, nil
}

func minArity(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// RunProve implements termprove's default action: prove termination
// of every positional file argument, printing one verdict per file.
// Exit code is 0 unless some file failed to parse or the driver hit
// an internal error (spec.md §6's exit-code rule: even MAYBE exits
// zero).
func RunProve(cmd *cobra.Command, files []string) int {
	sink, closeSink := openSink(cmd)
	defer closeSink()

	policy := buildPolicy(cmd)
	batch := len(files) > 1
	exitCode := 0

	for _, path := range files {
		if batch {
			sink.Step("file %s", path)
		}
		verdict, failed := proveOneFile(cmd, path, policy, batch, sink)
		sink.Verdict(verdict)
		if failed {
			exitCode = 2
		}
	}
	return exitCode
}

func proveOneFile(cmd *cobra.Command, path string, policy framework.Policy, batch bool, sink proof.Sink) (string, bool) {
	system, err := parseFile(path, GetString(cmd, "format"))
	if err != nil {
		log.WithField("file", path).WithError(err).Warn("parse error")
		sink.Step("parse error: %s", err)
		if batch {
			return "MAYBE", true
		}
		return "ERROR", true
	}

	rs, analysis := rule.PrepareAndAnalyse(system.Rules)
	if !analysis.NonTerminationSound {
		policy.DisableNonTerm = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if !GetFlag(cmd, "formal") {
		if v, note, resolved := firstOrderPhase(ctx, cmd, system.Alphabet, rs, system.Innermost, sink); resolved {
			sink.Step("%s", note)
			return v.String(), false
		}
	}

	drv := framework.New(system.Alphabet, rs, analysis, sat.DPLLSolver{}, orderpair.LinearWeightEngine{}, policy)

	var checkNonTerm func(rule.Set) bool
	if !policy.DisableNonTerm {
		checkNonTerm = func(rs rule.Set) bool {
			_, ok := nonterm.Check(rs)
			return ok
		}
	}

	verdict := drv.Run(ctx, checkNonTerm)
	return verdict.String(), false
}

// firstOrderPhase delegates the first-order fragment of rs to an
// external prover named by --firstorder/--firstordernon, per spec §4.10
// and §8's recovered counterexample-lifting feature. It only resolves
// the whole file's verdict early when the first-order part is reported
// non-terminating and the lifting precondition (single-sorted
// alphabet) holds; a first-order YES is informational only (it cannot,
// by itself, prove the higher-order remainder terminating) and is
// reported as a proof step rather than a verdict.
func firstOrderPhase(ctx context.Context, cmd *cobra.Command, alph *alphabet.Alphabet, rs rule.Set, innermost bool, sink proof.Sink) (framework.Verdict, string, bool) {
	splitter := firstorder.NewSplitter(alph, rs)
	fo := splitter.FirstOrderPart(rs)
	if len(fo) == 0 {
		return framework.Maybe, "", false
	}

	if bin := GetString(cmd, "firstorder"); bin != "" {
		prover := firstorder.SubprocessProver{Binary: bin, TimeoutSeconds: 50}
		v, reason, err := prover.Prove(ctx, fo, innermost)
		if err == nil {
			sink.Step("first-order part (%d rules) delegated to %s: %s", len(fo), bin, v)
			if v == firstorder.No && firstorder.LiftCounterexample(alph) {
				return framework.No, fmt.Sprintf("first-order counterexample lifts to the full system: %s", reason), true
			}
		}
	}

	if bin := GetString(cmd, "firstordernon"); bin != "" {
		prover := firstorder.SubprocessProver{Binary: bin, TimeoutSeconds: 50}
		v, reason, err := prover.Prove(ctx, fo, innermost)
		if err == nil && v == firstorder.No {
			sink.Step("first-order non-termination prover %s found a loop", bin)
			if firstorder.LiftCounterexample(alph) {
				return framework.No, fmt.Sprintf("first-order counterexample lifts to the full system: %s", reason), true
			}
		}
	}

	return framework.Maybe, "", false
}

// buildPolicy assembles a framework.Policy from --disable, --uwrt and
// --static, additionally forcing --formal's soundly-formalised
// restriction per SPEC_FULL.md §8 (no heuristic non-terminator, no
// first-order delegation).
func buildPolicy(cmd *cobra.Command) framework.Policy {
	policy := framework.ParseDisableList(GetCSVList(cmd, "disable"))
	policy.UWRT = GetFlag(cmd, "uwrt")
	policy.AllowStatic = GetFlag(cmd, "static")
	if GetFlag(cmd, "formal") {
		policy.DisableNonTerm = true
	}
	return policy
}

// openSink builds the proof.Sink for this run from --style and
// --output, defaulting to stdout with --formal forcing the Formal
// style (a certifier-friendly numbered trace) regardless of --style.
func openSink(cmd *cobra.Command) (proof.Sink, func()) {
	w := os.Stdout
	var closer func()
	if out := GetString(cmd, "output"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		w2 := f
		closer = func() { _ = w2.Close() }
		sink := proof.NewTextSink(w2, style(cmd))
		return sink, func() { _ = sink.Close(); closer() }
	}
	sink := proof.NewTextSink(w, style(cmd))
	return sink, func() { _ = sink.Close() }
}

func style(cmd *cobra.Command) proof.Style {
	if GetFlag(cmd, "formal") {
		return proof.Formal
	}
	switch GetString(cmd, "style") {
	case "html":
		return proof.HTML
	case "ansi":
		return proof.ANSI
	case "utf":
		return proof.UTF8
	case "ansiutf":
		return proof.AnsiUTF8
	default:
		return proof.Plain
	}
}
