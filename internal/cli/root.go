// Package cli wires the cobra command surface spec.md §6 describes
// onto internal/framework's driver, grounded on the teacher's
// pkg/cmd package: one root command carrying the bulk of the flags,
// logrus verbosity wiring in Run, and os.Exit for the error paths
// GetFlag/GetString/GetStringArray already establish.
package cli

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hezzel/wanda-sub001/internal/framework"
)

// rootCmd is termprove's default action: prove termination of every
// file given as a positional argument.
var rootCmd = &cobra.Command{
	Use:   "termprove [flags] file...",
	Short: "Dependency-pair termination prover for AFSMs.",
	Long: `termprove decides termination of algebraic functional systems with
meta-variables (AFSMs): higher-order term rewriting systems. Given one
or more rule-set files it prints YES, NO, or MAYBE for each, followed
by a proof or explanation unless output is suppressed.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if GetFlag(cmd, "rewrite") {
			fmt.Println("termprove: --rewrite (interactive rewriting) is not implemented; see spec Non-goals")
			os.Exit(1)
		}

		if q := GetString(cmd, "query"); q != "" {
			os.Exit(RunQuery(cmd, args, q))
		}

		os.Exit(RunProve(cmd, args))
	},
}

// Execute runs the root command; it is the only call cmd/termprove's
// main needs to make.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configureLogging raises or silences the package-level logrus logger
// per --verbose/--debug/--silent, matching the teacher's check.go
// ("if GetFlag(cmd, "verbose") { log.SetLevel(log.DebugLevel) }").
func configureLogging(cmd *cobra.Command) {
	switch {
	case GetFlag(cmd, "silent"):
		log.SetLevel(log.ErrorLevel)
	case GetFlag(cmd, "debug"):
		log.SetLevel(log.TraceLevel)
	case GetFlag(cmd, "verbose"):
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", "", "override input format detection (afsm|afs|atrs|ari|xml|trs)")
	rootCmd.PersistentFlags().StringP("firstorder", "i", "", "external first-order termination prover binary")
	rootCmd.PersistentFlags().StringP("firstordernon", "n", "", "external first-order non-termination prover binary")
	rootCmd.PersistentFlags().StringArrayP("disable", "d", nil, "disable processors (comma-separated or repeated): "+csvHint())
	rootCmd.PersistentFlags().StringP("query", "q", "", "answer a structural question instead of proving termination")
	rootCmd.PersistentFlags().BoolP("rewrite", "r", false, "interactive rewriting REPL (not implemented)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "redirect the proof to this file instead of stdout")
	rootCmd.PersistentFlags().String("style", "plain", "presentation: plain|html|ansi|utf|ansiutf")
	rootCmd.PersistentFlags().Bool("verbose", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("silent", false, "suppress all but error-level logging")
	rootCmd.PersistentFlags().Bool("debug", false, "trace-level logging")
	rootCmd.PersistentFlags().BoolP("formal", "l", false, "emit a certifier-friendly proof and restrict to soundly formalised processors")
	rootCmd.PersistentFlags().Bool("uwrt", false, "enable usable-rules-with-respect-to-requirements")
	rootCmd.PersistentFlags().Bool("static", false, "allow the static-DP fallback restart when dynamic DPs get stuck")
}

func csvHint() string {
	return strings.Join(framework.KnownProcessors(), " ")
}
