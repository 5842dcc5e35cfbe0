package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// convertCmd is a stub: spec.md's Non-goals explicitly exclude format
// conversion as an output feature, but the CLI surface still names
// the subcommand (grounded on wanda.cpp's "-convert" mode) so that
// running it reports the right thing instead of "unknown command".
var convertCmd = &cobra.Command{
	Use:   "convert [flags] file",
	Short: "Convert a rule-set file to another input format (out of scope).",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("termprove: convert is out of scope for this tool; see spec Non-goals")
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("to", "t", "", "target format (unused; convert is not implemented)")
}
