package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// GetFlag gets an expected boolean flag, or exits if cobra reports an
// error reading it, mirroring the teacher's pkg/cmd/util.go helpers
// (a flag name that was actually registered never errors here in
// practice; this only guards against a typo in the flag name itself).
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// GetString gets an expected string flag.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// GetStringArray gets an expected repeatable string flag.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// GetCSVList gets a repeatable string flag and splits every entry on
// commas, so "--disable=sc,fr --disable=graph" and
// "--disable=sc --disable=fr --disable=graph" are accepted
// identically, matching the "<csv>" shape spec.md's CLI table
// documents for --disable.
func GetCSVList(cmd *cobra.Command, flag string) []string {
	var out []string
	for _, entry := range GetStringArray(cmd, flag) {
		for _, name := range strings.Split(entry, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}
