package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("formal", false, "")
	cmd.Flags().Bool("uwrt", false, "")
	cmd.Flags().Bool("static", false, "")
	cmd.Flags().StringArray("disable", nil, "")
	cmd.Flags().String("format", "", "")
	return cmd
}

func TestGetCSVListSplitsCommasAndRepeats(t *testing.T) {
	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("disable", "sc,fr"))
	require.NoError(t, cmd.Flags().Set("disable", "graph"))
	require.Equal(t, []string{"sc", "fr", "graph"}, GetCSVList(cmd, "disable"))
}

func TestGetCSVListEmpty(t *testing.T) {
	cmd := newFlagCmd()
	require.Empty(t, GetCSVList(cmd, "disable"))
}

func TestBuildPolicyFormalForcesDisableNonTerm(t *testing.T) {
	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("formal", "true"))
	policy := buildPolicy(cmd)
	require.True(t, policy.DisableNonTerm)
}

func TestBuildPolicyPlumbsUwrtAndStatic(t *testing.T) {
	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("uwrt", "true"))
	require.NoError(t, cmd.Flags().Set("static", "true"))
	policy := buildPolicy(cmd)
	require.True(t, policy.UWRT)
	require.True(t, policy.AllowStatic)
}
