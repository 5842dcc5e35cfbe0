package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatForExtensionKnownExtensions(t *testing.T) {
	require.Equal(t, "afsm", formatForExtension(".afsm", ""))
	require.Equal(t, "afs", formatForExtension(".afs", ""))
	require.Equal(t, "atrs", formatForExtension(".atrs", ""))
	require.Equal(t, "ari", formatForExtension(".ari", ""))
	require.Equal(t, "xml", formatForExtension(".xml", ""))
	require.Equal(t, "trs", formatForExtension(".trs", ""))
}

func TestFormatForExtensionSniffsXMLBody(t *testing.T) {
	require.Equal(t, "xml", formatForExtension("", "<rules><rule/></rules>"))
}

func TestFormatForExtensionDefaultsToTRS(t *testing.T) {
	require.Equal(t, "trs", formatForExtension("", "(VAR x)\n(RULES f(x) -> x)"))
}

func TestParseSourceUnknownFormat(t *testing.T) {
	_, err := parseSource("whatever", "cobol")
	require.Error(t, err)
}

func TestMinArity(t *testing.T) {
	require.Equal(t, 1, minArity(1, 3))
	require.Equal(t, 2, minArity(5, 2))
}
