package proof_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/proof"
)

func TestTextSinkPlainVerdict(t *testing.T) {
	var buf bytes.Buffer
	sink := proof.NewTextSink(&buf, proof.Plain)
	sink.Step("subterm criterion discharged pair %d", 3)
	sink.Verdict("YES")
	require.NoError(t, sink.Close())
	require.Contains(t, buf.String(), "discharged pair 3")
	require.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), "YES"))
}

func TestTextSinkUTF8ArrowSubstitution(t *testing.T) {
	var buf bytes.Buffer
	sink := proof.NewTextSink(&buf, proof.UTF8)
	sink.Step("f(X) -> g(X)")
	require.NoError(t, sink.Close())
	require.Contains(t, buf.String(), "→")
}
