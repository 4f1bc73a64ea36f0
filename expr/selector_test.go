package expr

import (
	"testing"

	"github.com/grailbio/seqflow/read"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelectorBareLiteral(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	n, err := ParseSelector([]byte("seq1.*"))
	require.NoError(t, err)
	b, err := EvalBool(n, r)
	require.NoError(t, err)
	assert.True(t, b)
}

func TestParseSelectorAndOrNot(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	n, err := ParseSelector([]byte("seq1.* & !(seq1.*)"))
	require.NoError(t, err)
	b, err := EvalBool(n, r)
	require.NoError(t, err)
	assert.False(t, b)

	n, err = ParseSelector([]byte("seq1.* | seq1.*"))
	require.NoError(t, err)
	b, err = EvalBool(n, r)
	require.NoError(t, err)
	assert.True(t, b)
}

func TestParseSelectorMissingRefSkipsNotFalse(t *testing.T) {
	n, err := ParseSelector([]byte("seq1.bc"))
	require.NoError(t, err)
	names := n.RequiredNames()
	require.Len(t, names, 1)
	assert.Equal(t, read.Seq1, names[0].Type)
}

func TestParseSelectorUnbalancedParen(t *testing.T) {
	_, err := ParseSelector([]byte("(seq1.*"))
	require.Error(t, err)
}
