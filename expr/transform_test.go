package expr

import (
	"testing"

	"github.com/grailbio/seqflow/read"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransformBasic(t *testing.T) {
	tr, err := ParseTransform([]byte("seq1.a, seq1.b -> seq1.c, _"))
	require.NoError(t, err)
	require.Len(t, tr.Before, 2)
	require.Len(t, tr.After, 2)
	assert.Equal(t, read.Seq1, tr.Before[0].Type)
	assert.Nil(t, tr.After[1])
	require.NotNil(t, tr.After[0])
	assert.False(t, tr.After[0].IsAttr())
}

func TestParseTransformWithAttr(t *testing.T) {
	tr, err := ParseTransform([]byte("seq1.a -> seq1.a.len"))
	require.NoError(t, err)
	require.Len(t, tr.After, 1)
	assert.True(t, tr.After[0].IsAttr())
}

func TestTransformCheckSameStrType(t *testing.T) {
	tr, err := ParseTransform([]byte("seq1.a -> seq1.b"))
	require.NoError(t, err)
	st, ok := tr.CheckSameStrType()
	require.True(t, ok)
	assert.Equal(t, read.Seq1, st)

	tr2, err := ParseTransform([]byte("seq1.a -> seq2.b"))
	require.NoError(t, err)
	_, ok = tr2.CheckSameStrType()
	assert.False(t, ok)
}

func TestTransformCheckSize(t *testing.T) {
	tr, err := ParseTransform([]byte("seq1.a -> seq1.b, _"))
	require.NoError(t, err)
	assert.True(t, tr.CheckSize(1, 2))
	assert.False(t, tr.CheckSize(2, 2))
}

func TestParseTransformMissingArrow(t *testing.T) {
	_, err := ParseTransform([]byte("seq1.a, seq1.b"))
	require.Error(t, err)
}
