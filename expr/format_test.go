package expr

import (
	"testing"

	"github.com/grailbio/seqflow/read"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLiteralAndHole(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	f, err := ParseFormat([]byte("bc=[{seq1.*}]"))
	require.NoError(t, err)
	out, err := f.Format(r, false)
	require.NoError(t, err)
	assert.Equal(t, "bc=[ACGT]", string(out))
}

func TestFormatQualFallsBackToI(t *testing.T) {
	sm := read.NewStrMappings([]byte("ACGT"), read.BytesOrigin, 0)
	r := read.New(0)
	r.SetStrMappings(read.Seq1, sm)

	f, err := ParseFormat([]byte("{seq1.*}"))
	require.NoError(t, err)
	out, err := f.Format(r, true)
	require.NoError(t, err)
	assert.Equal(t, "IIII", string(out))
}

func TestFormatLiteralEscape(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	f, err := ParseFormat([]byte("\\{literal\\}"))
	require.NoError(t, err)
	out, err := f.Format(r, false)
	require.NoError(t, err)
	assert.Equal(t, "{literal}", string(out))
}

func TestFormatQuotedLiteralHole(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	f, err := ParseFormat([]byte("{'hi there'}"))
	require.NoError(t, err)
	out, err := f.Format(r, false)
	require.NoError(t, err)
	assert.Equal(t, "hi there", string(out))
}

func TestFormatWidthPadding(t *testing.T) {
	r := newBCRead(t, "AC", "II")
	f, err := ParseFormat([]byte("{seq1.*; 5}"))
	require.NoError(t, err)
	out, err := f.Format(r, false)
	require.NoError(t, err)
	assert.Equal(t, "AC   ", string(out))
}

func TestFormatUnterminatedHole(t *testing.T) {
	_, err := ParseFormat([]byte("{seq1.*"))
	require.Error(t, err)
}
