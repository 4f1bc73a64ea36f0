package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAMLLiterals(t *testing.T) {
	doc := []byte(`
pattern_name: bc_id
attrs: [id, count]
patterns:
  - bytes: ACGT
    attrs: [bc1, 10]
  - bytes: TTTT
    attrs: [bc2, 20]
`)
	p, err := ParseYAML(doc)
	require.NoError(t, err)
	require.NotNil(t, p.PatternName)
	assert.Equal(t, "bc_id", p.PatternName.String())
	require.Len(t, p.List, 2)
	assert.True(t, p.AllLiterals())
	assert.Equal(t, "ACGT", string(p.List[0].Literal))
	v, ok := p.List[0].Attrs[1].AsInt()
	require.True(t, ok)
	assert.EqualValues(t, 10, v)
}

func TestParseYAMLExpr(t *testing.T) {
	doc := []byte(`
attrs: []
patterns:
  - expr: "{'AC'}{'GT'}"
    attrs: []
`)
	p, err := ParseYAML(doc)
	require.NoError(t, err)
	require.Len(t, p.List, 1)
	assert.False(t, p.AllLiterals())
	b, err := p.List[0].Bytes(nil)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", string(b))
}

func TestParseYAMLBadAttrCount(t *testing.T) {
	doc := []byte(`
attrs: [a]
patterns:
  - bytes: ACGT
    attrs: []
`)
	_, err := ParseYAML(doc)
	require.Error(t, err)
}

func TestFromLiterals(t *testing.T) {
	p := FromLiterals([][]byte{[]byte("AC"), []byte("GT")})
	assert.Nil(t, p.PatternName)
	assert.True(t, p.AllLiterals())
	assert.Len(t, p.List, 2)
}
