package matchseq

import (
	"testing"

	"github.com/grailbio/seqflow/align"
	"github.com/grailbio/seqflow/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactMatch(t *testing.T) {
	p := pattern.FromLiterals([][]byte{[]byte("ACGT"), []byte("TTTT")})
	r, err := Match([]byte("ACGT"), p, MatchType{Kind: Exact}, nil, nil)
	require.NoError(t, err)
	assert.True(t, r.Matched)
	assert.Equal(t, 0, r.PatternIndex)
	assert.Equal(t, 4, r.Matches)
}

func TestExactSearchCardinality3(t *testing.T) {
	p := pattern.FromLiterals([][]byte{[]byte("AAAA")})
	r, err := Match([]byte("GGAAAACGG"), p, MatchType{Kind: ExactSearch}, nil, nil)
	require.NoError(t, err)
	require.True(t, r.Matched)
	assert.Equal(t, []int{2, 6}, r.CutPositions)
}

func TestHammingSearch(t *testing.T) {
	p := pattern.FromLiterals([][]byte{[]byte("AAAA")})
	mt := MatchType{Kind: HammingSearch, HammingThreshold: CountThreshold(4)}
	r, err := Match([]byte("GGAAAACGG"), p, mt, nil, nil)
	require.NoError(t, err)
	require.True(t, r.Matched)
	assert.Equal(t, []int{2, 6}, r.CutPositions)
}

func TestRankingPicksHigherMatchCount(t *testing.T) {
	p := pattern.FromLiterals([][]byte{[]byte("AAAT"), []byte("AAAA")})
	mt := MatchType{Kind: Hamming, HammingThreshold: CountThreshold(0)}
	r, err := Match([]byte("AAAA"), p, mt, nil, nil)
	require.NoError(t, err)
	require.True(t, r.Matched)
	assert.Equal(t, 1, r.PatternIndex)
	assert.Equal(t, 4, r.Matches)
}

func TestGlobalAlnMatch(t *testing.T) {
	p := pattern.FromLiterals([][]byte{[]byte("ACGTACGT")})
	mt := MatchType{Kind: GlobalAln, Identity: 0.9}
	r, err := Match([]byte("ACGTACGT"), p, mt, align.NewAligner(), nil)
	require.NoError(t, err)
	assert.True(t, r.Matched)
}

func TestNoMatch(t *testing.T) {
	p := pattern.FromLiterals([][]byte{[]byte("TTTT")})
	r, err := Match([]byte("AAAA"), p, MatchType{Kind: Exact}, nil, nil)
	require.NoError(t, err)
	assert.False(t, r.Matched)
}

func TestThresholdFrac(t *testing.T) {
	th := FracThreshold(0.5)
	assert.Equal(t, 2, th.Get(4))
}
