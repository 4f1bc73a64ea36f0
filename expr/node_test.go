package expr

import (
	"testing"

	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/read"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBCRead(t *testing.T, seq, qual string) *read.Read {
	t.Helper()
	sm := read.NewStrMappingsWithQual([]byte(seq), []byte(qual), read.BytesOrigin, 0)
	r := read.New(0)
	r.SetStrMappings(read.Seq1, sm)
	return r
}

func TestBoolOps(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	tru := Const(read.Bool(true))
	fals := Const(read.Bool(false))

	b, err := EvalBool(And(tru, fals), r)
	require.NoError(t, err)
	assert.False(t, b)

	b, err = EvalBool(Or(tru, fals), r)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = EvalBool(Not(fals), r)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = EvalBool(Xor(tru, tru), r)
	require.NoError(t, err)
	assert.False(t, b)
}

func TestArithmeticAndComparison(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	a := Const(read.Int(3))
	b := Const(read.Int(4))

	sum, err := Add(a, b).Eval(r)
	require.NoError(t, err)
	v, _ := sum.AsInt()
	assert.EqualValues(t, 7, v)

	lt, err := EvalBool(Lt(a, b), r)
	require.NoError(t, err)
	assert.True(t, lt)

	eq, err := EvalBool(Eq(a, Const(read.Int(3))), r)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestLenAndLabelRef(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	seq1 := Label{Type: read.Seq1, Label: inline.Star}

	n := Len(LabelRef(seq1))
	d, err := n.Eval(r)
	require.NoError(t, err)
	v, _ := d.AsInt()
	assert.EqualValues(t, 4, v)
	assert.Len(t, n.RequiredNames(), 1)
}

func TestInBounds(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	seq1 := Label{Type: read.Seq1, Label: inline.Star}
	n := LengthInBounds(seq1, 1, 4)
	b, err := EvalBool(n, r)
	require.NoError(t, err)
	assert.True(t, b)

	n2 := LengthInBounds(seq1, 5, 10)
	b, err = EvalBool(n2, r)
	require.NoError(t, err)
	assert.False(t, b)
}

func TestLabelAttrExistsDoNotRequire(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	missing := Label{Type: read.Seq1, Label: inline.New([]byte("bc"))}

	n := LabelExists(missing)
	assert.Empty(t, n.RequiredNames())
	b, err := EvalBool(n, r)
	require.NoError(t, err)
	assert.False(t, b)
}

func TestConcatAndRepeat(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	c := Concat(Const(read.Bytes([]byte("AC"))), Const(read.Bytes([]byte("GT"))))
	d, err := c.Eval(r)
	require.NoError(t, err)
	b, _ := d.AsBytes()
	assert.Equal(t, "ACGT", string(b))

	rep := Repeat(Const(read.Bytes([]byte("CA"))), Const(read.Int(3)))
	d, err = rep.Eval(r)
	require.NoError(t, err)
	b, _ = d.AsBytes()
	assert.Equal(t, "CACACA", string(b))
}

func TestConversions(t *testing.T) {
	r := newBCRead(t, "ACGT", "IIII")
	d, err := ToInt(Const(read.Bytes([]byte("42")))).Eval(r)
	require.NoError(t, err)
	v, _ := d.AsInt()
	assert.EqualValues(t, 42, v)

	d, err = ToBytes(Const(read.Int(7))).Eval(r)
	require.NoError(t, err)
	b, _ := d.AsBytes()
	assert.Equal(t, "7", string(b))
}
