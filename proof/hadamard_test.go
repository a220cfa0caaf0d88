package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takakv/msc-poc/commitment"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
	"github.com/takakv/msc-poc/randomsource"
)

func hadamardProduct(t *testing.T, columns ...group.GroupVector[*group.ZqElement]) group.GroupVector[*group.ZqElement] {
	t.Helper()
	b := columns[0]
	for i := 1; i < len(columns); i++ {
		next, err := group.ZipVector(b, columns[i], func(x, y *group.ZqElement) (*group.ZqElement, error) {
			return x.Multiply(y)
		})
		require.NoError(t, err)
		b = next
	}
	return b
}

func TestHadamardArgumentRoundTrip(t *testing.T) {
	gr := largeGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	rnd := randomsource.Secure{}
	h := hashing.Sha3Hash{}
	key := testVectorKey(t, gr, 2)
	scalarKey := testScalarKey(t, gr)

	col0 := zqVector(t, zq, 2, 3)
	col1 := zqVector(t, zq, 4, 5)
	col2 := zqVector(t, zq, 6, 7)
	columns := []group.GroupVector[*group.ZqElement]{col0, col1, col2}
	b := hadamardProduct(t, columns...)

	rColumns := make([]*group.ZqElement, len(columns))
	cColumns := make([]*group.GqElement, len(columns))
	for i, col := range columns {
		rColumns[i] = sampleZqT(t, rnd, zq)
		c, err := commitment.GetCommitmentVector(col, rColumns[i], key)
		require.NoError(t, err)
		cColumns[i] = c
	}
	rB := sampleZqT(t, rnd, zq)
	cB, err := commitment.GetCommitmentVector(b, rB, key)
	require.NoError(t, err)

	proof, err := GenerateHadamardArgument(rnd, h, key, scalarKey, cColumns, columns, rColumns, cB, b, rB)
	require.NoError(t, err)

	result, err := VerifyHadamardArgument(h, key, scalarKey, cColumns, cB, 2, proof)
	require.NoError(t, err)
	assert.True(t, result.IsSuccess(), result.String())
}

func TestHadamardArgumentSingleColumn(t *testing.T) {
	gr := largeGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	rnd := randomsource.Secure{}
	h := hashing.Sha3Hash{}
	key := testVectorKey(t, gr, 2)
	scalarKey := testScalarKey(t, gr)

	col0 := zqVector(t, zq, 2, 3)
	columns := []group.GroupVector[*group.ZqElement]{col0}

	r0 := sampleZqT(t, rnd, zq)
	c0, err := commitment.GetCommitmentVector(col0, r0, key)
	require.NoError(t, err)

	proof, err := GenerateHadamardArgument(rnd, h, key, scalarKey, []*group.GqElement{c0}, columns,
		[]*group.ZqElement{r0}, c0, col0, r0)
	require.NoError(t, err)

	result, err := VerifyHadamardArgument(h, key, scalarKey, []*group.GqElement{c0}, c0, 2, proof)
	require.NoError(t, err)
	assert.True(t, result.IsSuccess(), result.String())
}

func TestHadamardArgumentRejectsWrongResult(t *testing.T) {
	gr := largeGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	rnd := randomsource.Secure{}
	h := hashing.Sha3Hash{}
	key := testVectorKey(t, gr, 2)
	scalarKey := testScalarKey(t, gr)

	col0 := zqVector(t, zq, 2, 3)
	col1 := zqVector(t, zq, 4, 5)
	columns := []group.GroupVector[*group.ZqElement]{col0, col1}
	b := hadamardProduct(t, columns...)

	rColumns := make([]*group.ZqElement, len(columns))
	cColumns := make([]*group.GqElement, len(columns))
	for i, col := range columns {
		rColumns[i] = sampleZqT(t, rnd, zq)
		c, err := commitment.GetCommitmentVector(col, rColumns[i], key)
		require.NoError(t, err)
		cColumns[i] = c
	}
	rB := sampleZqT(t, rnd, zq)
	cB, err := commitment.GetCommitmentVector(b, rB, key)
	require.NoError(t, err)

	proof, err := GenerateHadamardArgument(rnd, h, key, scalarKey, cColumns, columns, rColumns, cB, b, rB)
	require.NoError(t, err)

	wrongB := zqVector(t, zq, 99, 99)
	rWrongB := sampleZqT(t, rnd, zq)
	cWrongB, err := commitment.GetCommitmentVector(wrongB, rWrongB, key)
	require.NoError(t, err)

	result, err := VerifyHadamardArgument(h, key, scalarKey, cColumns, cWrongB, 2, proof)
	require.NoError(t, err)
	assert.False(t, result.IsSuccess())
}
