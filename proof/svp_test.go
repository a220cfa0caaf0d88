package proof

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takakv/msc-poc/commitment"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
	"github.com/takakv/msc-poc/randomsource"
)

func TestSingleValueProductArgumentRoundTrip(t *testing.T) {
	gr := largeGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	rnd := randomsource.Secure{}
	h := hashing.Sha3Hash{}
	key := testVectorKey(t, gr, 3)
	scalarKey := testScalarKey(t, gr)

	x := zqVector(t, zq, 2, 3, 5)
	product, err := zq.FromValue(big.NewInt(30))
	require.NoError(t, err)
	rx := sampleZqT(t, rnd, zq)
	cX, err := commitment.GetCommitmentVector(x, rx, key)
	require.NoError(t, err)

	proof, err := GenerateSingleValueProductArgument(rnd, h, key, scalarKey, cX, x, rx, product)
	require.NoError(t, err)

	result, err := VerifySingleValueProductArgument(h, key, scalarKey, cX, product, proof)
	require.NoError(t, err)
	assert.True(t, result.IsSuccess(), result.String())
}

func TestGenerateSingleValueProductArgumentRejectsWrongProduct(t *testing.T) {
	gr := largeGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	rnd := randomsource.Secure{}
	h := hashing.Sha3Hash{}
	key := testVectorKey(t, gr, 3)
	scalarKey := testScalarKey(t, gr)

	x := zqVector(t, zq, 2, 3, 5)
	wrongProduct, err := zq.FromValue(big.NewInt(31))
	require.NoError(t, err)
	rx := sampleZqT(t, rnd, zq)
	cX, err := commitment.GetCommitmentVector(x, rx, key)
	require.NoError(t, err)

	_, err = GenerateSingleValueProductArgument(rnd, h, key, scalarKey, cX, x, rx, wrongProduct)
	assert.Error(t, err)
}

func TestVerifySingleValueProductArgumentRejectsTamperedProduct(t *testing.T) {
	gr := largeGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	rnd := randomsource.Secure{}
	h := hashing.Sha3Hash{}
	key := testVectorKey(t, gr, 3)
	scalarKey := testScalarKey(t, gr)

	x := zqVector(t, zq, 2, 3, 5)
	product, err := zq.FromValue(big.NewInt(30))
	require.NoError(t, err)
	rx := sampleZqT(t, rnd, zq)
	cX, err := commitment.GetCommitmentVector(x, rx, key)
	require.NoError(t, err)

	proof, err := GenerateSingleValueProductArgument(rnd, h, key, scalarKey, cX, x, rx, product)
	require.NoError(t, err)

	tamperedProduct, err := zq.FromValue(big.NewInt(31))
	require.NoError(t, err)
	result, err := VerifySingleValueProductArgument(h, key, scalarKey, cX, tamperedProduct, proof)
	require.NoError(t, err)
	assert.False(t, result.IsSuccess())
}
