package hashing

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takakv/msc-poc/group"
)

func TestRecursiveHashIsDeterministic(t *testing.T) {
	h := Sha3Hash{}
	a, err := Integer(big.NewInt(42))
	require.NoError(t, err)
	d1, err := RecursiveHash(h, a)
	require.NoError(t, err)
	d2, err := RecursiveHash(h, a)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestRecursiveHashDomainSeparatesLeafTypes(t *testing.T) {
	h := Sha3Hash{}
	asInt, err := Integer(big.NewInt(65))
	require.NoError(t, err)
	asText := Text("A")

	d1, err := RecursiveHash(h, asInt)
	require.NoError(t, err)
	d2, err := RecursiveHash(h, asText)
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)
}

func TestRecursiveHashSingletonListEqualsElement(t *testing.T) {
	h := Sha3Hash{}
	a, err := Integer(big.NewInt(7))
	require.NoError(t, err)
	list, err := List(a)
	require.NoError(t, err)

	d1, err := RecursiveHash(h, a)
	require.NoError(t, err)
	d2, err := RecursiveHash(h, list)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestRecursiveHashOfLengthRejectsShortBitLength(t *testing.T) {
	h := Sha3Hash{}
	a, err := Integer(big.NewInt(1))
	require.NoError(t, err)
	_, err = RecursiveHashOfLength(h, 256, a)
	assert.Error(t, err)
}

func TestRecursiveHashOfLengthProducesExpectedByteCount(t *testing.T) {
	h := Sha3Hash{}
	a, err := Integer(big.NewInt(1))
	require.NoError(t, err)
	digest, err := RecursiveHashOfLength(h, 520, a)
	require.NoError(t, err)
	assert.Equal(t, 65, len(digest))
	// 520 is byte-aligned so no masking occurs; re-derive at 517 bits and
	// check the top byte is masked to 5 bits.
	digest2, err := RecursiveHashOfLength(h, 517, a)
	require.NoError(t, err)
	assert.Equal(t, 65, len(digest2))
	assert.LessOrEqual(t, digest2[0], byte(0x1F))
}

func TestRecursiveHashToZqStaysInRange(t *testing.T) {
	gr := largeGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	h := Sha3Hash{}
	a, err := Integer(big.NewInt(123456789))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		vi, err := Integer(big.NewInt(int64(i)))
		require.NoError(t, err)
		out, err := RecursiveHashToZq(h, zq, a, vi)
		require.NoError(t, err)
		assert.Less(t, out.Value().Cmp(zq.Q()), 0)
		assert.GreaterOrEqual(t, out.Value().Sign(), 0)
	}
}

func TestRecursiveHashToZqRejectsSmallGroup(t *testing.T) {
	gr := smallGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	h := Sha3Hash{}
	a, err := Integer(big.NewInt(1))
	require.NoError(t, err)
	_, err = RecursiveHashToZq(h, zq, a)
	assert.Error(t, err)
}

func TestHashAndSquareMapsIntoGroup(t *testing.T) {
	gr := largeGqGroup(t)
	h := Sha3Hash{}
	e, err := HashAndSquare(h, gr, big.NewInt(1))
	require.NoError(t, err)
	// A correctly mapped element is a member: e^q = 1 mod p.
	reValidated, err := gr.FromValue(e.Value())
	require.NoError(t, err)
	assert.True(t, reValidated.Equal(e))
}

func TestHashAndSquareIsDeterministic(t *testing.T) {
	gr := largeGqGroup(t)
	h := Sha3Hash{}
	e1, err := HashAndSquare(h, gr, big.NewInt(99))
	require.NoError(t, err)
	e2, err := HashAndSquare(h, gr, big.NewInt(99))
	require.NoError(t, err)
	assert.True(t, e1.Equal(e2))
}

func TestValidateHashLengthAcceptsLargeGroup(t *testing.T) {
	gr := largeGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	assert.NoError(t, ValidateHashLength(Sha3Hash{}, zq))
}

func TestValidateHashLengthRejectsSmallGroup(t *testing.T) {
	gr := smallGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	assert.Error(t, ValidateHashLength(Sha3Hash{}, zq))
}
