package proof

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takakv/msc-poc/elgamal"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
	"github.com/takakv/msc-poc/randomsource"
	"github.com/takakv/msc-poc/shuffle"
)

// buildShuffleFixture builds an N=6 instance, decomposed m=2, n=3 by the
// tests below.
func buildShuffleFixture(t *testing.T) (
	*group.GqGroup, *elgamal.PublicKey, group.GroupVector[*elgamal.Ciphertext], group.GroupVector[*elgamal.Ciphertext],
	*shuffle.Permutation, group.GroupVector[*group.ZqElement],
) {
	t.Helper()
	gr := largeGqGroup(t)
	zq := group.SameOrderAsGq(gr)
	rnd := randomsource.Secure{}

	_, pk, err := elgamal.GenKeyPair(rnd, gr, 1)
	require.NoError(t, err)

	// Even powers of 2, hence quadratic residues and Gq members.
	plaintexts := []int64{4, 16, 64, 256, 1024, 4096}
	ciphertexts := make([]*elgamal.Ciphertext, len(plaintexts))
	for i, v := range plaintexts {
		e, err := gr.FromValue(big.NewInt(v))
		require.NoError(t, err)
		vec, err := group.NewGroupVector([]*group.GqElement{e})
		require.NoError(t, err)
		m, err := elgamal.NewMessage(vec)
		require.NoError(t, err)
		rVal, err := rnd.RandomInt(zq.Q())
		require.NoError(t, err)
		r, err := zq.FromValue(rVal)
		require.NoError(t, err)
		c, err := elgamal.Encrypt(gr, m, pk, r)
		require.NoError(t, err)
		ciphertexts[i] = c
	}
	original, err := group.NewGroupVector(ciphertexts)
	require.NoError(t, err)

	shuffled, permutation, randomizers, err := shuffle.ReEncryptAndShuffle(rnd, gr, pk, original)
	require.NoError(t, err)

	return gr, pk, original, shuffled, permutation, randomizers
}

func TestShuffleArgumentRoundTrip(t *testing.T) {
	rnd := randomsource.Secure{}
	h := hashing.Sha3Hash{}
	gr, pk, original, shuffled, permutation, randomizers := buildShuffleFixture(t)
	key := testVectorKey(t, gr, original.Size())
	scalarKey := testScalarKey(t, gr)
	const m, n = 2, 3

	proof, err := GenerateShuffleArgument(rnd, h, gr, pk, key, scalarKey, original, shuffled, permutation, randomizers, m, n)
	require.NoError(t, err)

	result, err := VerifyShuffleArgument(h, gr, pk, key, scalarKey, original, shuffled, m, n, proof)
	require.NoError(t, err)
	assert.True(t, result.IsSuccess(), result.String())
}

func TestVerifyShuffleArgumentRejectsTamperedShuffle(t *testing.T) {
	rnd := randomsource.Secure{}
	h := hashing.Sha3Hash{}
	gr, pk, original, shuffled, permutation, randomizers := buildShuffleFixture(t)
	key := testVectorKey(t, gr, original.Size())
	scalarKey := testScalarKey(t, gr)
	const m, n = 2, 3

	proof, err := GenerateShuffleArgument(rnd, h, gr, pk, key, scalarKey, original, shuffled, permutation, randomizers, m, n)
	require.NoError(t, err)

	// Re-shuffle independently: a different permutation/randomizer choice
	// produces a ciphertext vector the proof was never generated against.
	otherShuffled, _, _, err := shuffle.ReEncryptAndShuffle(rnd, gr, pk, original)
	require.NoError(t, err)

	result, err := VerifyShuffleArgument(h, gr, pk, key, scalarKey, original, otherShuffled, m, n, proof)
	require.NoError(t, err)
	assert.False(t, result.IsSuccess())
}

func TestVerifyShuffleArgumentRejectsWrongDecomposition(t *testing.T) {
	rnd := randomsource.Secure{}
	h := hashing.Sha3Hash{}
	gr, pk, original, shuffled, permutation, randomizers := buildShuffleFixture(t)
	key := testVectorKey(t, gr, original.Size())
	scalarKey := testScalarKey(t, gr)

	proof, err := GenerateShuffleArgument(rnd, h, gr, pk, key, scalarKey, original, shuffled, permutation, randomizers, 2, 3)
	require.NoError(t, err)

	// A verifier using a different (but still valid, 6 = 3*2) m, n
	// decomposition must not accept a proof generated under a different
	// reshaping, since the commitments' column layout no longer lines up.
	result, err := VerifyShuffleArgument(h, gr, pk, key, scalarKey, original, shuffled, 3, 2, proof)
	require.NoError(t, err)
	assert.False(t, result.IsSuccess())
}
