package commitment

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
)

func largeGqGroup(t *testing.T) *group.GqGroup {
	t.Helper()
	p, ok := new(big.Int).SetString(
		"5004837064530051990967491186995949751242186830471498373755173871614481861263832238873450557290091835126535162604400071119566855528318030546070745277547414476683", 10)
	require.True(t, ok)
	q, ok := new(big.Int).SetString(
		"2502418532265025995483745593497974875621093415235749186877586935807240930631916119436725278645045917563267581302200035559783427764159015273035372638773707238341", 10)
	require.True(t, ok)
	gr, err := group.NewGqGroup(p, q, big.NewInt(3))
	require.NoError(t, err)
	return gr
}

func tinyKey(t *testing.T, gr *group.GqGroup) *Key {
	t.Helper()
	h, err := gr.FromValue(big.NewInt(4))
	require.NoError(t, err)
	g1, err := gr.FromValue(big.NewInt(2))
	require.NoError(t, err)
	g2, err := gr.FromValue(big.NewInt(8))
	require.NoError(t, err)
	g, err := group.NewGroupVector([]*group.GqElement{g1, g2})
	require.NoError(t, err)
	key, err := NewKey(h, g)
	require.NoError(t, err)
	return key
}

func TestGetCommitmentMatchesManualExponentiation(t *testing.T) {
	gr, err := group.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	key := tinyKey(t, gr)
	zq := group.SameOrderAsGq(gr)

	value, err := zq.FromValue(big.NewInt(3))
	require.NoError(t, err)
	randomness, err := zq.FromValue(big.NewInt(5))
	require.NoError(t, err)

	c, err := GetCommitment(value, randomness, key)
	require.NoError(t, err)

	hr, err := key.H().Exponentiate(randomness)
	require.NoError(t, err)
	gv, err := key.G().Get(0).Exponentiate(value)
	require.NoError(t, err)
	expected, err := hr.Multiply(gv)
	require.NoError(t, err)

	assert.True(t, c.Equal(expected))
}

func TestGetCommitmentVectorDiffersForDifferentValues(t *testing.T) {
	gr, err := group.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	key := tinyKey(t, gr)
	zq := group.SameOrderAsGq(gr)

	randomness, err := zq.FromValue(big.NewInt(5))
	require.NoError(t, err)
	v1, err := group.NewGroupVector([]*group.ZqElement{mustZq(t, zq, 2), mustZq(t, zq, 3)})
	require.NoError(t, err)
	v2, err := group.NewGroupVector([]*group.ZqElement{mustZq(t, zq, 2), mustZq(t, zq, 4)})
	require.NoError(t, err)

	c1, err := GetCommitmentVector(v1, randomness, key)
	require.NoError(t, err)
	c2, err := GetCommitmentVector(v2, randomness, key)
	require.NoError(t, err)
	assert.False(t, c1.Equal(c2))
}

func mustZq(t *testing.T, zq *group.ZqGroup, v int64) *group.ZqElement {
	t.Helper()
	e, err := zq.FromValue(big.NewInt(v))
	require.NoError(t, err)
	return e
}

func TestGetCommitmentMatrixOneColumnPerRandomness(t *testing.T) {
	gr, err := group.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	key := tinyKey(t, gr)
	zq := group.SameOrderAsGq(gr)

	v00, _ := zq.FromValue(big.NewInt(1))
	v10, _ := zq.FromValue(big.NewInt(2))
	v01, _ := zq.FromValue(big.NewInt(3))
	v11, _ := zq.FromValue(big.NewInt(4))
	row0, err := group.NewGroupVector([]*group.ZqElement{v00, v01})
	require.NoError(t, err)
	row1, err := group.NewGroupVector([]*group.ZqElement{v10, v11})
	require.NoError(t, err)
	matrix, err := group.NewGroupMatrix([]group.GroupVector[*group.ZqElement]{row0, row1})
	require.NoError(t, err)

	r0, _ := zq.FromValue(big.NewInt(6))
	r1, _ := zq.FromValue(big.NewInt(7))
	randomness, err := group.NewGroupVector([]*group.ZqElement{r0, r1})
	require.NoError(t, err)

	commitments, err := GetCommitmentMatrix(matrix, randomness, key)
	require.NoError(t, err)
	assert.Equal(t, 2, commitments.Size())

	col0, err := matrix.Column(0)
	require.NoError(t, err)
	expected0, err := GetCommitmentVector(col0, r0, key)
	require.NoError(t, err)
	assert.True(t, commitments.Get(0).Equal(expected0))
}

func TestGetVerifiableCommitmentKeyIsDeterministic(t *testing.T) {
	gr := largeGqGroup(t)
	h := hashing.Sha3Hash{}
	k1, err := GetVerifiableCommitmentKey(gr, h, 3)
	require.NoError(t, err)
	k2, err := GetVerifiableCommitmentKey(gr, h, 3)
	require.NoError(t, err)

	assert.True(t, k1.H().Equal(k2.H()))
	for i := 0; i < 3; i++ {
		assert.True(t, k1.G().Get(i).Equal(k2.G().Get(i)))
	}
}

func TestGetVerifiableCommitmentKeyElementsAreDistinct(t *testing.T) {
	gr := largeGqGroup(t)
	h := hashing.Sha3Hash{}
	key, err := GetVerifiableCommitmentKey(gr, h, 4)
	require.NoError(t, err)

	seen := map[string]bool{key.H().Value().String(): true}
	for i := 0; i < key.Size(); i++ {
		s := key.G().Get(i).Value().String()
		assert.False(t, seen[s], "commitment key base repeated at index %d", i)
		seen[s] = true
	}
}
