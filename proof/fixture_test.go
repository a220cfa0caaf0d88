package proof

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takakv/msc-poc/commitment"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
	"github.com/takakv/msc-poc/randomsource"
)

// largeGqGroup returns a 531-bit safe-prime group (bitlen(q) = 530), large
// enough for RecursiveHashToZq (bitlen(q) >= 512), since every argument in
// this package challenges through it.
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

func testVectorKey(t *testing.T, gr *group.GqGroup, n int) *commitment.Key {
	t.Helper()
	key, err := commitment.GetVerifiableCommitmentKey(gr, hashing.Sha3Hash{}, n)
	require.NoError(t, err)
	return key
}

func testScalarKey(t *testing.T, gr *group.GqGroup) *commitment.Key {
	t.Helper()
	return testVectorKey(t, gr, 1)
}

func zqVector(t *testing.T, zq *group.ZqGroup, values ...int64) group.GroupVector[*group.ZqElement] {
	t.Helper()
	elements := make([]*group.ZqElement, len(values))
	for i, v := range values {
		e, err := zq.FromValue(big.NewInt(v))
		require.NoError(t, err)
		elements[i] = e
	}
	v, err := group.NewGroupVector(elements)
	require.NoError(t, err)
	return v
}

func sampleZqT(t *testing.T, r randomsource.Random, zq *group.ZqGroup) *group.ZqElement {
	t.Helper()
	e, err := sampleZq(r, zq)
	require.NoError(t, err)
	return e
}
