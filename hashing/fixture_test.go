package hashing

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takakv/msc-poc/group"
)

// largeGqGroup returns a 531-bit safe-prime group (bitlen(q) = 530), large
// enough for RecursiveHashToZq/HashAndSquare, which require bitlen(q) >= 512,
// and for ValidateHashLength, which requires bitlen(q) > 256.
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

func smallGqGroup(t *testing.T) *group.GqGroup {
	t.Helper()
	gr, err := group.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	return gr
}
