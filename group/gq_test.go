package group

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyGqGroup returns a small (p=23, q=11, g=2) group for fast tests.
func tinyGqGroup(t *testing.T) *GqGroup {
	t.Helper()
	g, err := NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	return g
}

func TestNewGqGroupValid(t *testing.T) {
	g := tinyGqGroup(t)
	assert.Equal(t, int64(23), g.P().Int64())
	assert.Equal(t, int64(11), g.Q().Int64())
	assert.Equal(t, int64(2), g.G().Int64())
}

func TestNewGqGroupRejectsInvalidParameters(t *testing.T) {
	cases := []struct {
		name       string
		p, q, g    int64
	}{
		{"p not prime", 24, 11, 2},
		{"q not prime", 23, 12, 2},
		{"p != 2q+1", 23, 5, 2},
		{"g == 1", 23, 11, 1},
		{"g out of range", 23, 11, 23},
		{"g not in subgroup", 23, 11, 22}, // 22 has order 2, not 11
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewGqGroup(big.NewInt(c.p), big.NewInt(c.q), big.NewInt(c.g))
			assert.Error(t, err)
		})
	}
}

func TestGqElementMultiplyExponentiateInvert(t *testing.T) {
	gr := tinyGqGroup(t)
	zq, err := NewZqGroup(gr.Q())
	require.NoError(t, err)

	a, err := gr.FromValue(big.NewInt(4))
	require.NoError(t, err)
	b, err := gr.FromValue(big.NewInt(8))
	require.NoError(t, err)

	prod, err := a.Multiply(b)
	require.NoError(t, err)
	assert.Equal(t, int64(32%23), prod.Value().Int64())

	exp, err := zq.FromValue(big.NewInt(3))
	require.NoError(t, err)
	powered, err := a.Exponentiate(exp)
	require.NoError(t, err)
	want := new(big.Int).Exp(big.NewInt(4), big.NewInt(3), big.NewInt(23))
	assert.Equal(t, want.Int64(), powered.Value().Int64())

	inv := a.Invert()
	one, err := a.Multiply(inv)
	require.NoError(t, err)
	assert.True(t, one.Equal(gr.Identity()))
}

func TestGqElementRejectsDifferentGroups(t *testing.T) {
	g1 := tinyGqGroup(t)
	g2, err := NewGqGroup(big.NewInt(47), big.NewInt(23), big.NewInt(2))
	require.NoError(t, err)

	a, err := g1.FromValue(big.NewInt(4))
	require.NoError(t, err)
	b, err := g2.FromValue(big.NewInt(4))
	require.NoError(t, err)

	_, err = a.Multiply(b)
	assert.Error(t, err)
}

func TestGqFromValueRejectsNonMember(t *testing.T) {
	gr := tinyGqGroup(t)
	// 2 generates the order-11 subgroup, but 5 has order 22 mod 23 (not a
	// member of <2>).
	_, err := gr.FromValue(big.NewInt(5))
	assert.Error(t, err)
}
