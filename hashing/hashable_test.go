package hashing

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerRejectsNegative(t *testing.T) {
	_, err := Integer(big.NewInt(-1))
	assert.Error(t, err)
}

func TestIntegerRejectsNil(t *testing.T) {
	_, err := Integer(nil)
	assert.Error(t, err)
}

func TestListRejectsEmpty(t *testing.T) {
	_, err := List()
	assert.Error(t, err)
}

func TestListAcceptsNonEmpty(t *testing.T) {
	a, err := Integer(big.NewInt(1))
	require.NoError(t, err)
	b := Text("x")
	l, err := List(a, b)
	require.NoError(t, err)
	assert.NotNil(t, l)
}
