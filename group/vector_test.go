package group

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupVectorHomogeneity(t *testing.T) {
	gr := tinyGqGroup(t)
	a, _ := gr.FromValue(big.NewInt(2))
	b, _ := gr.FromValue(big.NewInt(4))
	v, err := NewGroupVector([]*GqElement{a, b})
	require.NoError(t, err)
	assert.Equal(t, 2, v.Size())
	assert.Equal(t, 1, v.ElementSize())
}

func TestGroupVectorRejectsHeterogeneousGroups(t *testing.T) {
	g1 := tinyGqGroup(t)
	g2, err := NewGqGroup(big.NewInt(47), big.NewInt(23), big.NewInt(2))
	require.NoError(t, err)

	a, _ := g1.FromValue(big.NewInt(2))
	b, _ := g2.FromValue(big.NewInt(2))
	_, err = NewGroupVector([]*GqElement{a, b})
	assert.Error(t, err)
}

func TestGroupVectorAppendPrepend(t *testing.T) {
	gr := tinyGqGroup(t)
	a, _ := gr.FromValue(big.NewInt(2))
	b, _ := gr.FromValue(big.NewInt(4))
	c, _ := gr.FromValue(big.NewInt(8))

	v, err := NewGroupVector([]*GqElement{a, b})
	require.NoError(t, err)

	appended, err := v.Append(c)
	require.NoError(t, err)
	assert.Equal(t, 3, appended.Size())
	assert.True(t, appended.Get(2).Equal(c))

	prepended, err := v.Prepend(c)
	require.NoError(t, err)
	assert.True(t, prepended.Get(0).Equal(c))
}

func TestGroupVectorToMatrixRowMajor(t *testing.T) {
	gr := tinyGqGroup(t)
	values := []int64{2, 4, 8, 16, 9, 18}
	elements := make([]*GqElement, len(values))
	for i, v := range values {
		elements[i], _ = gr.FromValue(big.NewInt(v))
	}
	vec, err := NewGroupVector(elements)
	require.NoError(t, err)

	m, err := vec.ToMatrix(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumRows())
	assert.Equal(t, 3, m.NumColumns())
	assert.Equal(t, int64(16), m.Get(1, 0).Value().Int64())
	assert.Equal(t, int64(9), m.Get(1, 1).Value().Int64())
}

func TestGroupMatrixTransposeAndColumns(t *testing.T) {
	gr := tinyGqGroup(t)
	values := []int64{2, 4, 8, 16, 9, 18}
	elements := make([]*GqElement, len(values))
	for i, v := range values {
		elements[i], _ = gr.FromValue(big.NewInt(v))
	}
	vec, err := NewGroupVector(elements)
	require.NoError(t, err)
	m, err := vec.ToMatrix(2, 3)
	require.NoError(t, err)

	transposed, err := m.Transpose()
	require.NoError(t, err)
	assert.Equal(t, 3, transposed.NumRows())
	assert.Equal(t, 2, transposed.NumColumns())
	assert.Equal(t, int64(4), transposed.Get(1, 0).Value().Int64())

	col, err := m.Column(1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), col.Get(0).Value().Int64())
	assert.Equal(t, int64(9), col.Get(1).Value().Int64())
}

func TestGroupMatrixAppendColumn(t *testing.T) {
	gr := tinyGqGroup(t)
	a, _ := gr.FromValue(big.NewInt(2))
	b, _ := gr.FromValue(big.NewInt(4))
	vec, err := NewGroupVector([]*GqElement{a, b})
	require.NoError(t, err)
	m, err := vec.ToMatrix(2, 1)
	require.NoError(t, err)

	c, _ := gr.FromValue(big.NewInt(8))
	d, _ := gr.FromValue(big.NewInt(16))
	col, err := NewGroupVector([]*GqElement{c, d})
	require.NoError(t, err)

	appended, err := m.AppendColumn(col)
	require.NoError(t, err)
	assert.Equal(t, 2, appended.NumColumns())
	assert.Equal(t, int64(8), appended.Get(0, 1).Value().Int64())
}
