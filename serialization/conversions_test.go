package serialization

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerToByteArray(t *testing.T) {
	cases := []struct {
		x    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{256, []byte{0x01, 0x00}},
		{1 << 31, []byte{0x80, 0x00, 0x00, 0x00}},
	}
	for _, c := range cases {
		got, err := IntegerToByteArray(big.NewInt(c.x))
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestIntegerToByteArrayRejectsNegative(t *testing.T) {
	_, err := IntegerToByteArray(big.NewInt(-1))
	assert.Error(t, err)
}

func TestByteArrayIntegerRoundTrip(t *testing.T) {
	for _, x := range []int64{0, 1, 255, 256, 65535, 1 << 31, 1 << 40} {
		b, err := IntegerToByteArray(big.NewInt(x))
		require.NoError(t, err)
		got, err := ByteArrayToInteger(b)
		require.NoError(t, err)
		assert.Equal(t, x, got.Int64())
	}
}

func TestByteArrayToIntegerRejectsEmpty(t *testing.T) {
	_, err := ByteArrayToInteger(nil)
	assert.Error(t, err)
}

func TestStringByteArrayRoundTrip(t *testing.T) {
	for _, s := range []string{"", "hello", "éèê", "中文"} {
		b := StringToByteArray(s)
		if len(b) == 0 {
			continue // ByteArrayToString rejects empty input by contract.
		}
		got, err := ByteArrayToString(b)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestByteArrayToStringRejectsInvalidUTF8(t *testing.T) {
	_, err := ByteArrayToString([]byte{0xff, 0xfe})
	assert.Error(t, err)
}

func TestIntegerStringRoundTrip(t *testing.T) {
	x := big.NewInt(123456789)
	s, err := IntegerToString(x)
	require.NoError(t, err)
	assert.Equal(t, "123456789", s)

	got, err := StringToInteger(s)
	require.NoError(t, err)
	assert.Equal(t, 0, x.Cmp(got))
}

func TestStringToIntegerRejectsNonDigits(t *testing.T) {
	for _, s := range []string{"", "-1", " 1", "1 ", "1.0", "0x1"} {
		_, err := StringToInteger(s)
		assert.Error(t, err, s)
	}
}

func TestAllEqualUnderProjection(t *testing.T) {
	type pair struct{ group, val int }
	same := []pair{{1, 10}, {1, 20}, {1, 30}}
	diff := []pair{{1, 10}, {2, 20}}

	assert.True(t, AllEqualUnderProjection(same, func(p pair) int { return p.group }))
	assert.False(t, AllEqualUnderProjection(diff, func(p pair) int { return p.group }))
	assert.True(t, AllEqualUnderProjection([]pair{}, func(p pair) int { return p.group }))
}
