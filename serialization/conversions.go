// Package serialization provides the bit-exact conversions between
// integers, byte arrays, and strings shared by every other package, plus
// the handful of validation helpers ("all equal under a projection",
// "non-empty", bounds checks) used throughout the algebraic kernel.
package serialization

import (
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
)

// IntegerToByteArray returns the minimum-length big-endian encoding of x.
// Zero encodes to a single 0x00 byte. x must be non-negative.
func IntegerToByteArray(x *big.Int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "integer to byte array: negative input")
	}
	if x.Sign() == 0 {
		return []byte{0x00}, nil
	}
	// big.Int.Bytes already returns the minimum-length big-endian
	// encoding with no leading zero byte, which is exactly B[n-1-i] =
	// (x / 256^i) mod 256 for n = ceil(bitlen(x)/8).
	return x.Bytes(), nil
}

// ByteArrayToInteger big-endian decodes B into a non-negative integer.
func ByteArrayToInteger(b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidEncoding, "byte array to integer: empty input")
	}
	return new(big.Int).SetBytes(b), nil
}

// StringToByteArray UTF-8 encodes s.
func StringToByteArray(s string) []byte {
	return []byte(s)
}

// ByteArrayToString UTF-8 decodes b, failing if b is not valid UTF-8.
func ByteArrayToString(b []byte) (string, error) {
	if len(b) == 0 {
		return "", errors.Wrap(cryptoerrors.ErrInvalidEncoding, "byte array to string: empty input")
	}
	if !utf8.Valid(b) {
		return "", errors.Wrap(cryptoerrors.ErrInvalidEncoding, "byte array to string: invalid UTF-8")
	}
	return string(b), nil
}

// IntegerToString returns the decimal representation of a non-negative
// integer, with no sign and no whitespace.
func IntegerToString(x *big.Int) (string, error) {
	if x.Sign() < 0 {
		return "", errors.Wrap(cryptoerrors.ErrInvalidArgument, "integer to string: negative input")
	}
	return x.String(), nil
}

// StringToInteger parses a decimal string with no sign, no whitespace, and
// at least one digit.
func StringToInteger(s string) (*big.Int, error) {
	if len(s) == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidEncoding, "string to integer: empty input")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, errors.Wrap(cryptoerrors.ErrInvalidEncoding, "string to integer: non-digit character")
		}
	}
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidEncoding, "string to integer: malformed decimal")
	}
	return x, nil
}

// TrimHexSpaces strips the whitespace RFC3526-style hex moduli are usually
// pretty-printed with.
func TrimHexSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
