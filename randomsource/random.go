// Package randomsource provides the uniform-sampling primitives shared by
// every service that needs fresh randomness: uniform big integers,
// uniform byte strings, RFC 4648 alphabet strings, and unique decimal
// codes.
package randomsource

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
)

// Random is the injectable source of randomness every other package
// depends on. Implementations must be safe for concurrent use if shared
// across goroutines by the caller; Secure is the only implementation
// shipped by this module.
type Random interface {
	// RandomInt returns a uniformly distributed integer in [0, m).
	RandomInt(m *big.Int) (*big.Int, error)
	// RandomBytes returns n cryptographically random bytes.
	RandomBytes(n int) ([]byte, error)
}

// Secure is a Random backed by crypto/rand. It holds no state, so a zero
// value is ready to use and safe to share across goroutines.
type Secure struct{}

// RandomInt samples uniformly from [0, m) by rejection sampling over
// ceil(log2(m))-bit draws, so no value is biased toward the low end of
// the range the way a naive mod-reduction would be.
func (Secure) RandomInt(m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "random int: modulus must be positive")
	}
	return rand.Int(rand.Reader, m)
}

// RandomBytes returns n cryptographically random bytes.
func (Secure) RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "random bytes: negative length")
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.Wrap(err, "random bytes: reading from entropy source")
	}
	return b, nil
}

// GenRandomBase16String returns a hex string of exactly n characters drawn
// uniformly from the RFC 4648 Table 1 alphabet.
func GenRandomBase16String(r Random, n int) (string, error) {
	raw, err := randomAlphabetBytes(r, n, 16)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw)[:n], nil
}

// GenRandomBase32String returns a base32 string of exactly n characters
// drawn uniformly from the RFC 4648 Table 3 alphabet.
func GenRandomBase32String(r Random, n int) (string, error) {
	raw, err := randomAlphabetBytes(r, n, 32)
	if err != nil {
		return "", err
	}
	return base32.StdEncoding.EncodeToString(raw)[:n], nil
}

// GenRandomBase64String returns a base64 string of exactly n characters
// drawn uniformly from the RFC 4648 Table 5 alphabet.
func GenRandomBase64String(r Random, n int) (string, error) {
	raw, err := randomAlphabetBytes(r, n, 64)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw)[:n], nil
}

// randomAlphabetBytes draws enough uniformly-random bytes that the first n
// characters of their base-`base` encoding are each built only from
// random bits, so the callers' slicing of that encoding to n characters
// yields n uniform symbols with no padding among them.
func randomAlphabetBytes(r Random, n int, base int64) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "random string: negative length")
	}
	bitsPerChar := 0
	for b := base; b > 1; b >>= 1 {
		bitsPerChar++
	}
	byteLen := (n*bitsPerChar + 7) / 8
	if byteLen == 0 {
		return nil, nil
	}
	return r.RandomBytes(byteLen)
}

// GenUniqueDecimalStrings returns n distinct decimal strings of length l,
// left-padded with '0'. Fails if n exceeds the number of l-digit decimal
// strings, 10^l.
func GenUniqueDecimalStrings(r Random, l, n int) ([]string, error) {
	if l <= 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "unique decimal strings: length must be positive")
	}
	if n < 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "unique decimal strings: count must be non-negative")
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(l)), nil)
	if big.NewInt(int64(n)).Cmp(limit) > 0 {
		return nil, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"unique decimal strings: n=%d exceeds 10^%d possible codes", n, l)
	}

	seen := make(map[string]struct{}, n)
	result := make([]string, 0, n)
	format := fmt.Sprintf("%%0%dd", l)
	for len(result) < n {
		v, err := r.RandomInt(limit)
		if err != nil {
			return nil, errors.Wrap(err, "unique decimal strings: sampling")
		}
		s := fmt.Sprintf(format, v)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result, nil
}
