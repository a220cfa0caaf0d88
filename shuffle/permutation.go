// Package shuffle implements Fisher-Yates permutation generation and the
// re-encryption shuffle that permutes and re-randomizes an ElGamal
// ciphertext vector without revealing the permutation.
package shuffle

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/randomsource"
)

// Permutation is a bijection of {0, ..., N-1}: Get(i) returns the source
// index feeding output position i, which is how Shuffle applies it.
type Permutation struct {
	mapping []int
}

// NewPermutation validates that mapping is a bijection of {0, ..., len-1}
// and wraps it as a Permutation.
func NewPermutation(mapping []int) (*Permutation, error) {
	n := len(mapping)
	if n == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "permutation: must be non-empty")
	}
	seen := make([]bool, n)
	for _, v := range mapping {
		if v < 0 || v >= n || seen[v] {
			return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "permutation: not a bijection of [0, N)")
		}
		seen[v] = true
	}
	cp := make([]int, n)
	copy(cp, mapping)
	return &Permutation{mapping: cp}, nil
}

// Size returns N.
func (p *Permutation) Size() int { return len(p.mapping) }

// Get returns the index the element at output position i is drawn from.
func (p *Permutation) Get(i int) int { return p.mapping[i] }

// GeneratePermutation samples a uniformly random permutation of
// {0, ..., n-1} via the Fisher-Yates shuffle. n must be positive.
func GeneratePermutation(r randomsource.Random, n int) (*Permutation, error) {
	if n <= 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "generate permutation: n must be positive")
	}
	mapping := make([]int, n)
	for i := range mapping {
		mapping[i] = i
	}
	for i := n - 1; i > 0; i-- {
		jBig, err := r.RandomInt(big.NewInt(int64(i + 1)))
		if err != nil {
			return nil, err
		}
		j := int(jBig.Int64())
		mapping[i], mapping[j] = mapping[j], mapping[i]
	}
	return &Permutation{mapping: mapping}, nil
}
