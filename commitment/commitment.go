// Package commitment implements Pedersen vector and matrix commitments
// over a GqGroup, plus the deterministic, publicly verifiable derivation
// of a commitment key from the group alone.
package commitment

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
)

// Key is a Pedersen commitment key (h, g_1, ..., g_n): h blinds the
// randomness, g_i binds the i-th value.
type Key struct {
	h *group.GqElement
	g group.GroupVector[*group.GqElement]
}

// NewKey wraps (h, g) as a commitment key. g must be non-empty and share
// h's group.
func NewKey(h *group.GqElement, g group.GroupVector[*group.GqElement]) (*Key, error) {
	if g.IsEmpty() {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "commitment key: g must be non-empty")
	}
	if !h.SameGroup(g.Get(0)) {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "commitment key: h and g must share a group")
	}
	return &Key{h: h, g: g}, nil
}

// Size returns n, the number of value bases.
func (k *Key) Size() int { return k.g.Size() }

// H returns the randomness base.
func (k *Key) H() *group.GqElement { return k.h }

// G returns the value-base vector.
func (k *Key) G() group.GroupVector[*group.GqElement] { return k.g }

// GetCommitment returns h^randomness * g_0^value, the single-value
// Pedersen commitment.
func GetCommitment(value *group.ZqElement, randomness *group.ZqElement, key *Key) (*group.GqElement, error) {
	values, err := group.NewGroupVector([]*group.ZqElement{value})
	if err != nil {
		return nil, err
	}
	return GetCommitmentVector(values, randomness, key)
}

// GetCommitmentVector returns h^randomness * prod_i g_i^values_i.
// values.Size() must not exceed key.Size().
func GetCommitmentVector(values group.GroupVector[*group.ZqElement], randomness *group.ZqElement, key *Key) (*group.GqElement, error) {
	n := values.Size()
	if n == 0 || n > key.Size() {
		return nil, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"commitment vector: size %d out of (0, %d]", n, key.Size())
	}
	acc, err := key.h.Exponentiate(randomness)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		term, err := key.g.Get(i).Exponentiate(values.Get(i))
		if err != nil {
			return nil, err
		}
		acc, err = acc.Multiply(term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// GetCommitmentMatrix returns one commitment per column of matrix, each
// blinded by the corresponding component of randomness. matrix.NumRows()
// must not exceed key.Size(), and matrix.NumColumns() must equal
// randomness.Size().
func GetCommitmentMatrix(
	matrix group.GroupMatrix[*group.ZqElement], randomness group.GroupVector[*group.ZqElement], key *Key,
) (group.GroupVector[*group.GqElement], error) {
	if matrix.NumColumns() != randomness.Size() {
		return group.GroupVector[*group.GqElement]{}, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"commitment matrix: column count %d != randomness size %d", matrix.NumColumns(), randomness.Size())
	}
	commitments := make([]*group.GqElement, matrix.NumColumns())
	for j := 0; j < matrix.NumColumns(); j++ {
		col, err := matrix.Column(j)
		if err != nil {
			return group.GroupVector[*group.GqElement]{}, err
		}
		c, err := GetCommitmentVector(col, randomness.Get(j), key)
		if err != nil {
			return group.GroupVector[*group.GqElement]{}, err
		}
		commitments[j] = c
	}
	return group.NewGroupVector(commitments)
}

// GetVerifiableCommitmentKey deterministically derives a length-n
// commitment key from gr alone, so any party can recompute and verify it
// independently of whoever ran key generation: h and each g_i are mapped
// from the integers 0, 1, ..., n via hashing.HashAndSquare, retried on
// collision with the identity, the generator, or any element already
// produced for this key, each of which occurs with negligible probability.
func GetVerifiableCommitmentKey(gr *group.GqGroup, h hashing.Hash, n int) (*Key, error) {
	if n <= 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "verifiable commitment key: n must be positive")
	}
	identity := gr.Identity()
	generator := gr.Generator()
	produced := make([]*group.GqElement, 0, n+1)

	collides := func(e *group.GqElement) bool {
		if e.Equal(identity) || e.Equal(generator) {
			return true
		}
		for _, prior := range produced {
			if e.Equal(prior) {
				return true
			}
		}
		return false
	}

	derive := func(seed int64) (*group.GqElement, error) {
		x := big.NewInt(seed)
		for {
			e, err := hashing.HashAndSquare(h, gr, x)
			if err != nil {
				return nil, err
			}
			if !collides(e) {
				produced = append(produced, e)
				return e, nil
			}
			x = new(big.Int).Add(x, big.NewInt(1))
		}
	}

	base, err := derive(0)
	if err != nil {
		return nil, err
	}
	gElements := make([]*group.GqElement, n)
	for i := 0; i < n; i++ {
		e, err := derive(int64(i + 1))
		if err != nil {
			return nil, err
		}
		gElements[i] = e
	}
	g, err := group.NewGroupVector(gElements)
	if err != nil {
		return nil, err
	}
	return NewKey(base, g)
}
