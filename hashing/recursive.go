package hashing

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/serialization"
)

const (
	prefixBytes   byte = 0x00
	prefixInteger byte = 0x01
	prefixString  byte = 0x02
)

// digestFunc is a single recursion step's hash primitive: it is SHA3-256
// for RecursiveHash and length-ℓ SHAKE-256 for RecursiveHashOfLength, with
// the domain-separation/list-folding tree structure identical either way.
type digestFunc func(data []byte) []byte

// treeHash implements the recursive hash tree structure: each leaf type
// gets a distinct single-byte prefix; a list is hashed by recursively
// hashing each child, concatenating the child digests, and hashing the
// concatenation, except a singleton list which equals its only element's
// hash.
func treeHash(digest digestFunc, v Hashable) ([]byte, error) {
	switch leaf := v.(type) {
	case bytesLeaf:
		return digest(append([]byte{prefixBytes}, leaf...)), nil
	case textLeaf:
		return digest(append([]byte{prefixString}, []byte(leaf)...)), nil
	case integerLeaf:
		encoded, err := serialization.IntegerToByteArray(leaf.value)
		if err != nil {
			return nil, err
		}
		return digest(append([]byte{prefixInteger}, encoded...)), nil
	case listLeaf:
		if len(leaf.items) == 0 {
			return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "recursive hash: empty list")
		}
		if len(leaf.items) == 1 {
			return treeHash(digest, leaf.items[0])
		}
		concat := make([]byte, 0)
		for _, child := range leaf.items {
			childDigest, err := treeHash(digest, child)
			if err != nil {
				return nil, err
			}
			concat = append(concat, childDigest...)
		}
		return digest(concat), nil
	default:
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "recursive hash: unknown hashable leaf type")
	}
}

// asSingleValue treats a multi-argument call as a single list.
func asSingleValue(values []Hashable) (Hashable, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "recursive hash: no values given")
	}
	if len(values) == 1 {
		return values[0], nil
	}
	return List(values...)
}

// RecursiveHash returns h's fixed-length base digest (32 bytes for
// Sha3Hash) of the domain-separated recursive hash tree over values.
func RecursiveHash(h Hash, values ...Hashable) ([]byte, error) {
	v, err := asSingleValue(values)
	if err != nil {
		return nil, err
	}
	return treeHash(h.Digest, v)
}

// RecursiveHashOfLength computes the same recursive hash tree as
// RecursiveHash but with every node hashed through h's bitLength-bit XOF
// instead of the fixed base digest, emitting ceil(bitLength/8) bytes with
// the most significant byte truncated to bitLength mod 8 bits.
// bitLength must be at least 512.
func RecursiveHashOfLength(h Hash, bitLength int, values ...Hashable) ([]byte, error) {
	if bitLength < 512 {
		return nil, errors.Wrap(cryptoerrors.ErrPreconditionViolation, "recursive hash of length: bit length must be >= 512")
	}
	v, err := asSingleValue(values)
	if err != nil {
		return nil, err
	}
	digest := func(data []byte) []byte { return h.VariableDigest(data, bitLength) }
	return treeHash(digest, v)
}

// RecursiveHashToZq computes h = bytesToInt(RecursiveHashOfLength(bitlen(q),
// values)); while h >= q, it prepends h to values and rehashes, terminating
// with overwhelming probability. Requires bitlen(q) >= 512.
func RecursiveHashToZq(h Hash, zq *group.ZqGroup, values ...Hashable) (*group.ZqElement, error) {
	q := zq.Q()
	bitLength := q.BitLen()
	if bitLength < 512 {
		return nil, errors.Wrap(cryptoerrors.ErrPreconditionViolation, "recursive hash to Zq: bitlen(q) must be >= 512")
	}

	current := make([]Hashable, len(values))
	copy(current, values)

	for {
		digest, err := RecursiveHashOfLength(h, bitLength, current...)
		if err != nil {
			return nil, err
		}
		candidate, err := serialization.ByteArrayToInteger(digest)
		if err != nil {
			return nil, err
		}
		if candidate.Cmp(q) < 0 {
			return zq.FromValue(candidate)
		}
		prependValue, err := Integer(candidate)
		if err != nil {
			return nil, err
		}
		current = append([]Hashable{prependValue}, current...)
	}
}

// HashAndSquare maps a big integer to a Gq element of gr by computing
// r = RecursiveHashToZq(q-1, x) + 1 and returning r^2 mod p. Because
// squaring any element of Z*p lands in the order-q quadratic-residue
// subgroup Gq, the result is trusted via FromSquareRoot rather than
// re-validated with FromValue.
func HashAndSquare(h Hash, gr *group.GqGroup, x *big.Int) (*group.GqElement, error) {
	qMinusOne := new(big.Int).Sub(gr.Q(), big.NewInt(1))
	zqMinusOne, err := group.NewZqGroup(qMinusOne)
	if err != nil {
		return nil, err
	}
	xHashable, err := Integer(x)
	if err != nil {
		return nil, err
	}
	r0, err := RecursiveHashToZq(h, zqMinusOne, xHashable)
	if err != nil {
		return nil, err
	}
	r := new(big.Int).Add(r0.Value(), big.NewInt(1))
	rSquared := new(big.Int).Exp(r, big.NewInt(2), gr.P())
	return gr.FromSquareRoot(rSquared), nil
}

// ValidateHashLength enforces the guard every proof service must apply
// at construction time: the base digest length must be strictly less
// than bitlen(q).
func ValidateHashLength(h Hash, zq *group.ZqGroup) error {
	if h.DigestBitLength() >= zq.Q().BitLen() {
		return errors.Wrap(cryptoerrors.ErrPreconditionViolation,
			"hash length guard: base digest length must be strictly less than bitlen(q)")
	}
	return nil
}
