// Package hashing implements the domain-separated recursive hash that
// every algebraic and ElGamal object renders itself to via ToHashable, plus
// the SHA3-256/SHAKE-256-backed Hash service that consumes it.
package hashing

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
)

// Hashable is the closed tagged union recursive hashing operates over:
// a byte array, a UTF-8 string, a non-negative big integer, or a
// non-empty list of Hashable. Every domain object exposes a single
// ToHashable() Hashable method that maps to this union; no open
// polymorphism is needed, so Hashable is implemented only by the
// unexported leaf types constructed by Bytes/Text/Integer/List below.
type Hashable interface {
	isHashable()
}

type bytesLeaf []byte

func (bytesLeaf) isHashable() {}

type textLeaf string

func (textLeaf) isHashable() {}

type integerLeaf struct{ value *big.Int }

func (integerLeaf) isHashable() {}

type listLeaf struct{ items []Hashable }

func (listLeaf) isHashable() {}

// Bytes wraps a byte array as a Hashable leaf (domain prefix 0x00).
func Bytes(b []byte) Hashable { return bytesLeaf(b) }

// Text wraps a UTF-8 string as a Hashable leaf (domain prefix 0x02).
func Text(s string) Hashable { return textLeaf(s) }

// Integer wraps a non-negative big integer as a Hashable leaf (domain
// prefix 0x01). Fails with InvalidArgument for a negative or nil value.
func Integer(x *big.Int) (Hashable, error) {
	if x == nil || x.Sign() < 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "hashable integer: must be non-negative")
	}
	return integerLeaf{value: new(big.Int).Set(x)}, nil
}

// List wraps a non-empty sequence of Hashable values as a single Hashable.
// Fails with InvalidArgument if items is empty, since an empty list is
// rejected at hash time.
func List(items ...Hashable) (Hashable, error) {
	if len(items) == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "hashable list: must not be empty")
	}
	cp := make([]Hashable, len(items))
	copy(cp, items)
	return listLeaf{items: cp}, nil
}
