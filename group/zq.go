package group

import (
	"math/big"

	"github.com/ing-bank/zkrp/util/bn"
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
)

// ZqGroup is the additive ring of integers mod a prime q; its identity is
// 0. ZqGroup values are always created with the same order as a GqGroup so
// exponents line up with the group they act on.
type ZqGroup struct {
	q *big.Int
}

// NewZqGroup returns the ring Z/qZ for a prime q.
func NewZqGroup(q *big.Int) (*ZqGroup, error) {
	if q == nil || q.Sign() <= 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidGroupParameters, "zq group: q must be positive")
	}
	return &ZqGroup{q: new(big.Int).Set(q)}, nil
}

// SameOrderAsGq returns the ZqGroup whose order matches gr's order, so
// exponents always match their base group.
func SameOrderAsGq(gr *GqGroup) *ZqGroup {
	return &ZqGroup{q: gr.Q()}
}

// SameOrderAs reports whether z shares its order with gr.
func (z *ZqGroup) SameOrderAs(gr *GqGroup) bool {
	return z.q.Cmp(gr.q) == 0
}

// Q returns the group's order.
func (z *ZqGroup) Q() *big.Int { return new(big.Int).Set(z.q) }

// Equal reports structural equality of two ZqGroup values.
func (z *ZqGroup) Equal(other *ZqGroup) bool {
	if z == other {
		return true
	}
	if z == nil || other == nil {
		return false
	}
	return z.q.Cmp(other.q) == 0
}

// Identity returns the additive identity, 0.
func (z *ZqGroup) Identity() *ZqElement {
	return &ZqElement{group: z, value: big.NewInt(0)}
}

// ZqElement is a value v in [0, q), tagged with its ZqGroup.
type ZqElement struct {
	group *ZqGroup
	value *big.Int
}

// FromValue builds a ZqElement, reducing v mod q.
func (z *ZqGroup) FromValue(v *big.Int) (*ZqElement, error) {
	if v == nil {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "zq element: nil value")
	}
	reduced := bn.Mod(v, z.q)
	return &ZqElement{group: z, value: reduced}, nil
}

// Group returns the element's group.
func (e *ZqElement) Group() *ZqGroup { return e.group }

// Value returns the element's underlying value in [0, q).
func (e *ZqElement) Value() *big.Int { return new(big.Int).Set(e.value) }

// SameGroup reports whether e and other belong to equal ZqGroups,
// satisfying group.GroupElement[ZqElement].
func (e *ZqElement) SameGroup(other *ZqElement) bool {
	return e.group.Equal(other.group)
}

// Equal compares value and group.
func (e *ZqElement) Equal(other *ZqElement) bool {
	if other == nil {
		return false
	}
	return e.SameGroup(other) && e.value.Cmp(other.value) == 0
}

// Add returns e + other mod q.
func (e *ZqElement) Add(other *ZqElement) (*ZqElement, error) {
	if !e.SameGroup(other) {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "zq add: different groups")
	}
	return &ZqElement{group: e.group, value: bn.Mod(bn.Add(e.value, other.value), e.group.q)}, nil
}

// Subtract returns e - other mod q.
func (e *ZqElement) Subtract(other *ZqElement) (*ZqElement, error) {
	if !e.SameGroup(other) {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "zq subtract: different groups")
	}
	return &ZqElement{group: e.group, value: bn.Mod(bn.Sub(e.value, other.value), e.group.q)}, nil
}

// Multiply returns e * other mod q.
func (e *ZqElement) Multiply(other *ZqElement) (*ZqElement, error) {
	if !e.SameGroup(other) {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "zq multiply: different groups")
	}
	return &ZqElement{group: e.group, value: bn.Mod(bn.Multiply(e.value, other.value), e.group.q)}, nil
}

// Negate returns -e mod q.
func (e *ZqElement) Negate() *ZqElement {
	return &ZqElement{group: e.group, value: bn.Mod(bn.Sub(big.NewInt(0), e.value), e.group.q)}
}

// Exponentiate returns e^exp mod q, the integer exponent interpreted mod q.
func (e *ZqElement) Exponentiate(exp *big.Int) *ZqElement {
	reducedExp := bn.Mod(exp, e.group.q)
	return &ZqElement{group: e.group, value: new(big.Int).Exp(e.value, reducedExp, e.group.q)}
}

// Invert returns e^-1 mod q. Fails with NotInvertible when e is 0.
func (e *ZqElement) Invert() (*ZqElement, error) {
	if e.value.Sign() == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrNotInvertible, "zq invert: value is zero")
	}
	return &ZqElement{group: e.group, value: bn.ModInverse(e.value, e.group.q)}, nil
}

// IsZero reports whether e is the additive identity.
func (e *ZqElement) IsZero() bool { return e.value.Sign() == 0 }

// Size reports the element-size used by GroupVector/GroupMatrix: a scalar
// ZqElement always has size 1.
func (e *ZqElement) Size() int { return 1 }
