package group

import (
	"math/big"

	"github.com/ing-bank/zkrp/util/bn"
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
)

// GqGroup is the multiplicative subgroup of prime order q inside Z*p for a
// safe prime p = 2q+1, generated by g. Equality is structural: two
// GqGroup values are the same group iff their (p, q, g) triples match.
type GqGroup struct {
	p, q, g *big.Int
}

// NewGqGroup validates p prime, q prime, p = 2q+1, 1 < g < p, g^q ≡ 1 mod p,
// and g != 1, returning InvalidGroupParameters if any invariant fails.
func NewGqGroup(p, q, g *big.Int) (*GqGroup, error) {
	if p == nil || q == nil || g == nil {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidGroupParameters, "nil parameter")
	}
	const primalityCertainty = 64
	if !p.ProbablyPrime(primalityCertainty) {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidGroupParameters, "p is not prime")
	}
	if !q.ProbablyPrime(primalityCertainty) {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidGroupParameters, "q is not prime")
	}
	wantP := new(big.Int).Add(bn.Multiply(q, big.NewInt(2)), big.NewInt(1))
	if wantP.Cmp(p) != 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidGroupParameters, "p != 2q+1")
	}
	one := big.NewInt(1)
	if g.Cmp(one) <= 0 || g.Cmp(p) >= 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidGroupParameters, "g not in (1, p)")
	}
	if g.Cmp(one) == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidGroupParameters, "g must not be 1")
	}
	if new(big.Int).Exp(g, q, p).Cmp(one) != 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidGroupParameters, "g^q != 1 mod p")
	}
	return &GqGroup{p: new(big.Int).Set(p), q: new(big.Int).Set(q), g: new(big.Int).Set(g)}, nil
}

// P returns the field modulus p.
func (gr *GqGroup) P() *big.Int { return new(big.Int).Set(gr.p) }

// Q returns the subgroup order q.
func (gr *GqGroup) Q() *big.Int { return new(big.Int).Set(gr.q) }

// G returns the generator g.
func (gr *GqGroup) G() *big.Int { return new(big.Int).Set(gr.g) }

// Identity returns the group's identity element, 1.
func (gr *GqGroup) Identity() *GqElement {
	e, _ := gr.FromValue(big.NewInt(1))
	return e
}

// Generator returns the element wrapping g.
func (gr *GqGroup) Generator() *GqElement {
	e, _ := gr.FromValue(new(big.Int).Set(gr.g))
	return e
}

// Equal reports structural equality of two groups.
func (gr *GqGroup) Equal(other *GqGroup) bool {
	if gr == other {
		return true
	}
	if gr == nil || other == nil {
		return false
	}
	return gr.p.Cmp(other.p) == 0 && gr.q.Cmp(other.q) == 0 && gr.g.Cmp(other.g) == 0
}

// GqElement is a value v in {1, ..., p-1} with v^q = 1 mod p, tagged with
// its group. Membership is enforced at construction by FromValue; only
// FromSquareRoot, a trusted factory for values already known to be
// quadratic residues, skips the check.
type GqElement struct {
	group *GqGroup
	value *big.Int
}

// FromValue builds a GqElement after checking that v is a member of the
// group: 0 < v < p and v^q = 1 mod p.
func (gr *GqGroup) FromValue(v *big.Int) (*GqElement, error) {
	if v == nil {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "gq element: nil value")
	}
	if v.Sign() <= 0 || v.Cmp(gr.p) >= 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "gq element: value out of [1, p)")
	}
	if new(big.Int).Exp(v, gr.q, gr.p).Cmp(big.NewInt(1)) != 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "gq element: not a member of the subgroup")
	}
	return &GqElement{group: gr, value: new(big.Int).Set(v)}, nil
}

// FromSquareRoot builds a GqElement directly from a value already known to
// be a square in Z*p (e.g. the output of a hash-and-square map), skipping
// the membership check that FromValue performs.
func (gr *GqGroup) FromSquareRoot(v *big.Int) *GqElement {
	return &GqElement{group: gr, value: new(big.Int).Set(v)}
}

// Group returns the element's group.
func (e *GqElement) Group() *GqGroup { return e.group }

// Value returns the element's underlying value.
func (e *GqElement) Value() *big.Int { return new(big.Int).Set(e.value) }

// SameGroup reports whether e and other belong to structurally equal
// groups, satisfying group.GroupElement[GqElement].
func (e *GqElement) SameGroup(other *GqElement) bool {
	return e.group.Equal(other.group)
}

// Equal compares value and group identity.
func (e *GqElement) Equal(other *GqElement) bool {
	if other == nil {
		return false
	}
	return e.SameGroup(other) && e.value.Cmp(other.value) == 0
}

// Multiply returns e * other mod p. Both elements must share a group.
func (e *GqElement) Multiply(other *GqElement) (*GqElement, error) {
	if !e.SameGroup(other) {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "gq multiply: different groups")
	}
	v := bn.Mod(bn.Multiply(e.value, other.value), e.group.p)
	return &GqElement{group: e.group, value: v}, nil
}

// Exponentiate returns e^exp mod p for a ZqElement of the group's order.
func (e *GqElement) Exponentiate(exp *ZqElement) (*GqElement, error) {
	if !exp.group.SameOrderAs(e.group) {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "gq exponentiate: exponent order mismatch")
	}
	v := new(big.Int).Exp(e.value, exp.value, e.group.p)
	return &GqElement{group: e.group, value: v}, nil
}

// Invert returns e^-1 mod p, such that e.Multiply(e.Invert()) is the
// group's identity.
func (e *GqElement) Invert() *GqElement {
	v := bn.ModInverse(e.value, e.group.p)
	return &GqElement{group: e.group, value: v}
}

// Size reports the element-size used by GroupVector/GroupMatrix: a scalar
// GqElement always has size 1.
func (e *GqElement) Size() int { return 1 }
