package elgamal

import (
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/group"
)

// Ciphertext is a multi-recipient ElGamal ciphertext: one shared ephemeral
// key Gamma = g^r and a vector of l masked message components
// Phi_i = pk'_i^r * m_i.
type Ciphertext struct {
	gamma *group.GqElement
	phis  group.GroupVector[*group.GqElement]
}

// NewCiphertext wraps (gamma, phis) as a Ciphertext.
func NewCiphertext(gamma *group.GqElement, phis group.GroupVector[*group.GqElement]) (*Ciphertext, error) {
	if phis.IsEmpty() {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "ciphertext: phis must be non-empty")
	}
	if !gamma.SameGroup(phis.Get(0)) {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "ciphertext: gamma and phis must share a group")
	}
	return &Ciphertext{gamma: gamma, phis: phis}, nil
}

// NeutralCiphertext returns the length-l ciphertext (1, (1, ..., 1)), the
// identity element for GetCiphertextProduct.
func NeutralCiphertext(gr *group.GqGroup, l int) (*Ciphertext, error) {
	ones := make([]*group.GqElement, l)
	identity := gr.Identity()
	for i := range ones {
		ones[i] = identity
	}
	phis, err := group.NewGroupVector(ones)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{gamma: identity, phis: phis}, nil
}

// Size returns l, the number of masked message components.
func (c *Ciphertext) Size() int { return c.phis.Size() }

// Gamma returns the ciphertext's shared ephemeral key.
func (c *Ciphertext) Gamma() *group.GqElement { return c.gamma }

// Phis returns the vector of masked message components.
func (c *Ciphertext) Phis() group.GroupVector[*group.GqElement] { return c.phis }

// SameGroup reports whether c and other's gamma components share a group,
// satisfying group.GroupElement[Ciphertext] so ciphertexts can be collected
// into a GroupVector (e.g. for a shuffle).
func (c *Ciphertext) SameGroup(other *Ciphertext) bool { return c.gamma.SameGroup(other.gamma) }

// Encrypt encrypts message under pk with randomness r, compressing pk down
// to message.Size() first when pk is longer. message.Size() must not
// exceed pk.Size().
func Encrypt(gr *group.GqGroup, message *Message, pk *PublicKey, r *group.ZqElement) (*Ciphertext, error) {
	l := message.Size()
	if l > pk.Size() {
		return nil, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"encrypt: message size %d exceeds public key size %d", l, pk.Size())
	}
	compressed, err := pk.Compress(l)
	if err != nil {
		return nil, err
	}
	gamma, err := gr.Generator().Exponentiate(r)
	if err != nil {
		return nil, err
	}
	phis, err := group.ZipVector(compressed.elements, message.values,
		func(k *group.GqElement, m *group.GqElement) (*group.GqElement, error) {
			masked, err := k.Exponentiate(r)
			if err != nil {
				return nil, err
			}
			return masked.Multiply(m)
		})
	if err != nil {
		return nil, err
	}
	return &Ciphertext{gamma: gamma, phis: phis}, nil
}

// GetPartialDecryption returns gamma^sk'_i for each i, compressing sk down
// to c.Size() first when sk is longer. This is the per-component factor a
// decryption proof proves was computed correctly; Decrypt divides it out
// of phis to recover the plaintext.
func GetPartialDecryption(c *Ciphertext, sk *PrivateKey) (group.GroupVector[*group.GqElement], error) {
	l := c.Size()
	if l > sk.Size() {
		return group.GroupVector[*group.GqElement]{}, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"partial decryption: ciphertext size %d exceeds private key size %d", l, sk.Size())
	}
	compressed, err := sk.Compress(l)
	if err != nil {
		return group.GroupVector[*group.GqElement]{}, err
	}
	return group.MapVector(compressed.exponents, func(e *group.ZqElement) (*group.GqElement, error) {
		return c.gamma.Exponentiate(e)
	})
}

// Decrypt recovers the plaintext message m_i = phi_i * (gamma^sk'_i)^-1.
func Decrypt(c *Ciphertext, sk *PrivateKey) (*Message, error) {
	partial, err := GetPartialDecryption(c, sk)
	if err != nil {
		return nil, err
	}
	values, err := group.ZipVector(c.phis, partial,
		func(phi *group.GqElement, d *group.GqElement) (*group.GqElement, error) {
			return phi.Multiply(d.Invert())
		})
	if err != nil {
		return nil, err
	}
	return &Message{values: values}, nil
}

// GetCiphertextProduct returns the componentwise product of two equal-size
// ciphertexts: (gamma1*gamma2, phi1_i*phi2_i). It decrypts to the
// componentwise product of the underlying plaintexts.
func GetCiphertextProduct(a, b *Ciphertext) (*Ciphertext, error) {
	if a.Size() != b.Size() {
		return nil, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"ciphertext product: size mismatch %d != %d", a.Size(), b.Size())
	}
	gamma, err := a.gamma.Multiply(b.gamma)
	if err != nil {
		return nil, err
	}
	phis, err := group.ZipVector(a.phis, b.phis, func(x, y *group.GqElement) (*group.GqElement, error) {
		return x.Multiply(y)
	})
	if err != nil {
		return nil, err
	}
	return &Ciphertext{gamma: gamma, phis: phis}, nil
}

// GetCiphertextExponentiation returns c raised componentwise to exp; it
// decrypts to the underlying plaintext raised componentwise to exp.
func GetCiphertextExponentiation(c *Ciphertext, exp *group.ZqElement) (*Ciphertext, error) {
	gamma, err := c.gamma.Exponentiate(exp)
	if err != nil {
		return nil, err
	}
	phis, err := group.MapVector(c.phis, func(phi *group.GqElement) (*group.GqElement, error) {
		return phi.Exponentiate(exp)
	})
	if err != nil {
		return nil, err
	}
	return &Ciphertext{gamma: gamma, phis: phis}, nil
}

// GetCiphertextVectorExponentiation returns the weighted product
// prod_i ciphertexts_i ^ exponents_i, the core combining step the
// multi-exponentiation argument verifies a commitment to.
func GetCiphertextVectorExponentiation(
	ciphertexts group.GroupVector[*Ciphertext], exponents group.GroupVector[*group.ZqElement],
) (*Ciphertext, error) {
	if ciphertexts.IsEmpty() {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "ciphertext vector exponentiation: empty input")
	}
	if ciphertexts.Size() != exponents.Size() {
		return nil, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"ciphertext vector exponentiation: size mismatch %d != %d", ciphertexts.Size(), exponents.Size())
	}
	acc, err := GetCiphertextExponentiation(ciphertexts.Get(0), exponents.Get(0))
	if err != nil {
		return nil, err
	}
	for i := 1; i < ciphertexts.Size(); i++ {
		term, err := GetCiphertextExponentiation(ciphertexts.Get(i), exponents.Get(i))
		if err != nil {
			return nil, err
		}
		acc, err = GetCiphertextProduct(acc, term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
