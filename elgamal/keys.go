package elgamal

import (
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/randomsource"
)

// PrivateKey is a vector of k secret exponents sk_1, ..., sk_k in Zq.
type PrivateKey struct {
	exponents group.GroupVector[*group.ZqElement]
}

// PublicKey is a vector of k public elements pk_i = g^sk_i.
type PublicKey struct {
	elements group.GroupVector[*group.GqElement]
}

// GenKeyPair samples a fresh length-k key pair: k i.i.d. uniform exponents
// in Zq and their corresponding g-powers.
func GenKeyPair(r randomsource.Random, gr *group.GqGroup, k int) (*PrivateKey, *PublicKey, error) {
	if k <= 0 {
		return nil, nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "gen key pair: k must be positive")
	}
	zq := group.SameOrderAsGq(gr)
	exponents, err := group.GenRandomZqVector(r, zq, k)
	if err != nil {
		return nil, nil, err
	}
	sk := &PrivateKey{exponents: exponents}
	pk, err := sk.PublicKey(gr)
	if err != nil {
		return nil, nil, err
	}
	return sk, pk, nil
}

// NewPrivateKey wraps exponents as a PrivateKey.
func NewPrivateKey(exponents group.GroupVector[*group.ZqElement]) (*PrivateKey, error) {
	if exponents.IsEmpty() {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "private key: must be non-empty")
	}
	return &PrivateKey{exponents: exponents}, nil
}

// NewPublicKey wraps elements as a PublicKey.
func NewPublicKey(elements group.GroupVector[*group.GqElement]) (*PublicKey, error) {
	if elements.IsEmpty() {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "public key: must be non-empty")
	}
	return &PublicKey{elements: elements}, nil
}

// Size returns k.
func (sk *PrivateKey) Size() int { return sk.exponents.Size() }

// Exponents returns the underlying secret-exponent vector.
func (sk *PrivateKey) Exponents() group.GroupVector[*group.ZqElement] { return sk.exponents }

// PublicKey derives the corresponding public key pk_i = generator^sk_i in gr.
func (sk *PrivateKey) PublicKey(gr *group.GqGroup) (*PublicKey, error) {
	gen := gr.Generator()
	elements, err := group.MapVector(sk.exponents, func(e *group.ZqElement) (*group.GqElement, error) {
		return gen.Exponentiate(e)
	})
	if err != nil {
		return nil, err
	}
	return &PublicKey{elements: elements}, nil
}

// Compress folds a length-k private key down to length l < k by summing
// the trailing k-l+1 exponents into a single combined exponent, mirroring
// PublicKey.Compress so partial decryption stays consistent with a
// compressed encryption.
func (sk *PrivateKey) Compress(l int) (*PrivateKey, error) {
	k := sk.Size()
	if l <= 0 || l > k {
		return nil, errors.Wrapf(cryptoerrors.ErrInvalidArgument, "private key compress: l=%d out of (0, %d]", l, k)
	}
	if l == k {
		return sk, nil
	}
	kept := make([]*group.ZqElement, l)
	for i := 0; i < l-1; i++ {
		kept[i] = sk.exponents.Get(i)
	}
	combined := sk.exponents.Get(l - 1)
	for i := l; i < k; i++ {
		var err error
		combined, err = combined.Add(sk.exponents.Get(i))
		if err != nil {
			return nil, err
		}
	}
	kept[l-1] = combined
	v, err := group.NewGroupVector(kept)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{exponents: v}, nil
}

// Size returns k.
func (pk *PublicKey) Size() int { return pk.elements.Size() }

// Elements returns the underlying public-key vector.
func (pk *PublicKey) Elements() group.GroupVector[*group.GqElement] { return pk.elements }

// Compress folds a length-k public key down to length l < k by multiplying
// the trailing k-l+1 elements into a single combined element:
// pk'_i = pk_i for i < l-1, pk'_{l-1} = prod_{i=l-1}^{k-1} pk_i. This lets a
// shorter message vector be encrypted under fewer exponentiations while
// remaining decryptable by the correspondingly Compress-ed private key.
func (pk *PublicKey) Compress(l int) (*PublicKey, error) {
	k := pk.Size()
	if l <= 0 || l > k {
		return nil, errors.Wrapf(cryptoerrors.ErrInvalidArgument, "public key compress: l=%d out of (0, %d]", l, k)
	}
	if l == k {
		return pk, nil
	}
	kept := make([]*group.GqElement, l)
	for i := 0; i < l-1; i++ {
		kept[i] = pk.elements.Get(i)
	}
	combined := pk.elements.Get(l - 1)
	for i := l; i < k; i++ {
		var err error
		combined, err = combined.Multiply(pk.elements.Get(i))
		if err != nil {
			return nil, err
		}
	}
	kept[l-1] = combined
	v, err := group.NewGroupVector(kept)
	if err != nil {
		return nil, err
	}
	return &PublicKey{elements: v}, nil
}

// CombinePublicKeys returns the elementwise product of equal-length public
// keys, the standard way independently generated authority key shares
// combine into one joint public key.
func CombinePublicKeys(keys []*PublicKey) (*PublicKey, error) {
	if len(keys) == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "combine public keys: no keys given")
	}
	combined := keys[0].elements
	for i := 1; i < len(keys); i++ {
		var err error
		combined, err = group.ZipVector(combined, keys[i].elements,
			func(a, b *group.GqElement) (*group.GqElement, error) { return a.Multiply(b) })
		if err != nil {
			return nil, err
		}
	}
	return &PublicKey{elements: combined}, nil
}
