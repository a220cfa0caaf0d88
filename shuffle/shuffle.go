package shuffle

import (
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/elgamal"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/randomsource"
)

// Shuffle permutes ciphertexts by permutation and re-randomizes each
// output with the corresponding exponent in randomizers:
// C'_i = C_{permutation(i)} * Encrypt(ones, randomizers_i). The result is
// indistinguishable from a fresh encryption of the same permuted
// plaintexts without knowledge of permutation or randomizers.
func Shuffle(
	gr *group.GqGroup, pk *elgamal.PublicKey,
	ciphertexts group.GroupVector[*elgamal.Ciphertext],
	permutation *Permutation, randomizers group.GroupVector[*group.ZqElement],
) (group.GroupVector[*elgamal.Ciphertext], error) {
	n := ciphertexts.Size()
	if n != permutation.Size() || n != randomizers.Size() {
		return group.GroupVector[*elgamal.Ciphertext]{}, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"shuffle: size mismatch: %d ciphertexts, permutation of %d, %d randomizers",
			n, permutation.Size(), randomizers.Size())
	}
	l := ciphertexts.Get(0).Size()
	ones, err := elgamal.OnesMessage(gr, l)
	if err != nil {
		return group.GroupVector[*elgamal.Ciphertext]{}, err
	}

	shuffled := make([]*elgamal.Ciphertext, n)
	for i := 0; i < n; i++ {
		blank, err := elgamal.Encrypt(gr, ones, pk, randomizers.Get(i))
		if err != nil {
			return group.GroupVector[*elgamal.Ciphertext]{}, err
		}
		permuted := ciphertexts.Get(permutation.Get(i))
		out, err := elgamal.GetCiphertextProduct(permuted, blank)
		if err != nil {
			return group.GroupVector[*elgamal.Ciphertext]{}, err
		}
		shuffled[i] = out
	}
	return group.NewGroupVector(shuffled)
}

// ReEncryptAndShuffle samples a uniformly random permutation and
// re-encryption exponents and returns the shuffled ciphertext vector along
// with the permutation and randomizers used, so a caller can later build a
// shuffle argument proving the transformation was performed correctly.
func ReEncryptAndShuffle(
	r randomsource.Random, gr *group.GqGroup, pk *elgamal.PublicKey,
	ciphertexts group.GroupVector[*elgamal.Ciphertext],
) (group.GroupVector[*elgamal.Ciphertext], *Permutation, group.GroupVector[*group.ZqElement], error) {
	n := ciphertexts.Size()
	if n == 0 {
		return group.GroupVector[*elgamal.Ciphertext]{}, nil, group.GroupVector[*group.ZqElement]{},
			errors.Wrap(cryptoerrors.ErrInvalidArgument, "re-encrypt and shuffle: empty ciphertext vector")
	}
	permutation, err := GeneratePermutation(r, n)
	if err != nil {
		return group.GroupVector[*elgamal.Ciphertext]{}, nil, group.GroupVector[*group.ZqElement]{}, err
	}
	zq := group.SameOrderAsGq(gr)
	randomizers, err := group.GenRandomZqVector(r, zq, n)
	if err != nil {
		return group.GroupVector[*elgamal.Ciphertext]{}, nil, group.GroupVector[*group.ZqElement]{}, err
	}
	shuffled, err := Shuffle(gr, pk, ciphertexts, permutation, randomizers)
	if err != nil {
		return group.GroupVector[*elgamal.Ciphertext]{}, nil, group.GroupVector[*group.ZqElement]{}, err
	}
	return shuffled, permutation, randomizers, nil
}
