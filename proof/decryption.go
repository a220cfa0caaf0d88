package proof

import (
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/elgamal"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
	"github.com/takakv/msc-poc/randomsource"
)

// DecryptionProof is a multi-base Chaum-Pedersen proof of knowledge of the
// private-key exponents underlying both a public key and a partial
// decryption sharing the same ciphertext gamma, without revealing the
// exponents.
type DecryptionProof struct {
	commitmentG     group.GroupVector[*group.GqElement]
	commitmentGamma group.GroupVector[*group.GqElement]
	response        group.GroupVector[*group.ZqElement]
}

// GenerateDecryptionProof proves that partialDecryption_i = ciphertext.Gamma()^sk_i
// and pk_i = g^sk_i for the same sk, for every component i. iAux is bound
// into the challenge hash for context, without otherwise affecting the
// relation proved.
func GenerateDecryptionProof(
	r randomsource.Random, h hashing.Hash, gr *group.GqGroup,
	pk *elgamal.PublicKey, ciphertext *elgamal.Ciphertext,
	partialDecryption group.GroupVector[*group.GqElement], sk *elgamal.PrivateKey, iAux []string,
) (*DecryptionProof, error) {
	zq := group.SameOrderAsGq(gr)
	if err := hashing.ValidateHashLength(h, zq); err != nil {
		return nil, err
	}
	n := sk.Size()
	if pk.Size() != n || partialDecryption.Size() != n {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "decryption proof: size mismatch")
	}

	b, err := group.GenRandomZqVector(r, zq, n)
	if err != nil {
		return nil, err
	}
	gen := gr.Generator()
	commitmentG, err := group.MapVector(b, func(bi *group.ZqElement) (*group.GqElement, error) {
		return gen.Exponentiate(bi)
	})
	if err != nil {
		return nil, err
	}
	commitmentGamma, err := group.MapVector(b, func(bi *group.ZqElement) (*group.GqElement, error) {
		return ciphertext.Gamma().Exponentiate(bi)
	})
	if err != nil {
		return nil, err
	}

	challenge, err := decryptionChallenge(h, zq, gr, pk, ciphertext, partialDecryption, commitmentG, commitmentGamma, iAux)
	if err != nil {
		return nil, err
	}

	response, err := group.ZipVector(b, sk.Exponents(), func(bi, ski *group.ZqElement) (*group.ZqElement, error) {
		term, err := ski.Multiply(challenge)
		if err != nil {
			return nil, err
		}
		return bi.Add(term)
	})
	if err != nil {
		return nil, err
	}
	return &DecryptionProof{commitmentG: commitmentG, commitmentGamma: commitmentGamma, response: response}, nil
}

// VerifyDecryptionProof checks g^response_i = commitmentG_i * pk_i^c and
// gamma^response_i = commitmentGamma_i * partialDecryption_i^c for every i.
func VerifyDecryptionProof(
	h hashing.Hash, gr *group.GqGroup, pk *elgamal.PublicKey, ciphertext *elgamal.Ciphertext,
	partialDecryption group.GroupVector[*group.GqElement], proof *DecryptionProof, iAux []string,
) (VerificationResult, error) {
	zq := group.SameOrderAsGq(gr)
	if err := hashing.ValidateHashLength(h, zq); err != nil {
		return VerificationResult{}, err
	}
	n := pk.Size()
	if partialDecryption.Size() != n || proof.response.Size() != n {
		return Failure("decryption proof: size mismatch"), nil
	}

	challenge, err := decryptionChallenge(h, zq, gr, pk, ciphertext, partialDecryption, proof.commitmentG, proof.commitmentGamma, iAux)
	if err != nil {
		return VerificationResult{}, err
	}

	gen := gr.Generator()
	result := Success
	for i := 0; i < n; i++ {
		lhsG, err := gen.Exponentiate(proof.response.Get(i))
		if err != nil {
			return VerificationResult{}, err
		}
		pkC, err := pk.Elements().Get(i).Exponentiate(challenge)
		if err != nil {
			return VerificationResult{}, err
		}
		rhsG, err := proof.commitmentG.Get(i).Multiply(pkC)
		if err != nil {
			return VerificationResult{}, err
		}
		if !lhsG.Equal(rhsG) {
			result = result.And(Failure("decryption proof: public-key base check failed"))
		}

		lhsGamma, err := ciphertext.Gamma().Exponentiate(proof.response.Get(i))
		if err != nil {
			return VerificationResult{}, err
		}
		partialC, err := partialDecryption.Get(i).Exponentiate(challenge)
		if err != nil {
			return VerificationResult{}, err
		}
		rhsGamma, err := proof.commitmentGamma.Get(i).Multiply(partialC)
		if err != nil {
			return VerificationResult{}, err
		}
		if !lhsGamma.Equal(rhsGamma) {
			result = result.And(Failure("decryption proof: gamma base check failed"))
		}
	}
	return result, nil
}

func decryptionChallenge(
	h hashing.Hash, zq *group.ZqGroup, gr *group.GqGroup,
	pk *elgamal.PublicKey, ciphertext *elgamal.Ciphertext,
	partialDecryption, commitmentG, commitmentGamma group.GroupVector[*group.GqElement],
	iAux []string,
) (*group.ZqElement, error) {
	gHashable, err := gqToHashable(gr.Generator())
	if err != nil {
		return nil, err
	}
	pkHashable, err := gqVectorToHashable(pk.Elements())
	if err != nil {
		return nil, err
	}
	ctHashable, err := ciphertextToHashable(ciphertext)
	if err != nil {
		return nil, err
	}
	partialHashable, err := gqVectorToHashable(partialDecryption)
	if err != nil {
		return nil, err
	}
	cgHashable, err := gqVectorToHashable(commitmentG)
	if err != nil {
		return nil, err
	}
	cgammaHashable, err := gqVectorToHashable(commitmentGamma)
	if err != nil {
		return nil, err
	}
	auxHashable, err := auxToHashable(iAux)
	if err != nil {
		return nil, err
	}
	return hashing.RecursiveHashToZq(h, zq, gHashable, pkHashable, ctHashable, partialHashable, cgHashable, cgammaHashable, auxHashable)
}

// auxToHashable renders the auxiliary context strings bound into a
// decryption proof's challenge. An empty iAux still contributes a fixed
// marker, so the challenge always has the same shape regardless of
// whether context was supplied.
func auxToHashable(iAux []string) (hashing.Hashable, error) {
	if len(iAux) == 0 {
		return hashing.List(hashing.Text(""))
	}
	items := make([]hashing.Hashable, len(iAux))
	for i, s := range iAux {
		items[i] = hashing.Text(s)
	}
	return hashing.List(items...)
}
