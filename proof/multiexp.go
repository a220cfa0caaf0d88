package proof

import (
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/commitment"
	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/elgamal"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
	"github.com/takakv/msc-poc/randomsource"
)

// MultiExponentiationArgument proves that a claimed result ciphertext
// equals a re-encrypted weighted recombination of an m x n ciphertext
// matrix C under a committed m-column exponent matrix A: result =
// Enc(1, rho, pk) * prod_{i=0}^{m-1} VectorExp(C.row(i), A.col(i)).
//
// The witness matrix A (prepended with a fresh blinding column a_0) is
// folded against C's rows along 2m diagonals, producing diagonal
// ciphertext products D_0, ..., D_{2m-1} whose center (index m) is
// exactly the real relation; re-encrypting each diagonal under fresh
// (b_k, s_k, tau_k), with the center fixed to (0, 0, rho), ties D_m back
// to the public result. A single challenge folds all of this down to one
// opening.
type MultiExponentiationArgument struct {
	commitA0        *group.GqElement
	commitB         group.GroupVector[*group.GqElement]
	announcements   group.GroupVector[*elgamal.Ciphertext]
	responseA       group.GroupVector[*group.ZqElement]
	responseARand   *group.ZqElement
	responseB       *group.ZqElement
	responseBRand   *group.ZqElement
	responseRhoRand *group.ZqElement
}

// constMessage returns the length-l message with every component equal
// to value.
func constMessage(l int, value *group.GqElement) (*elgamal.Message, error) {
	values := make([]*group.GqElement, l)
	for i := range values {
		values[i] = value
	}
	vec, err := group.NewGroupVector(values)
	if err != nil {
		return nil, err
	}
	return elgamal.NewMessage(vec)
}

// zqPowersFromZero returns (x^0, x^1, ..., x^{count-1}).
func zqPowersFromZero(x *group.ZqElement, count int) (group.GroupVector[*group.ZqElement], error) {
	zq := x.Group()
	powers := make([]*group.ZqElement, count)
	cur := zq.Identity()
	for i := 0; i < count; i++ {
		powers[i] = cur
		if i+1 < count {
			var err error
			cur, err = cur.Multiply(x)
			if err != nil {
				return group.GroupVector[*group.ZqElement]{}, err
			}
		}
	}
	return group.NewGroupVector(powers)
}

// diagonalCiphertextProducts returns D_0, ..., D_{2m-1}: D_k is the
// product, over rows i with a column j = i-m+1+k in [0,m], of
// VectorExp(C.row(i), aPrime.col(j)).
func diagonalCiphertextProducts(
	gr *group.GqGroup, l int,
	C group.GroupMatrix[*elgamal.Ciphertext], aPrime group.GroupMatrix[*group.ZqElement],
) ([]*elgamal.Ciphertext, error) {
	m := C.NumRows()
	d := make([]*elgamal.Ciphertext, 2*m)
	for k := 0; k < 2*m; k++ {
		acc, err := elgamal.NeutralCiphertext(gr, l)
		if err != nil {
			return nil, err
		}
		lo := 0
		if k-m > lo {
			lo = k - m
		}
		for i := lo; i < m; i++ {
			j := i - m + 1 + k
			if j < 0 || j > m {
				continue
			}
			col, err := aPrime.Column(j)
			if err != nil {
				return nil, err
			}
			term, err := elgamal.GetCiphertextVectorExponentiation(C.Row(i), col)
			if err != nil {
				return nil, err
			}
			acc, err = elgamal.GetCiphertextProduct(acc, term)
			if err != nil {
				return nil, err
			}
		}
		d[k] = acc
	}
	return d, nil
}

// foldCiphertextPowers returns prod_k elements[k]^{challenge^k}.
func foldCiphertextPowers(challenge *group.ZqElement, elements []*elgamal.Ciphertext) (*elgamal.Ciphertext, error) {
	zq := challenge.Group()
	acc := elements[0]
	power, err := zq.FromValue(challenge.Value())
	if err != nil {
		return nil, err
	}
	for k := 1; k < len(elements); k++ {
		raised, err := elgamal.GetCiphertextExponentiation(elements[k], power)
		if err != nil {
			return nil, err
		}
		acc, err = elgamal.GetCiphertextProduct(acc, raised)
		if err != nil {
			return nil, err
		}
		power, err = power.Multiply(challenge)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func ciphertextsEqual(a, b *elgamal.Ciphertext) bool {
	if !a.Gamma().Equal(b.Gamma()) {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if !a.Phis().Get(i).Equal(b.Phis().Get(i)) {
			return false
		}
	}
	return true
}

// GenerateMultiExponentiationArgument proves that result equals the
// re-encrypted (under rho) recombination of C's rows by A's columns
// (committed under key as cA with randomness rA).
func GenerateMultiExponentiationArgument(
	r randomsource.Random, h hashing.Hash, gr *group.GqGroup, key *commitment.Key, pk *elgamal.PublicKey,
	C group.GroupMatrix[*elgamal.Ciphertext], result *elgamal.Ciphertext,
	cA group.GroupVector[*group.GqElement], A group.GroupMatrix[*group.ZqElement], rA group.GroupVector[*group.ZqElement],
	rho *group.ZqElement,
) (*MultiExponentiationArgument, error) {
	m := A.NumColumns()
	n := A.NumRows()
	if m == 0 || n == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "multi-exponentiation argument: A must be non-empty")
	}
	if C.NumRows() != m || C.NumColumns() != n {
		return nil, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"multi-exponentiation argument: C shape %dx%d does not match A %dx%d", C.NumRows(), C.NumColumns(), m, n)
	}
	if cA.Size() != m || rA.Size() != m {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "multi-exponentiation argument: cA/rA size mismatch")
	}
	zq := rho.Group()
	l := result.Size()

	a0, err := group.GenRandomZqVector(r, zq, n)
	if err != nil {
		return nil, err
	}
	r0, err := sampleZq(r, zq)
	if err != nil {
		return nil, err
	}
	commitA0, err := commitment.GetCommitmentVector(a0, r0, key)
	if err != nil {
		return nil, err
	}

	aPrime, err := A.PrependColumn(a0)
	if err != nil {
		return nil, err
	}
	aPrimeRand := append([]*group.ZqElement{r0}, rA.Slice()...)

	twoM := 2 * m
	bVals := make([]*group.ZqElement, twoM)
	sVals := make([]*group.ZqElement, twoM)
	tauVals := make([]*group.ZqElement, twoM)
	for k := 0; k < twoM; k++ {
		if k == m {
			bVals[k] = zq.Identity()
			sVals[k] = zq.Identity()
			tauVals[k] = rho
			continue
		}
		b, err := sampleZq(r, zq)
		if err != nil {
			return nil, err
		}
		s, err := sampleZq(r, zq)
		if err != nil {
			return nil, err
		}
		tau, err := sampleZq(r, zq)
		if err != nil {
			return nil, err
		}
		bVals[k], sVals[k], tauVals[k] = b, s, tau
	}

	commitB := make([]*group.GqElement, twoM)
	for k := 0; k < twoM; k++ {
		c, err := commitment.GetCommitment(bVals[k], sVals[k], key)
		if err != nil {
			return nil, err
		}
		commitB[k] = c
	}

	D, err := diagonalCiphertextProducts(gr, l, C, aPrime)
	if err != nil {
		return nil, err
	}
	E := make([]*elgamal.Ciphertext, twoM)
	for k := 0; k < twoM; k++ {
		maskValue, err := gr.Generator().Exponentiate(bVals[k])
		if err != nil {
			return nil, err
		}
		maskMessage, err := constMessage(l, maskValue)
		if err != nil {
			return nil, err
		}
		enc, err := elgamal.Encrypt(gr, maskMessage, pk, tauVals[k])
		if err != nil {
			return nil, err
		}
		e, err := elgamal.GetCiphertextProduct(enc, D[k])
		if err != nil {
			return nil, err
		}
		E[k] = e
	}

	commitBVec, err := group.NewGroupVector(commitB)
	if err != nil {
		return nil, err
	}
	announcements, err := group.NewGroupVector(E)
	if err != nil {
		return nil, err
	}

	challenge, err := multiExpChallenge(h, zq, cA, C, result, commitA0, commitBVec, announcements)
	if err != nil {
		return nil, err
	}

	aCols := make([]group.GroupVector[*group.ZqElement], m+1)
	for i := 0; i <= m; i++ {
		col, err := aPrime.Column(i)
		if err != nil {
			return nil, err
		}
		aCols[i] = col
	}
	responseA, responseARand, err := foldColumns(zq, challenge, aCols, aPrimeRand)
	if err != nil {
		return nil, err
	}
	responseB, err := foldScalars(zq, challenge, bVals)
	if err != nil {
		return nil, err
	}
	responseBRand, err := foldScalars(zq, challenge, sVals)
	if err != nil {
		return nil, err
	}
	responseRhoRand, err := foldScalars(zq, challenge, tauVals)
	if err != nil {
		return nil, err
	}

	return &MultiExponentiationArgument{
		commitA0: commitA0, commitB: commitBVec, announcements: announcements,
		responseA: responseA, responseARand: responseARand,
		responseB: responseB, responseBRand: responseBRand,
		responseRhoRand: responseRhoRand,
	}, nil
}

// VerifyMultiExponentiationArgument checks proof against the public
// ciphertext matrix, claimed result, and commitment to A's columns.
func VerifyMultiExponentiationArgument(
	h hashing.Hash, gr *group.GqGroup, key *commitment.Key, pk *elgamal.PublicKey,
	C group.GroupMatrix[*elgamal.Ciphertext], result *elgamal.Ciphertext,
	cA group.GroupVector[*group.GqElement], proof *MultiExponentiationArgument,
) (VerificationResult, error) {
	m := cA.Size()
	if m == 0 || C.NumRows() != m {
		return Failure("multi-exponentiation argument: C row count does not match cA"), nil
	}
	n := C.NumColumns()
	twoM := 2 * m
	if proof.commitB.Size() != twoM || proof.announcements.Size() != twoM {
		return Failure("multi-exponentiation argument: response vector length mismatch"), nil
	}
	zq := group.SameOrderAsGq(gr)
	l := result.Size()

	challenge, err := multiExpChallenge(h, zq, cA, C, result, proof.commitA0, proof.commitB, proof.announcements)
	if err != nil {
		return VerificationResult{}, err
	}

	verdict := Success

	if !proof.commitB.Get(m).Equal(gr.Identity()) {
		verdict = verdict.And(Failure("multi-exponentiation argument: center commitment is not the identity"))
	}
	if !ciphertextsEqual(proof.announcements.Get(m), result) {
		verdict = verdict.And(Failure("multi-exponentiation argument: center announcement does not match the result"))
	}

	aCommitments := append([]*group.GqElement{proof.commitA0}, cA.Slice()...)
	lhsA, err := commitment.GetCommitmentVector(proof.responseA, proof.responseARand, key)
	if err != nil {
		return VerificationResult{}, err
	}
	rhsA, err := foldGqPowers(challenge, aCommitments)
	if err != nil {
		return VerificationResult{}, err
	}
	if !lhsA.Equal(rhsA) {
		verdict = verdict.And(Failure("multi-exponentiation argument: A-side opening check failed"))
	}

	lhsB, err := commitment.GetCommitment(proof.responseB, proof.responseBRand, key)
	if err != nil {
		return VerificationResult{}, err
	}
	rhsB, err := foldGqPowers(challenge, proof.commitB.Slice())
	if err != nil {
		return VerificationResult{}, err
	}
	if !lhsB.Equal(rhsB) {
		verdict = verdict.And(Failure("multi-exponentiation argument: b-side opening check failed"))
	}

	if n != proof.responseA.Size() {
		return VerificationResult{}, errors.Wrap(cryptoerrors.ErrInvalidArgument,
			"multi-exponentiation argument: C column count does not match response length")
	}
	xPow, err := zqPowersFromZero(challenge, m)
	if err != nil {
		return VerificationResult{}, err
	}
	combined, err := elgamal.NeutralCiphertext(gr, l)
	if err != nil {
		return VerificationResult{}, err
	}
	for i := 0; i < m; i++ {
		scaledA, err := scaleVector(proof.responseA, xPow.Get(m-1-i))
		if err != nil {
			return VerificationResult{}, err
		}
		term, err := elgamal.GetCiphertextVectorExponentiation(C.Row(i), scaledA)
		if err != nil {
			return VerificationResult{}, err
		}
		combined, err = elgamal.GetCiphertextProduct(combined, term)
		if err != nil {
			return VerificationResult{}, err
		}
	}
	maskValue, err := gr.Generator().Exponentiate(proof.responseB)
	if err != nil {
		return VerificationResult{}, err
	}
	maskMessage, err := constMessage(l, maskValue)
	if err != nil {
		return VerificationResult{}, err
	}
	maskEnc, err := elgamal.Encrypt(gr, maskMessage, pk, proof.responseRhoRand)
	if err != nil {
		return VerificationResult{}, err
	}
	rhsE, err := elgamal.GetCiphertextProduct(maskEnc, combined)
	if err != nil {
		return VerificationResult{}, err
	}
	lhsE, err := foldCiphertextPowers(challenge, proof.announcements.Slice())
	if err != nil {
		return VerificationResult{}, err
	}
	if !ciphertextsEqual(lhsE, rhsE) {
		verdict = verdict.And(Failure("multi-exponentiation argument: recombination check failed"))
	}

	return verdict, nil
}

func multiExpChallenge(
	h hashing.Hash, zq *group.ZqGroup, cA group.GroupVector[*group.GqElement],
	C group.GroupMatrix[*elgamal.Ciphertext], result *elgamal.Ciphertext,
	commitA0 *group.GqElement, commitB group.GroupVector[*group.GqElement],
	announcements group.GroupVector[*elgamal.Ciphertext],
) (*group.ZqElement, error) {
	cAHashable, err := gqVectorToHashable(cA)
	if err != nil {
		return nil, err
	}
	cHashable, err := ciphertextMatrixToHashable(C)
	if err != nil {
		return nil, err
	}
	resultHashable, err := ciphertextToHashable(result)
	if err != nil {
		return nil, err
	}
	a0Hashable, err := gqToHashable(commitA0)
	if err != nil {
		return nil, err
	}
	bHashable, err := gqVectorToHashable(commitB)
	if err != nil {
		return nil, err
	}
	announceHashable, err := ciphertextVectorToHashable(announcements)
	if err != nil {
		return nil, err
	}
	return hashing.RecursiveHashToZq(h, zq, cAHashable, cHashable, resultHashable, a0Hashable, bHashable, announceHashable)
}
