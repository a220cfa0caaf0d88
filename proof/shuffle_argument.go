package proof

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/commitment"
	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/elgamal"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
	"github.com/takakv/msc-poc/randomsource"
	"github.com/takakv/msc-poc/shuffle"
)

// ShuffleArgument proves that a shuffled ciphertext vector is a
// permutation and re-randomization of an original ciphertext vector of
// size N = m*n, without revealing the permutation or re-randomization
// exponents.
//
// The shuffled ciphertext vector is reshaped row-major into an m x n
// matrix; the original vector is used flat. Commitment A holds the (Zq-cast) permutation indices, laid out n x m
// via toMatrix(m,n).transpose() so each of its m columns has n entries.
// A first challenge x fixes a public power vector (x^0, ..., x^{N-1});
// commitment B holds x^{pi(i)} in the same n x m layout. A
// ProductArgument over D = y*A + B - z (y, z further challenges) proves
// that B's entries are exactly x raised to a permutation of 0..N-1
// matching A's claimed permutation, while a MultiExponentiationArgument
// proves that weighting the shuffled rows by B recombines the original
// ciphertexts raised to (x^0, ..., x^{N-1}), re-encrypted under the
// combined randomizer. Together they force A to encode the permutation
// the shuffle actually applied.
type ShuffleArgument struct {
	commitA  group.GroupVector[*group.GqElement]
	commitB  group.GroupVector[*group.GqElement]
	product  *ProductArgument
	multiExp *MultiExponentiationArgument
}

// constColumn returns the length-n vector with every component equal to
// value.
func constColumn(zq *group.ZqGroup, n int, value *group.ZqElement) (group.GroupVector[*group.ZqElement], error) {
	values := make([]*group.ZqElement, n)
	for i := range values {
		values[i] = value
	}
	return group.NewGroupVector(values)
}

// keyBaseProductN returns the product of key's first n value bases, used
// to shift an n-entry vector commitment by a public additive constant.
func keyBaseProductN(key *commitment.Key, n int) (*group.GqElement, error) {
	product := key.G().Get(0)
	for i := 1; i < n; i++ {
		var err error
		product, err = product.Multiply(key.G().Get(i))
		if err != nil {
			return nil, err
		}
	}
	return product, nil
}

func keyToHashable(key *commitment.Key) (hashing.Hashable, error) {
	hHashable, err := gqToHashable(key.H())
	if err != nil {
		return nil, err
	}
	gHashable, err := gqVectorToHashable(key.G())
	if err != nil {
		return nil, err
	}
	return hashing.List(hHashable, gHashable)
}

func publicKeyToHashable(pk *elgamal.PublicKey) (hashing.Hashable, error) {
	return gqVectorToHashable(pk.Elements())
}

// shuffleTranscriptPrefix returns the (p, q, pk, ck, C, C') hashables
// shared by every challenge this argument derives.
func shuffleTranscriptPrefix(
	gr *group.GqGroup, pk *elgamal.PublicKey, key *commitment.Key,
	original, shuffled group.GroupVector[*elgamal.Ciphertext],
) ([]hashing.Hashable, error) {
	pHashable, err := hashing.Integer(gr.P())
	if err != nil {
		return nil, err
	}
	qHashable, err := hashing.Integer(gr.Q())
	if err != nil {
		return nil, err
	}
	pkHashable, err := publicKeyToHashable(pk)
	if err != nil {
		return nil, err
	}
	ckHashable, err := keyToHashable(key)
	if err != nil {
		return nil, err
	}
	originalHashable, err := ciphertextVectorToHashable(original)
	if err != nil {
		return nil, err
	}
	shuffledHashable, err := ciphertextVectorToHashable(shuffled)
	if err != nil {
		return nil, err
	}
	return []hashing.Hashable{pHashable, qHashable, pkHashable, ckHashable, originalHashable, shuffledHashable}, nil
}

func shuffleXChallenge(
	h hashing.Hash, zq *group.ZqGroup, prefix []hashing.Hashable, cA group.GroupVector[*group.GqElement],
) (*group.ZqElement, error) {
	cAHashable, err := gqVectorToHashable(cA)
	if err != nil {
		return nil, err
	}
	values := append(append([]hashing.Hashable{}, prefix...), cAHashable)
	return hashing.RecursiveHashToZq(h, zq, values...)
}

func shuffleYChallenge(
	h hashing.Hash, zq *group.ZqGroup, prefix []hashing.Hashable,
	cA, cB group.GroupVector[*group.GqElement],
) (*group.ZqElement, error) {
	cAHashable, err := gqVectorToHashable(cA)
	if err != nil {
		return nil, err
	}
	cBHashable, err := gqVectorToHashable(cB)
	if err != nil {
		return nil, err
	}
	values := append(append([]hashing.Hashable{}, prefix...), cAHashable, cBHashable)
	return hashing.RecursiveHashToZq(h, zq, values...)
}

func shuffleZChallenge(
	h hashing.Hash, zq *group.ZqGroup, prefix []hashing.Hashable,
	cA, cB group.GroupVector[*group.GqElement],
) (*group.ZqElement, error) {
	cAHashable, err := gqVectorToHashable(cA)
	if err != nil {
		return nil, err
	}
	cBHashable, err := gqVectorToHashable(cB)
	if err != nil {
		return nil, err
	}
	values := append([]hashing.Hashable{hashing.Text("1")}, prefix...)
	values = append(values, cAHashable, cBHashable)
	return hashing.RecursiveHashToZq(h, zq, values...)
}

// decomposedMatrix reshapes flat n x m, as spec's
// v.toMatrix(m,n).transpose() does: column j equals flat[j*n : (j+1)*n].
func decomposedMatrix(flat group.GroupVector[*group.ZqElement], m, n int) (group.GroupMatrix[*group.ZqElement], error) {
	rowMajor, err := flat.ToMatrix(m, n)
	if err != nil {
		return group.GroupMatrix[*group.ZqElement]{}, err
	}
	return rowMajor.Transpose()
}

// GenerateShuffleArgument proves that shuffled was produced from original
// (of size N = m*n) via permutation and randomizers (as shuffle.Shuffle
// would compute).
func GenerateShuffleArgument(
	r randomsource.Random, h hashing.Hash, gr *group.GqGroup, pk *elgamal.PublicKey,
	key, scalarKey *commitment.Key,
	original, shuffled group.GroupVector[*elgamal.Ciphertext],
	permutation *shuffle.Permutation, randomizers group.GroupVector[*group.ZqElement],
	m, n int,
) (*ShuffleArgument, error) {
	N := original.Size()
	if m <= 0 || n < 2 || m*n != N {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "shuffle argument: m*n must equal the ciphertext count")
	}
	if shuffled.Size() != N || permutation.Size() != N || randomizers.Size() != N {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "shuffle argument: size mismatch")
	}
	zq := randomizers.Get(0).Group()

	piValues := make([]*group.ZqElement, N)
	for i := 0; i < N; i++ {
		v, err := zq.FromValue(big.NewInt(int64(permutation.Get(i))))
		if err != nil {
			return nil, err
		}
		piValues[i] = v
	}
	piFlat, err := group.NewGroupVector(piValues)
	if err != nil {
		return nil, err
	}
	A, err := decomposedMatrix(piFlat, m, n)
	if err != nil {
		return nil, err
	}
	rCol, err := group.GenRandomZqVector(r, zq, m)
	if err != nil {
		return nil, err
	}
	cA, err := commitment.GetCommitmentMatrix(A, rCol, key)
	if err != nil {
		return nil, err
	}

	prefix, err := shuffleTranscriptPrefix(gr, pk, key, original, shuffled)
	if err != nil {
		return nil, err
	}
	x, err := shuffleXChallenge(h, zq, prefix, cA)
	if err != nil {
		return nil, err
	}
	xPowers, err := zqPowersFromZero(x, N)
	if err != nil {
		return nil, err
	}

	bFlatValues := make([]*group.ZqElement, N)
	for i := 0; i < N; i++ {
		bFlatValues[i] = xPowers.Get(permutation.Get(i))
	}
	bFlat, err := group.NewGroupVector(bFlatValues)
	if err != nil {
		return nil, err
	}
	B, err := decomposedMatrix(bFlat, m, n)
	if err != nil {
		return nil, err
	}
	sCol, err := group.GenRandomZqVector(r, zq, m)
	if err != nil {
		return nil, err
	}
	cB, err := commitment.GetCommitmentMatrix(B, sCol, key)
	if err != nil {
		return nil, err
	}

	y, err := shuffleYChallenge(h, zq, prefix, cA, cB)
	if err != nil {
		return nil, err
	}
	z, err := shuffleZChallenge(h, zq, prefix, cA, cB)
	if err != nil {
		return nil, err
	}
	negZ := z.Negate()
	zCol, err := constColumn(zq, n, negZ)
	if err != nil {
		return nil, err
	}

	dMinusZCols := make([]group.GroupVector[*group.ZqElement], m)
	tVals := make([]*group.ZqElement, m)
	for j := 0; j < m; j++ {
		aCol, err := A.Column(j)
		if err != nil {
			return nil, err
		}
		bCol, err := B.Column(j)
		if err != nil {
			return nil, err
		}
		scaledA, err := scaleVector(aCol, y)
		if err != nil {
			return nil, err
		}
		dCol, err := addVector(scaledA, bCol)
		if err != nil {
			return nil, err
		}
		dMinusZCol, err := addVector(dCol, zCol)
		if err != nil {
			return nil, err
		}
		dMinusZCols[j] = dMinusZCol

		tVal, err := rCol.Get(j).Multiply(y)
		if err != nil {
			return nil, err
		}
		tVal, err = tVal.Add(sCol.Get(j))
		if err != nil {
			return nil, err
		}
		tVals[j] = tVal
	}
	dMinusZMatrix, err := columnsToMatrix(dMinusZCols)
	if err != nil {
		return nil, err
	}

	baseProd, err := keyBaseProductN(key, n)
	if err != nil {
		return nil, err
	}
	negZTerm, err := baseProd.Exponentiate(negZ)
	if err != nil {
		return nil, err
	}
	cDMinusZCols := make([]*group.GqElement, m)
	for j := 0; j < m; j++ {
		cDj, err := cA.Get(j).Exponentiate(y)
		if err != nil {
			return nil, err
		}
		cDj, err = cDj.Multiply(cB.Get(j))
		if err != nil {
			return nil, err
		}
		cDj, err = cDj.Multiply(negZTerm)
		if err != nil {
			return nil, err
		}
		cDMinusZCols[j] = cDj
	}

	one, err := zq.FromValue(big.NewInt(1))
	if err != nil {
		return nil, err
	}
	bStar := one
	yi := zq.Identity()
	for i := 0; i < N; i++ {
		term, err := yi.Add(xPowers.Get(i))
		if err != nil {
			return nil, err
		}
		term, err = term.Add(negZ)
		if err != nil {
			return nil, err
		}
		bStar, err = bStar.Multiply(term)
		if err != nil {
			return nil, err
		}
		yi, err = yi.Add(y)
		if err != nil {
			return nil, err
		}
	}

	product, err := GenerateProductArgument(r, h, key, scalarKey, cDMinusZCols, dMinusZMatrix, tVals, bStar)
	if err != nil {
		return nil, err
	}

	rho := zq.Identity()
	for i := 0; i < N; i++ {
		term, err := randomizers.Get(i).Multiply(bFlat.Get(i))
		if err != nil {
			return nil, err
		}
		rho, err = rho.Add(term)
		if err != nil {
			return nil, err
		}
	}
	rho = rho.Negate()

	cStar, err := elgamal.GetCiphertextVectorExponentiation(original, xPowers)
	if err != nil {
		return nil, err
	}
	shuffledMatrix, err := shuffled.ToMatrix(m, n)
	if err != nil {
		return nil, err
	}

	multiExp, err := GenerateMultiExponentiationArgument(r, h, gr, key, pk, shuffledMatrix, cStar, cB, B, sCol, rho)
	if err != nil {
		return nil, err
	}

	return &ShuffleArgument{commitA: cA, commitB: cB, product: product, multiExp: multiExp}, nil
}

// VerifyShuffleArgument checks proof against the public original and
// shuffled ciphertext vectors, decomposed as m x n.
func VerifyShuffleArgument(
	h hashing.Hash, gr *group.GqGroup, pk *elgamal.PublicKey, key, scalarKey *commitment.Key,
	original, shuffled group.GroupVector[*elgamal.Ciphertext], m, n int,
	proof *ShuffleArgument,
) (VerificationResult, error) {
	N := original.Size()
	if m <= 0 || n < 2 || m*n != N || shuffled.Size() != N {
		return Failure("shuffle argument: size mismatch"), nil
	}
	if proof.commitA.Size() != m || proof.commitB.Size() != m {
		return Failure("shuffle argument: commitment vector size mismatch"), nil
	}
	zq := group.SameOrderAsGq(gr)

	prefix, err := shuffleTranscriptPrefix(gr, pk, key, original, shuffled)
	if err != nil {
		return VerificationResult{}, err
	}
	x, err := shuffleXChallenge(h, zq, prefix, proof.commitA)
	if err != nil {
		return VerificationResult{}, err
	}
	xPowers, err := zqPowersFromZero(x, N)
	if err != nil {
		return VerificationResult{}, err
	}
	y, err := shuffleYChallenge(h, zq, prefix, proof.commitA, proof.commitB)
	if err != nil {
		return VerificationResult{}, err
	}
	z, err := shuffleZChallenge(h, zq, prefix, proof.commitA, proof.commitB)
	if err != nil {
		return VerificationResult{}, err
	}
	negZ := z.Negate()

	baseProd, err := keyBaseProductN(key, n)
	if err != nil {
		return VerificationResult{}, err
	}
	negZTerm, err := baseProd.Exponentiate(negZ)
	if err != nil {
		return VerificationResult{}, err
	}
	cDMinusZCols := make([]*group.GqElement, m)
	for j := 0; j < m; j++ {
		cDj, err := proof.commitA.Get(j).Exponentiate(y)
		if err != nil {
			return VerificationResult{}, err
		}
		cDj, err = cDj.Multiply(proof.commitB.Get(j))
		if err != nil {
			return VerificationResult{}, err
		}
		cDj, err = cDj.Multiply(negZTerm)
		if err != nil {
			return VerificationResult{}, err
		}
		cDMinusZCols[j] = cDj
	}

	one, err := zq.FromValue(big.NewInt(1))
	if err != nil {
		return VerificationResult{}, err
	}
	bStar := one
	yi := zq.Identity()
	for i := 0; i < N; i++ {
		term, err := yi.Add(xPowers.Get(i))
		if err != nil {
			return VerificationResult{}, err
		}
		term, err = term.Add(negZ)
		if err != nil {
			return VerificationResult{}, err
		}
		bStar, err = bStar.Multiply(term)
		if err != nil {
			return VerificationResult{}, err
		}
		yi, err = yi.Add(y)
		if err != nil {
			return VerificationResult{}, err
		}
	}

	productResult, err := VerifyProductArgument(h, key, scalarKey, cDMinusZCols, n, bStar, proof.product)
	if err != nil {
		return VerificationResult{}, err
	}

	cStar, err := elgamal.GetCiphertextVectorExponentiation(original, xPowers)
	if err != nil {
		return VerificationResult{}, err
	}
	shuffledMatrix, err := shuffled.ToMatrix(m, n)
	if err != nil {
		return VerificationResult{}, err
	}
	multiExpResult, err := VerifyMultiExponentiationArgument(h, gr, key, pk, shuffledMatrix, cStar, proof.commitB, proof.multiExp)
	if err != nil {
		return VerificationResult{}, err
	}

	return productResult.And(multiExpResult), nil
}
