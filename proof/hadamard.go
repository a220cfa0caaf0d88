package proof

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/commitment"
	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
	"github.com/takakv/msc-poc/randomsource"
)

// HadamardArgument proves that committed columns a_0, ..., a_{m-1} of an
// n x m matrix have elementwise (Hadamard) product equal to a committed
// vector b, by reducing the m-1 partial-product transitions
// B_i = B_{i-1} o A_i (B_0 = A_0, B_{m-1} = b) to a single Zero Argument.
//
// Two Fiat-Shamir challenges drive the reduction: y, the Zero Argument's
// own bilinear weight, and x, which combines the m-1 transitions into one
// statement. For transition i (i = 1, ..., m-1), the pair of columns
// (A_i, -x^i * B_{i-1}) contributes starmap(A_i, -x^i*B_{i-1}, y), and the
// pair (ones, x^i * B_i) contributes starmap(ones, x^i*B_i, y) = x^i times
// the y-weighted sum of B_i. Summed across all transitions, the bilinear
// and "linear" (paired against the public ones vector) contributions
// cancel exactly when B_i = A_i o B_{i-1} for every i, so this n x 2(m-1)
// Zero Argument exactly certifies the Hadamard chain.
type HadamardArgument struct {
	intermediateCommitments []*group.GqElement
	zero                    *ZeroArgument
}

// onesColumn returns the length-n all-ones vector, the public "linear
// probe" base this reduction pairs against a partial product to recover
// its plain y-weighted sum.
func onesColumn(zq *group.ZqGroup, n int) (group.GroupVector[*group.ZqElement], error) {
	one, err := zq.FromValue(big.NewInt(1))
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, err
	}
	ones := make([]*group.ZqElement, n)
	for i := range ones {
		ones[i] = one
	}
	return group.NewGroupVector(ones)
}

func columnsToMatrix(cols []group.GroupVector[*group.ZqElement]) (group.GroupMatrix[*group.ZqElement], error) {
	matrix := group.GroupMatrix[*group.ZqElement]{}
	for _, col := range cols {
		var err error
		matrix, err = matrix.AppendColumn(col)
		if err != nil {
			return group.GroupMatrix[*group.ZqElement]{}, err
		}
	}
	return matrix, nil
}

// hadamardYChallenge derives the Zero Argument's weight scalar y from the
// public column, result, and intermediate commitments.
func hadamardYChallenge(
	h hashing.Hash, zq *group.ZqGroup, cColumns []*group.GqElement, cB *group.GqElement, intermediate []*group.GqElement,
) (*group.ZqElement, error) {
	elements := append(append([]*group.GqElement{}, cColumns...), cB)
	elements = append(elements, intermediate...)
	return hadamardChallenge(h, zq, elements...)
}

// hadamardXChallenge derives the transition-combining scalar x, bound to
// the same transcript plus y so it is independent of it.
func hadamardXChallenge(
	h hashing.Hash, zq *group.ZqGroup, cColumns []*group.GqElement, cB *group.GqElement,
	intermediate []*group.GqElement, y *group.ZqElement,
) (*group.ZqElement, error) {
	elements := append(append([]*group.GqElement{}, cColumns...), cB)
	elements = append(elements, intermediate...)
	values := make([]hashing.Hashable, 0, len(elements)+1)
	for _, e := range elements {
		hv, err := gqToHashable(e)
		if err != nil {
			return nil, err
		}
		values = append(values, hv)
	}
	yHashable, err := zqToHashable(y)
	if err != nil {
		return nil, err
	}
	values = append(values, yHashable)
	return hashing.RecursiveHashToZq(h, zq, values...)
}

func hadamardChallenge(
	h hashing.Hash, zq *group.ZqGroup, elements ...*group.GqElement,
) (*group.ZqElement, error) {
	values := make([]hashing.Hashable, len(elements))
	for i, e := range elements {
		hv, err := gqToHashable(e)
		if err != nil {
			return nil, err
		}
		values[i] = hv
	}
	return hashing.RecursiveHashToZq(h, zq, values...)
}

// GenerateHadamardArgument proves columns (with openings and commitment
// randomness rColumns) Hadamard-multiply to b (opened as bWitness, bRand,
// committed as cB). cColumns[i] must equal Commit(columns[i]; rColumns[i]).
func GenerateHadamardArgument(
	r randomsource.Random, h hashing.Hash, key, scalarKey *commitment.Key,
	cColumns []*group.GqElement, columns []group.GroupVector[*group.ZqElement], rColumns []*group.ZqElement,
	cB *group.GqElement, bWitness group.GroupVector[*group.ZqElement], bRand *group.ZqElement,
) (*HadamardArgument, error) {
	m := len(columns)
	if m == 0 || len(cColumns) != m || len(rColumns) != m {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "hadamard argument: column count mismatch")
	}
	zq := bRand.Group()
	n := columns[0].Size()

	if m == 1 {
		return &HadamardArgument{}, nil
	}

	// Partial products B_0 = columns[0], B_i = B_{i-1} o columns[i].
	partials := make([]group.GroupVector[*group.ZqElement], m)
	partialRand := make([]*group.ZqElement, m)
	partialCommitments := make([]*group.GqElement, m)
	partials[0] = columns[0]
	partialRand[0] = rColumns[0]
	partialCommitments[0] = cColumns[0]

	intermediateCommitments := make([]*group.GqElement, 0, m-2)
	for i := 1; i < m; i++ {
		if i == m-1 {
			partials[i] = bWitness
			partialRand[i] = bRand
			partialCommitments[i] = cB
			continue
		}
		next, err := group.ZipVector(partials[i-1], columns[i], func(a, b *group.ZqElement) (*group.ZqElement, error) {
			return a.Multiply(b)
		})
		if err != nil {
			return nil, err
		}
		s, err := sampleZq(r, zq)
		if err != nil {
			return nil, err
		}
		c, err := commitment.GetCommitmentVector(next, s, key)
		if err != nil {
			return nil, err
		}
		partials[i] = next
		partialRand[i] = s
		partialCommitments[i] = c
		intermediateCommitments = append(intermediateCommitments, c)
	}

	y, err := hadamardYChallenge(h, zq, cColumns, cB, intermediateCommitments)
	if err != nil {
		return nil, err
	}
	x, err := hadamardXChallenge(h, zq, cColumns, cB, intermediateCommitments, y)
	if err != nil {
		return nil, err
	}
	xPowers, err := yPowers(x, m-1)
	if err != nil {
		return nil, err
	}
	ones, err := onesColumn(zq, n)
	if err != nil {
		return nil, err
	}
	onesCommit, err := commitment.GetCommitmentVector(ones, zq.Identity(), key)
	if err != nil {
		return nil, err
	}

	aCols := make([]group.GroupVector[*group.ZqElement], 0, 2*(m-1))
	bCols := make([]group.GroupVector[*group.ZqElement], 0, 2*(m-1))
	aRand := make([]*group.ZqElement, 0, 2*(m-1))
	bRandVec := make([]*group.ZqElement, 0, 2*(m-1))
	cA := make([]*group.GqElement, 0, 2*(m-1))
	cBvec := make([]*group.GqElement, 0, 2*(m-1))

	for t := 0; t < m-1; t++ {
		xPower := xPowers.Get(t) // x^{t+1}
		negXPower := xPower.Negate()

		scaledPrev, err := scaleVector(partials[t], negXPower)
		if err != nil {
			return nil, err
		}
		scaledPrevRand, err := partialRand[t].Multiply(negXPower)
		if err != nil {
			return nil, err
		}
		scaledPrevCommit, err := partialCommitments[t].Exponentiate(negXPower)
		if err != nil {
			return nil, err
		}

		scaledCur, err := scaleVector(partials[t+1], xPower)
		if err != nil {
			return nil, err
		}
		scaledCurRand, err := partialRand[t+1].Multiply(xPower)
		if err != nil {
			return nil, err
		}
		scaledCurCommit, err := partialCommitments[t+1].Exponentiate(xPower)
		if err != nil {
			return nil, err
		}

		aCols = append(aCols, columns[t+1], ones)
		bCols = append(bCols, scaledPrev, scaledCur)
		aRand = append(aRand, rColumns[t+1], zq.Identity())
		bRandVec = append(bRandVec, scaledPrevRand, scaledCurRand)
		cA = append(cA, cColumns[t+1], onesCommit)
		cBvec = append(cBvec, scaledPrevCommit, scaledCurCommit)
	}

	aMatrix, err := columnsToMatrix(aCols)
	if err != nil {
		return nil, err
	}
	bMatrix, err := columnsToMatrix(bCols)
	if err != nil {
		return nil, err
	}
	cAVec, err := group.NewGroupVector(cA)
	if err != nil {
		return nil, err
	}
	cBVec, err := group.NewGroupVector(cBvec)
	if err != nil {
		return nil, err
	}
	rAVec, err := group.NewGroupVector(aRand)
	if err != nil {
		return nil, err
	}
	sBVec, err := group.NewGroupVector(bRandVec)
	if err != nil {
		return nil, err
	}

	zero, err := GenerateZeroArgument(r, h, key, scalarKey, cAVec, cBVec, y, aMatrix, bMatrix, rAVec, sBVec)
	if err != nil {
		return nil, err
	}

	return &HadamardArgument{intermediateCommitments: intermediateCommitments, zero: zero}, nil
}

// VerifyHadamardArgument checks proof against the public column and
// result commitments.
func VerifyHadamardArgument(
	h hashing.Hash, key, scalarKey *commitment.Key,
	cColumns []*group.GqElement, cB *group.GqElement, n int,
	proof *HadamardArgument,
) (VerificationResult, error) {
	m := len(cColumns)
	if m == 1 {
		if cColumns[0].Equal(cB) {
			return Success, nil
		}
		return Failure("hadamard argument: single column must equal result"), nil
	}
	if len(proof.intermediateCommitments) != m-2 {
		return Failure("hadamard argument: intermediate commitment count mismatch"), nil
	}

	zq := group.SameOrderAsGq(cColumns[0].Group())

	y, err := hadamardYChallenge(h, zq, cColumns, cB, proof.intermediateCommitments)
	if err != nil {
		return VerificationResult{}, err
	}
	x, err := hadamardXChallenge(h, zq, cColumns, cB, proof.intermediateCommitments, y)
	if err != nil {
		return VerificationResult{}, err
	}
	xPowers, err := yPowers(x, m-1)
	if err != nil {
		return VerificationResult{}, err
	}
	ones, err := onesColumn(zq, n)
	if err != nil {
		return VerificationResult{}, err
	}
	onesCommit, err := commitment.GetCommitmentVector(ones, zq.Identity(), key)
	if err != nil {
		return VerificationResult{}, err
	}

	partialCommitments := make([]*group.GqElement, m)
	partialCommitments[0] = cColumns[0]
	partialCommitments[m-1] = cB
	for i := 1; i < m-1; i++ {
		partialCommitments[i] = proof.intermediateCommitments[i-1]
	}

	cA := make([]*group.GqElement, 0, 2*(m-1))
	cBvec := make([]*group.GqElement, 0, 2*(m-1))
	for t := 0; t < m-1; t++ {
		xPower := xPowers.Get(t)
		negXPower := xPower.Negate()

		scaledPrevCommit, err := partialCommitments[t].Exponentiate(negXPower)
		if err != nil {
			return VerificationResult{}, err
		}
		scaledCurCommit, err := partialCommitments[t+1].Exponentiate(xPower)
		if err != nil {
			return VerificationResult{}, err
		}
		cA = append(cA, cColumns[t+1], onesCommit)
		cBvec = append(cBvec, scaledPrevCommit, scaledCurCommit)
	}

	cAVec, err := group.NewGroupVector(cA)
	if err != nil {
		return VerificationResult{}, err
	}
	cBVec, err := group.NewGroupVector(cBvec)
	if err != nil {
		return VerificationResult{}, err
	}

	return VerifyZeroArgument(h, key, scalarKey, cAVec, cBVec, y, proof.zero)
}
