package proof

import (
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/commitment"
	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
	"github.com/takakv/msc-poc/randomsource"
)

// ZeroArgument proves that two committed n x m matrices A, B satisfy the
// weighted bilinear relation sum_{i=0}^{m-1} starmap(A.col(i), B.col(i), y) = 0,
// where starmap((a_0,...,a_{n-1}), (b_0,...,b_{n-1}), y) = sum_j a_j*b_j*y^{j+1},
// without revealing A or B. y is a public scalar (in the Hadamard argument,
// a Fiat-Shamir challenge).
//
// The construction extends A with one fresh blinding column a_0 on the
// left and B with one fresh blinding column b_m on the right, so the
// extended column sequences both have length m+1. Their 2m+1 pairwise
// starmap convolutions d_0, ..., d_{2m} are exactly the coefficients of
// the degree-2m polynomial sum_k d_k X^k obtained by substituting
// A'(X) = a_0 + sum_{i=1}^{m} A_i X^i and B'(X) = sum_{j=1}^{m} B_j X^{m-j} + b_m X^m
// (A_i, B_j counting columns from 1) into starmap(A'(X), B'(X), y);
// d_m, the center coefficient, combines the
// witness relation (which sums to 0) with the cross term starmap(a_0, b_m, y).
// b_m is sampled freely; a_0's last coordinate is then solved for so that
// starmap(a_0, b_m, y) = 0, forcing d_m to vanish exactly, matching the
// verifier's d_m = 1 (the Gq identity) check.
type ZeroArgument struct {
	commitA0, commitBm *group.GqElement
	commitD            group.GroupVector[*group.GqElement]
	responseA          group.GroupVector[*group.ZqElement]
	responseARand      *group.ZqElement
	responseB          group.GroupVector[*group.ZqElement]
	responseBRand      *group.ZqElement
	responseTRand      *group.ZqElement
}

// yPowers returns (y, y^2, ..., y^n), the starmap weight vector for a
// length-n column.
func yPowers(y *group.ZqElement, n int) (group.GroupVector[*group.ZqElement], error) {
	powers := make([]*group.ZqElement, n)
	cur := y
	for i := 0; i < n; i++ {
		powers[i] = cur
		if i+1 < n {
			var err error
			cur, err = cur.Multiply(y)
			if err != nil {
				return group.GroupVector[*group.ZqElement]{}, err
			}
		}
	}
	return group.NewGroupVector(powers)
}

func weightedInnerProduct(
	a, b group.GroupVector[*group.ZqElement], weight group.GroupVector[*group.ZqElement],
) (*group.ZqElement, error) {
	acc := weight.Get(0).Group().Identity()
	for i := 0; i < a.Size(); i++ {
		term, err := a.Get(i).Multiply(b.Get(i))
		if err != nil {
			return nil, err
		}
		term, err = term.Multiply(weight.Get(i))
		if err != nil {
			return nil, err
		}
		acc, err = acc.Add(term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// scaleVector returns c*v elementwise.
func scaleVector(v group.GroupVector[*group.ZqElement], c *group.ZqElement) (group.GroupVector[*group.ZqElement], error) {
	return group.MapVector(v, func(vi *group.ZqElement) (*group.ZqElement, error) {
		return vi.Multiply(c)
	})
}

// addVector returns a+b elementwise.
func addVector(a, b group.GroupVector[*group.ZqElement]) (group.GroupVector[*group.ZqElement], error) {
	return group.ZipVector(a, b, func(ai, bi *group.ZqElement) (*group.ZqElement, error) {
		return ai.Add(bi)
	})
}

// sampleConstrainedBlindingPair draws fresh length-n blinding columns
// (a0, bm) such that starmap(a0, bm, y) = 0: bm is sampled uniformly, and
// a0's last coordinate is solved from a uniformly sampled prefix so the
// weighted inner product with bm cancels exactly. It retries the whole
// draw if bm's last coordinate is 0 (so the solve is invertible), which
// occurs with negligible probability.
func sampleConstrainedBlindingPair(
	r randomsource.Random, zq *group.ZqGroup, y *group.ZqElement, n int,
) (a0, bm group.GroupVector[*group.ZqElement], err error) {
	weight, err := yPowers(y, n)
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
	}
	for {
		bm, err = group.GenRandomZqVector(r, zq, n)
		if err != nil {
			return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
		}
		if bm.Get(n - 1).IsZero() {
			continue
		}
		a0, bm, err = sampleConstrainedBlindingPairOnce(r, zq, weight, bm)
		if errors.Is(err, cryptoerrors.ErrNotInvertible) {
			continue
		}
		if err != nil {
			return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
		}
		return a0, bm, nil
	}
}

// sampleConstrainedBlindingPairOnce performs one concrete draw of a0 given
// a fixed bm and weight, solving a0's last coordinate exactly.
func sampleConstrainedBlindingPairOnce(
	r randomsource.Random, zq *group.ZqGroup, weight group.GroupVector[*group.ZqElement],
	bm group.GroupVector[*group.ZqElement],
) (a0, bmOut group.GroupVector[*group.ZqElement], err error) {
	n := bm.Size()
	prefix, err := group.GenRandomZqVector(r, zq, n-1)
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
	}
	prefixSum := zq.Identity()
	for i := 0; i < n-1; i++ {
		term, err := prefix.Get(i).Multiply(bm.Get(i))
		if err != nil {
			return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
		}
		term, err = term.Multiply(weight.Get(i))
		if err != nil {
			return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
		}
		prefixSum, err = prefixSum.Add(term)
		if err != nil {
			return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
		}
	}
	lastDenominator, err := bm.Get(n - 1).Multiply(weight.Get(n - 1))
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
	}
	lastDenominatorInv, err := lastDenominator.Invert()
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
	}
	lastValue, err := prefixSum.Negate().Multiply(lastDenominatorInv)
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
	}
	elements := append(prefix.Slice(), lastValue)
	a0, err = group.NewGroupVector(elements)
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, group.GroupVector[*group.ZqElement]{}, err
	}
	return a0, bm, nil
}

// extendedColumns builds the (m+1)-length sequence of columns
// (a0, A.col(0), ..., A.col(m-1)) and the (m+1)-length sequence
// (B.col(m-1), ..., B.col(0), bm), matched so the k-th pair sums to the
// convolution index k = i+j.
func extendedColumns(
	A, B group.GroupMatrix[*group.ZqElement], a0, bm group.GroupVector[*group.ZqElement],
) ([]group.GroupVector[*group.ZqElement], []group.GroupVector[*group.ZqElement], error) {
	m := A.NumColumns()
	aCols := make([]group.GroupVector[*group.ZqElement], m+1)
	bCols := make([]group.GroupVector[*group.ZqElement], m+1)
	aCols[0] = a0
	for i := 0; i < m; i++ {
		col, err := A.Column(i)
		if err != nil {
			return nil, nil, err
		}
		aCols[i+1] = col
	}
	for j := 0; j < m; j++ {
		col, err := B.Column(m - 1 - j)
		if err != nil {
			return nil, nil, err
		}
		bCols[j] = col
	}
	bCols[m] = bm
	return aCols, bCols, nil
}

// GenerateZeroArgument proves sum_i starmap(A.col(i),B.col(i),y) = 0 for
// the witness matrices A, B (each n x m) committed (under key, one
// commitment per column) as cA = (Commit(A.col(0);rA_0), ...),
// cB = (Commit(B.col(0);sB_0), ...). scalarKey is a size-1 commitment key
// used to blind the per-index convolution coefficients.
func GenerateZeroArgument(
	r randomsource.Random, h hashing.Hash, key, scalarKey *commitment.Key,
	cA, cB group.GroupVector[*group.GqElement], y *group.ZqElement,
	A, B group.GroupMatrix[*group.ZqElement], rA, sB group.GroupVector[*group.ZqElement],
) (*ZeroArgument, error) {
	m := A.NumColumns()
	n := A.NumRows()
	if m == 0 || n == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "zero argument: matrices must be non-empty")
	}
	if B.NumColumns() != m || B.NumRows() != n {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "zero argument: A and B must have equal shape")
	}
	if cA.Size() != m || cB.Size() != m || rA.Size() != m || sB.Size() != m {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "zero argument: commitment/randomness vectors must have length m")
	}
	zq := y.Group()

	a0, bm, err := sampleConstrainedBlindingPair(r, zq, y, n)
	if err != nil {
		return nil, err
	}
	r0, err := sampleZq(r, zq)
	if err != nil {
		return nil, err
	}
	sm, err := sampleZq(r, zq)
	if err != nil {
		return nil, err
	}
	commitA0, err := commitment.GetCommitmentVector(a0, r0, key)
	if err != nil {
		return nil, err
	}
	commitBm, err := commitment.GetCommitmentVector(bm, sm, key)
	if err != nil {
		return nil, err
	}

	aCols, bCols, err := extendedColumns(A, B, a0, bm)
	if err != nil {
		return nil, err
	}
	aRand := append([]*group.ZqElement{r0}, rA.Slice()...)
	bRand := make([]*group.ZqElement, m+1)
	for j := 0; j < m; j++ {
		bRand[j] = sB.Get(m - 1 - j)
	}
	bRand[m] = sm

	weight, err := yPowers(y, n)
	if err != nil {
		return nil, err
	}

	// d_k = sum_{i+j=k} starmap(aCols[i], bCols[j], y), k = 0..2m.
	d := make([]*group.ZqElement, 2*m+1)
	tRand := make([]*group.ZqElement, 2*m+1)
	for k := 0; k <= 2*m; k++ {
		sum := zq.Identity()
		loI := 0
		if k-m > loI {
			loI = k - m
		}
		hiI := m
		if k < hiI {
			hiI = k
		}
		for i := loI; i <= hiI; i++ {
			j := k - i
			term, err := weightedInnerProduct(aCols[i], bCols[j], weight)
			if err != nil {
				return nil, err
			}
			sum, err = sum.Add(term)
			if err != nil {
				return nil, err
			}
		}
		d[k] = sum
	}
	if !d[m].IsZero() {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "zero argument: witness does not satisfy the zero relation")
	}

	commitDElements := make([]*group.GqElement, 2*m+1)
	for k := 0; k <= 2*m; k++ {
		if k == m {
			tRand[k] = zq.Identity()
			commitDElements[k] = scalarKey.H().Group().Identity()
			continue
		}
		t, err := sampleZq(r, zq)
		if err != nil {
			return nil, err
		}
		tRand[k] = t
		vec, err := group.NewGroupVector([]*group.ZqElement{d[k]})
		if err != nil {
			return nil, err
		}
		c, err := commitment.GetCommitmentVector(vec, t, scalarKey)
		if err != nil {
			return nil, err
		}
		commitDElements[k] = c
	}
	commitD, err := group.NewGroupVector(commitDElements)
	if err != nil {
		return nil, err
	}

	challenge, err := zeroChallenge(h, zq, cA, cB, commitA0, commitBm, commitD)
	if err != nil {
		return nil, err
	}

	responseA, responseARand, err := foldColumns(zq, challenge, aCols, aRand)
	if err != nil {
		return nil, err
	}
	responseB, responseBRand, err := foldColumns(zq, challenge, bCols, bRand)
	if err != nil {
		return nil, err
	}
	responseTRand, err := foldScalars(zq, challenge, tRand)
	if err != nil {
		return nil, err
	}

	return &ZeroArgument{
		commitA0: commitA0, commitBm: commitBm, commitD: commitD,
		responseA: responseA, responseARand: responseARand,
		responseB: responseB, responseBRand: responseBRand,
		responseTRand: responseTRand,
	}, nil
}

// foldColumns returns sum_k challenge^k * cols[k] and the matching folded
// randomness sum_k challenge^k * rand[k].
func foldColumns(
	zq *group.ZqGroup, challenge *group.ZqElement,
	cols []group.GroupVector[*group.ZqElement], rand []*group.ZqElement,
) (group.GroupVector[*group.ZqElement], *group.ZqElement, error) {
	acc := cols[0]
	accRand := rand[0]
	power, err := zq.FromValue(challenge.Value())
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, nil, err
	}
	for k := 1; k < len(cols); k++ {
		scaled, err := scaleVector(cols[k], power)
		if err != nil {
			return group.GroupVector[*group.ZqElement]{}, nil, err
		}
		acc, err = addVector(acc, scaled)
		if err != nil {
			return group.GroupVector[*group.ZqElement]{}, nil, err
		}
		scaledRand, err := rand[k].Multiply(power)
		if err != nil {
			return group.GroupVector[*group.ZqElement]{}, nil, err
		}
		accRand, err = accRand.Add(scaledRand)
		if err != nil {
			return group.GroupVector[*group.ZqElement]{}, nil, err
		}
		power, err = power.Multiply(challenge)
		if err != nil {
			return group.GroupVector[*group.ZqElement]{}, nil, err
		}
	}
	return acc, accRand, nil
}

func foldScalars(zq *group.ZqGroup, challenge *group.ZqElement, values []*group.ZqElement) (*group.ZqElement, error) {
	acc := values[0]
	power, err := zq.FromValue(challenge.Value())
	if err != nil {
		return nil, err
	}
	for k := 1; k < len(values); k++ {
		scaled, err := values[k].Multiply(power)
		if err != nil {
			return nil, err
		}
		acc, err = acc.Add(scaled)
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

// VerifyZeroArgument checks proof against the public commitment vectors
// cA, cB and public weight scalar y.
func VerifyZeroArgument(
	h hashing.Hash, key, scalarKey *commitment.Key,
	cA, cB group.GroupVector[*group.GqElement], y *group.ZqElement,
	proof *ZeroArgument,
) (VerificationResult, error) {
	m := cA.Size()
	if m == 0 || cB.Size() != m {
		return Failure("zero argument: commitment vector size mismatch"), nil
	}
	if proof.commitD.Size() != 2*m+1 {
		return Failure("zero argument: convolution vector has wrong length"), nil
	}
	zq := y.Group()
	n := proof.responseA.Size()

	challenge, err := zeroChallenge(h, zq, cA, cB, proof.commitA0, proof.commitBm, proof.commitD)
	if err != nil {
		return VerificationResult{}, err
	}

	aCommitments := append([]*group.GqElement{proof.commitA0}, cA.Slice()...)
	bCommitments := make([]*group.GqElement, m+1)
	for j := 0; j < m; j++ {
		bCommitments[j] = cB.Get(m - 1 - j)
	}
	bCommitments[m] = proof.commitBm

	okA, err := checkFoldedOpening(key, zq, challenge, proof.responseA, proof.responseARand, aCommitments)
	if err != nil {
		return VerificationResult{}, err
	}
	okB, err := checkFoldedOpening(key, zq, challenge, proof.responseB, proof.responseBRand, bCommitments)
	if err != nil {
		return VerificationResult{}, err
	}

	weight, err := yPowers(y, n)
	if err != nil {
		return VerificationResult{}, err
	}
	tBar, err := weightedInnerProduct(proof.responseA, proof.responseB, weight)
	if err != nil {
		return VerificationResult{}, err
	}
	tBarVec, err := group.NewGroupVector([]*group.ZqElement{tBar})
	if err != nil {
		return VerificationResult{}, err
	}
	lhs, err := commitment.GetCommitmentVector(tBarVec, proof.responseTRand, scalarKey)
	if err != nil {
		return VerificationResult{}, err
	}
	rhs, err := foldGqPowers(challenge, proof.commitD.Slice())
	if err != nil {
		return VerificationResult{}, err
	}

	result := Success
	if !okA {
		result = result.And(Failure("zero argument: A-side opening check failed"))
	}
	if !okB {
		result = result.And(Failure("zero argument: B-side opening check failed"))
	}
	if !lhs.Equal(rhs) {
		result = result.And(Failure("zero argument: convolution check failed"))
	}
	if !proof.commitD.Get(m).Equal(scalarKey.H().Group().Identity()) {
		result = result.And(Failure("zero argument: center convolution coefficient is not the identity"))
	}
	return result, nil
}

// checkFoldedOpening verifies that Commit(response; responseRand) equals
// prod_k commitments[k]^{challenge^k}.
func checkFoldedOpening(
	key *commitment.Key, zq *group.ZqGroup, challenge *group.ZqElement,
	response group.GroupVector[*group.ZqElement], responseRand *group.ZqElement,
	commitments []*group.GqElement,
) (bool, error) {
	lhs, err := commitment.GetCommitmentVector(response, responseRand, key)
	if err != nil {
		return false, err
	}
	rhs, err := foldGqPowers(challenge, commitments)
	if err != nil {
		return false, err
	}
	return lhs.Equal(rhs), nil
}

// foldGqPowers returns prod_k elements[k]^{challenge^k}.
func foldGqPowers(challenge *group.ZqElement, elements []*group.GqElement) (*group.GqElement, error) {
	acc := elements[0]
	zq := challenge.Group()
	power, err := zq.FromValue(challenge.Value())
	if err != nil {
		return nil, err
	}
	for k := 1; k < len(elements); k++ {
		raised, err := elements[k].Exponentiate(power)
		if err != nil {
			return nil, err
		}
		acc, err = acc.Multiply(raised)
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

func zeroChallenge(
	h hashing.Hash, zq *group.ZqGroup,
	cA, cB group.GroupVector[*group.GqElement], commitA0, commitBm *group.GqElement,
	commitD group.GroupVector[*group.GqElement],
) (*group.ZqElement, error) {
	cAHashable, err := gqVectorToHashable(cA)
	if err != nil {
		return nil, err
	}
	cBHashable, err := gqVectorToHashable(cB)
	if err != nil {
		return nil, err
	}
	a0Hashable, err := gqToHashable(commitA0)
	if err != nil {
		return nil, err
	}
	bmHashable, err := gqToHashable(commitBm)
	if err != nil {
		return nil, err
	}
	dHashable, err := gqVectorToHashable(commitD)
	if err != nil {
		return nil, err
	}
	return hashing.RecursiveHashToZq(h, zq, cAHashable, cBHashable, a0Hashable, bmHashable, dHashable)
}
