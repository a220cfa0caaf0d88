package proof

import (
	"github.com/takakv/msc-poc/commitment"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/randomsource"
)

// blindedVector holds a sampled blinding vector, its commitment randomness
// and its commitment: the "commit" half of a generalized Schnorr
// "commit, then respond" step, whose "respond" half is respond below. It
// is used by the single-value product argument (svp.go).
type blindedVector struct {
	blinding     group.GroupVector[*group.ZqElement]
	blindingRand *group.ZqElement
	commitment   *group.GqElement
}

// newBlindedVector samples a uniform blinding vector of size n (plus its
// commitment randomness) and commits to it under key.
func newBlindedVector(r randomsource.Random, key *commitment.Key, zq *group.ZqGroup, n int) (*blindedVector, error) {
	d, err := group.GenRandomZqVector(r, zq, n)
	if err != nil {
		return nil, err
	}
	rd, err := sampleZq(r, zq)
	if err != nil {
		return nil, err
	}
	c, err := commitment.GetCommitmentVector(d, rd, key)
	if err != nil {
		return nil, err
	}
	return &blindedVector{blinding: d, blindingRand: rd, commitment: c}, nil
}

// respond returns challenge*witness + blinding (elementwise), the
// generalized Schnorr response vector, together with the matching folded
// randomness challenge*witnessRand + blindingRand.
func (bv *blindedVector) respond(
	challenge *group.ZqElement, witness group.GroupVector[*group.ZqElement], witnessRand *group.ZqElement,
) (group.GroupVector[*group.ZqElement], *group.ZqElement, error) {
	response, err := group.ZipVector(witness, bv.blinding, func(w, d *group.ZqElement) (*group.ZqElement, error) {
		scaled, err := w.Multiply(challenge)
		if err != nil {
			return nil, err
		}
		return scaled.Add(d)
	})
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, nil, err
	}
	scaledRand, err := witnessRand.Multiply(challenge)
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, nil, err
	}
	responseRand, err := scaledRand.Add(bv.blindingRand)
	if err != nil {
		return group.GroupVector[*group.ZqElement]{}, nil, err
	}
	return response, responseRand, nil
}

// sampleZq draws one uniform element of zq.
func sampleZq(r randomsource.Random, zq *group.ZqGroup) (*group.ZqElement, error) {
	v, err := r.RandomInt(zq.Q())
	if err != nil {
		return nil, err
	}
	return zq.FromValue(v)
}

// checkOpening verifies that Commit(response; responseRand) equals
// blindingCommitment * witnessCommitment^challenge, the standard
// generalized-Schnorr opening check (used by the single-value product
// argument; zero.go folds several commitments with checkFoldedOpening).
func checkOpening(
	key *commitment.Key, response group.GroupVector[*group.ZqElement], responseRand *group.ZqElement,
	blindingCommitment, witnessCommitment *group.GqElement, challenge *group.ZqElement,
) (bool, error) {
	lhs, err := commitment.GetCommitmentVector(response, responseRand, key)
	if err != nil {
		return false, err
	}
	raised, err := witnessCommitment.Exponentiate(challenge)
	if err != nil {
		return false, err
	}
	rhs, err := blindingCommitment.Multiply(raised)
	if err != nil {
		return false, err
	}
	return lhs.Equal(rhs), nil
}
