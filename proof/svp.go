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

// SingleValueProductArgument proves that the committed vector x of length
// n satisfies prod_i x_i = product, a public scalar, without revealing x.
//
// It works by blinding x with a fresh vector d and observing that
// F(X) = prod_i (X*x_i + d_i) is a degree-n polynomial in the formal
// variable X whose top coefficient is the public product and whose lower
// n coefficients the prover commits to before the challenge is drawn. The
// verifier evaluates F at the challenge two ways: directly, from the
// revealed blinded vector, and via the committed coefficients, and checks
// they match.
type SingleValueProductArgument struct {
	commitD          *group.GqElement
	lowCoefficients  []*group.GqElement
	responseX        group.GroupVector[*group.ZqElement]
	responseXRand    *group.ZqElement
	responseCoefRand *group.ZqElement
}

// polyCoefficients returns the n+1 coefficients (low-to-high degree) of
// prod_i (X*x_i + d_i) over Zq.
func polyCoefficients(zq *group.ZqGroup, x, d group.GroupVector[*group.ZqElement]) ([]*group.ZqElement, error) {
	poly := []*group.ZqElement{zq.Identity()}
	one, err := zq.FromValue(big.NewInt(1))
	if err != nil {
		return nil, err
	}
	poly[0] = one
	for i := 0; i < x.Size(); i++ {
		next := make([]*group.ZqElement, len(poly)+1)
		for k := range next {
			next[k] = zq.Identity()
		}
		for k, c := range poly {
			dTerm, err := c.Multiply(d.Get(i))
			if err != nil {
				return nil, err
			}
			next[k], err = next[k].Add(dTerm)
			if err != nil {
				return nil, err
			}
			xTerm, err := c.Multiply(x.Get(i))
			if err != nil {
				return nil, err
			}
			next[k+1], err = next[k+1].Add(xTerm)
			if err != nil {
				return nil, err
			}
		}
		poly = next
	}
	return poly, nil
}

// GenerateSingleValueProductArgument proves prod_i x_i = product for x
// committed (under key) as cX = Commit(x; rx). scalarKey blinds the
// polynomial coefficients.
func GenerateSingleValueProductArgument(
	r randomsource.Random, h hashing.Hash, key, scalarKey *commitment.Key,
	cX *group.GqElement, x group.GroupVector[*group.ZqElement], rx *group.ZqElement, product *group.ZqElement,
) (*SingleValueProductArgument, error) {
	zq := rx.Group()
	n := x.Size()

	dBlind, err := newBlindedVector(r, key, zq, n)
	if err != nil {
		return nil, err
	}
	coeffs, err := polyCoefficients(zq, x, dBlind.blinding)
	if err != nil {
		return nil, err
	}
	if !coeffs[n].Equal(product) {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "single value product argument: witness does not match claimed product")
	}

	lowCommitments := make([]*group.GqElement, n)
	coefRand := make([]*group.ZqElement, n)
	for k := 0; k < n; k++ {
		s, err := sampleZq(r, zq)
		if err != nil {
			return nil, err
		}
		coefRand[k] = s
		vec, err := group.NewGroupVector([]*group.ZqElement{coeffs[k]})
		if err != nil {
			return nil, err
		}
		c, err := commitment.GetCommitmentVector(vec, s, scalarKey)
		if err != nil {
			return nil, err
		}
		lowCommitments[k] = c
	}

	challenge, err := svpChallenge(h, zq, cX, dBlind.commitment, lowCommitments, product)
	if err != nil {
		return nil, err
	}

	responseX, responseXRand, err := dBlind.respond(challenge, x, rx)
	if err != nil {
		return nil, err
	}

	responseCoefRand := zq.Identity()
	power, err := zq.FromValue(big.NewInt(1))
	if err != nil {
		return nil, err
	}
	for k := 0; k < n; k++ {
		term, err := coefRand[k].Multiply(power)
		if err != nil {
			return nil, err
		}
		responseCoefRand, err = responseCoefRand.Add(term)
		if err != nil {
			return nil, err
		}
		power, err = power.Multiply(challenge)
		if err != nil {
			return nil, err
		}
	}

	return &SingleValueProductArgument{
		commitD: dBlind.commitment, lowCoefficients: lowCommitments,
		responseX: responseX, responseXRand: responseXRand, responseCoefRand: responseCoefRand,
	}, nil
}

// VerifySingleValueProductArgument checks proof against the public
// commitment cX and claimed product.
func VerifySingleValueProductArgument(
	h hashing.Hash, key, scalarKey *commitment.Key, cX *group.GqElement, product *group.ZqElement,
	proof *SingleValueProductArgument,
) (VerificationResult, error) {
	zq := product.Group()
	n := len(proof.lowCoefficients)

	challenge, err := svpChallenge(h, zq, cX, proof.commitD, proof.lowCoefficients, product)
	if err != nil {
		return VerificationResult{}, err
	}

	okOpen, err := checkOpening(key, proof.responseX, proof.responseXRand, proof.commitD, cX, challenge)
	if err != nil {
		return VerificationResult{}, err
	}

	directProduct, err := zq.FromValue(big.NewInt(1))
	if err != nil {
		return VerificationResult{}, err
	}
	for i := 0; i < proof.responseX.Size(); i++ {
		directProduct, err = directProduct.Multiply(proof.responseX.Get(i))
		if err != nil {
			return VerificationResult{}, err
		}
	}
	directVec, err := group.NewGroupVector([]*group.ZqElement{directProduct})
	if err != nil {
		return VerificationResult{}, err
	}
	lhs, err := commitment.GetCommitmentVector(directVec, proof.responseCoefRand, scalarKey)
	if err != nil {
		return VerificationResult{}, err
	}

	rhs := scalarKey.H().Group().Identity()
	power, err := zq.FromValue(big.NewInt(1))
	if err != nil {
		return VerificationResult{}, err
	}
	for k := 0; k < n; k++ {
		raised, err := proof.lowCoefficients[k].Exponentiate(power)
		if err != nil {
			return VerificationResult{}, err
		}
		rhs, err = rhs.Multiply(raised)
		if err != nil {
			return VerificationResult{}, err
		}
		power, err = power.Multiply(challenge)
		if err != nil {
			return VerificationResult{}, err
		}
	}
	topRaised, err := scalarKey.G().Get(0).Exponentiate(product)
	if err != nil {
		return VerificationResult{}, err
	}
	topRaised, err = topRaised.Exponentiate(power)
	if err != nil {
		return VerificationResult{}, err
	}
	rhs, err = rhs.Multiply(topRaised)
	if err != nil {
		return VerificationResult{}, err
	}

	result := Success
	if !okOpen {
		result = result.And(Failure("single value product argument: opening check failed"))
	}
	if !lhs.Equal(rhs) {
		result = result.And(Failure("single value product argument: polynomial evaluation check failed"))
	}
	return result, nil
}

func svpChallenge(
	h hashing.Hash, zq *group.ZqGroup, cX, commitD *group.GqElement, lowCommitments []*group.GqElement, product *group.ZqElement,
) (*group.ZqElement, error) {
	values := make([]hashing.Hashable, 0, len(lowCommitments)+3)
	for _, e := range append([]*group.GqElement{cX, commitD}, lowCommitments...) {
		hv, err := gqToHashable(e)
		if err != nil {
			return nil, err
		}
		values = append(values, hv)
	}
	productHashable, err := zqToHashable(product)
	if err != nil {
		return nil, err
	}
	values = append(values, productHashable)
	return hashing.RecursiveHashToZq(h, zq, values...)
}
