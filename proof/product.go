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

// ProductArgument proves that the n*m entries of a committed n-row,
// m-column matrix (one commitment per column) multiply to a public
// scalar. It collapses the matrix to a single length-n column via
// HadamardArgument, which itself reduces to a Zero Argument, then proves
// that column's own entries multiply to product via
// SingleValueProductArgument.
type ProductArgument struct {
	commitB  *group.GqElement
	hadamard *HadamardArgument
	svp      *SingleValueProductArgument
}

// GenerateProductArgument proves that the entries of matrix (committed
// per column as cColumns, with per-column randomness rColumns) multiply
// to product.
func GenerateProductArgument(
	r randomsource.Random, h hashing.Hash, key, scalarKey *commitment.Key,
	cColumns []*group.GqElement, matrix group.GroupMatrix[*group.ZqElement], rColumns []*group.ZqElement,
	product *group.ZqElement,
) (*ProductArgument, error) {
	m := matrix.NumColumns()
	n := matrix.NumRows()
	if m == 0 || n == 0 {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "product argument: matrix must be non-empty")
	}
	zq := product.Group()

	columns := make([]group.GroupVector[*group.ZqElement], m)
	for j := 0; j < m; j++ {
		col, err := matrix.Column(j)
		if err != nil {
			return nil, err
		}
		columns[j] = col
	}

	b := columns[0]
	for j := 1; j < m; j++ {
		next, err := group.ZipVector(b, columns[j], func(x, y *group.ZqElement) (*group.ZqElement, error) {
			return x.Multiply(y)
		})
		if err != nil {
			return nil, err
		}
		b = next
	}

	rB, err := sampleZq(r, zq)
	if err != nil {
		return nil, err
	}
	if m == 1 && len(rColumns) == 1 {
		// A single column is its own Hadamard product; reusing its
		// randomness makes cB equal cColumns[0], which is what
		// VerifyHadamardArgument checks for one column.
		rB = rColumns[0]
	}
	cB, err := commitment.GetCommitmentVector(b, rB, key)
	if err != nil {
		return nil, err
	}

	hadamard, err := GenerateHadamardArgument(r, h, key, scalarKey, cColumns, columns, rColumns, cB, b, rB)
	if err != nil {
		return nil, err
	}

	bProduct, err := zq.FromValue(big.NewInt(1))
	if err != nil {
		return nil, err
	}
	for i := 0; i < b.Size(); i++ {
		bProduct, err = bProduct.Multiply(b.Get(i))
		if err != nil {
			return nil, err
		}
	}
	if !bProduct.Equal(product) {
		return nil, errors.Wrap(cryptoerrors.ErrInvariantViolation, "product argument: witness does not match claimed product")
	}

	svp, err := GenerateSingleValueProductArgument(r, h, key, scalarKey, cB, b, rB, product)
	if err != nil {
		return nil, err
	}

	return &ProductArgument{commitB: cB, hadamard: hadamard, svp: svp}, nil
}

// VerifyProductArgument checks proof against the public column
// commitments and claimed product.
func VerifyProductArgument(
	h hashing.Hash, key, scalarKey *commitment.Key, cColumns []*group.GqElement,
	n int, product *group.ZqElement, proof *ProductArgument,
) (VerificationResult, error) {
	hadamardResult, err := VerifyHadamardArgument(h, key, scalarKey, cColumns, proof.commitB, n, proof.hadamard)
	if err != nil {
		return VerificationResult{}, err
	}
	svpResult, err := VerifySingleValueProductArgument(h, key, scalarKey, proof.commitB, product, proof.svp)
	if err != nil {
		return VerificationResult{}, err
	}
	return hadamardResult.And(svpResult), nil
}
