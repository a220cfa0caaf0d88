package group

import (
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
)

// GroupMatrix is an m-row, n-column homogeneous matrix of group elements:
// every row has the same element count, every element shares one group and
// one size. A matrix is empty iff either dimension is 0, normalized to a
// 0x0 matrix.
type GroupMatrix[E GroupElement[E]] struct {
	rows []GroupVector[E]
}

// NewGroupMatrix validates that every row has equal length and a common
// group, and returns a new matrix wrapping rows.
func NewGroupMatrix[E GroupElement[E]](rows []GroupVector[E]) (GroupMatrix[E], error) {
	if len(rows) == 0 {
		return GroupMatrix[E]{}, nil
	}
	n := rows[0].Size()
	for i, row := range rows {
		if row.Size() != n {
			return GroupMatrix[E]{}, errors.Wrapf(cryptoerrors.ErrInvariantViolation,
				"group matrix: row %d has %d columns, want %d", i, row.Size(), n)
		}
		if i > 0 && !row.SameGroup(rows[0]) {
			return GroupMatrix[E]{}, errors.Wrapf(cryptoerrors.ErrInvariantViolation,
				"group matrix: row %d does not share the group of row 0", i)
		}
	}
	if n == 0 {
		return GroupMatrix[E]{}, nil
	}
	cp := make([]GroupVector[E], len(rows))
	copy(cp, rows)
	return GroupMatrix[E]{rows: cp}, nil
}

// NumRows returns m.
func (mx GroupMatrix[E]) NumRows() int { return len(mx.rows) }

// NumColumns returns n.
func (mx GroupMatrix[E]) NumColumns() int {
	if len(mx.rows) == 0 {
		return 0
	}
	return mx.rows[0].Size()
}

// IsEmpty reports whether either dimension is 0.
func (mx GroupMatrix[E]) IsEmpty() bool { return mx.NumRows() == 0 || mx.NumColumns() == 0 }

// Row returns row i as a GroupVector of size n.
func (mx GroupMatrix[E]) Row(i int) GroupVector[E] { return mx.rows[i] }

// Column returns column j as a GroupVector of size m.
func (mx GroupMatrix[E]) Column(j int) (GroupVector[E], error) {
	out := make([]E, mx.NumRows())
	for i := 0; i < mx.NumRows(); i++ {
		out[i] = mx.rows[i].Get(j)
	}
	return NewGroupVector(out)
}

// Get returns M[i][j].
func (mx GroupMatrix[E]) Get(i, j int) E { return mx.rows[i].Get(j) }

// Transpose returns the n-row, m-column transpose of mx.
func (mx GroupMatrix[E]) Transpose() (GroupMatrix[E], error) {
	if mx.IsEmpty() {
		return GroupMatrix[E]{}, nil
	}
	cols := make([]GroupVector[E], mx.NumColumns())
	for j := 0; j < mx.NumColumns(); j++ {
		col, err := mx.Column(j)
		if err != nil {
			return GroupMatrix[E]{}, err
		}
		cols[j] = col
	}
	return NewGroupMatrix(cols)
}

// AppendColumn returns a new matrix with col appended after the last
// column. col's size must equal mx.NumRows() (or mx may be empty, in which
// case col becomes the sole column).
func (mx GroupMatrix[E]) AppendColumn(col GroupVector[E]) (GroupMatrix[E], error) {
	if mx.IsEmpty() {
		rows := make([]GroupVector[E], col.Size())
		for i := 0; i < col.Size(); i++ {
			row, err := NewGroupVector([]E{col.Get(i)})
			if err != nil {
				return GroupMatrix[E]{}, err
			}
			rows[i] = row
		}
		return NewGroupMatrix(rows)
	}
	if col.Size() != mx.NumRows() {
		return GroupMatrix[E]{}, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"append column: size %d != %d rows", col.Size(), mx.NumRows())
	}
	rows := make([]GroupVector[E], mx.NumRows())
	for i := 0; i < mx.NumRows(); i++ {
		row, err := mx.rows[i].Append(col.Get(i))
		if err != nil {
			return GroupMatrix[E]{}, err
		}
		rows[i] = row
	}
	return NewGroupMatrix(rows)
}

// PrependColumn returns a new matrix with col inserted before the first
// column.
func (mx GroupMatrix[E]) PrependColumn(col GroupVector[E]) (GroupMatrix[E], error) {
	if mx.IsEmpty() {
		return mx.AppendColumn(col)
	}
	if col.Size() != mx.NumRows() {
		return GroupMatrix[E]{}, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"prepend column: size %d != %d rows", col.Size(), mx.NumRows())
	}
	rows := make([]GroupVector[E], mx.NumRows())
	for i := 0; i < mx.NumRows(); i++ {
		row, err := mx.rows[i].Prepend(col.Get(i))
		if err != nil {
			return GroupMatrix[E]{}, err
		}
		rows[i] = row
	}
	return NewGroupMatrix(rows)
}
