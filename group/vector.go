package group

import (
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
)

// GroupElement is the constraint satisfied by GqElement and ZqElement (and,
// recursively, by GroupVector itself; GroupMatrix has no SameGroup or Size
// method and does not satisfy it): an element that
// knows whether it shares a group with another element of the same type,
// and how large it is when used as a vector/matrix entry. It is kept
// closed to the algebraic and ElGamal payload types this module defines.
type GroupElement[E any] interface {
	SameGroup(other E) bool
	Size() int
}

// GroupVector is an ordered, homogeneous sequence of group elements: every
// element is non-nil, every element shares one group, and every element
// has the same size (1 for a scalar GqElement/ZqElement). An empty vector
// carries no group reference.
type GroupVector[E GroupElement[E]] struct {
	elements []E
}

// NewGroupVector validates the homogeneity invariants and returns a new
// vector wrapping elements. The slice is copied, so later mutation of the
// caller's slice does not affect the vector.
func NewGroupVector[E GroupElement[E]](elements []E) (GroupVector[E], error) {
	if len(elements) == 0 {
		return GroupVector[E]{}, nil
	}
	first := elements[0]
	for i, e := range elements {
		if !e.SameGroup(first) {
			return GroupVector[E]{}, errors.Wrapf(cryptoerrors.ErrInvariantViolation,
				"group vector: element %d does not share the group of element 0", i)
		}
		if e.Size() != first.Size() {
			return GroupVector[E]{}, errors.Wrapf(cryptoerrors.ErrInvariantViolation,
				"group vector: element %d has size %d, want %d", i, e.Size(), first.Size())
		}
	}
	cp := make([]E, len(elements))
	copy(cp, elements)
	return GroupVector[E]{elements: cp}, nil
}

// Size returns the number of elements in the vector. This doubles as the
// GroupElement.Size() a GroupVector reports when it is itself used as an
// element of an outer GroupVector/GroupMatrix.
func (v GroupVector[E]) Size() int { return len(v.elements) }

// SameGroup reports whether v and other's underlying elements share a
// group, satisfying GroupElement[GroupVector[E]] so a GroupVector can
// itself be nested as an element of an outer GroupVector/GroupMatrix. An
// empty vector carries no group reference and is treated as compatible
// with anything.
func (v GroupVector[E]) SameGroup(other GroupVector[E]) bool {
	if v.IsEmpty() || other.IsEmpty() {
		return true
	}
	return v.elements[0].SameGroup(other.elements[0])
}

// IsEmpty reports whether the vector has zero elements.
func (v GroupVector[E]) IsEmpty() bool { return len(v.elements) == 0 }

// ElementSize returns the size shared by every element (1 for scalars), or
// 0 for an empty vector.
func (v GroupVector[E]) ElementSize() int {
	if len(v.elements) == 0 {
		return 0
	}
	return v.elements[0].Size()
}

// Get returns the element at index i.
func (v GroupVector[E]) Get(i int) E { return v.elements[i] }

// Slice returns the underlying elements as a fresh slice (defensive copy).
func (v GroupVector[E]) Slice() []E {
	cp := make([]E, len(v.elements))
	copy(cp, v.elements)
	return cp
}

// Append returns a new vector with e appended after the last element.
func (v GroupVector[E]) Append(e E) (GroupVector[E], error) {
	return NewGroupVector(append(v.Slice(), e))
}

// Prepend returns a new vector with e inserted before the first element.
func (v GroupVector[E]) Prepend(e E) (GroupVector[E], error) {
	cp := make([]E, 0, len(v.elements)+1)
	cp = append(cp, e)
	cp = append(cp, v.elements...)
	return NewGroupVector(cp)
}

// ToMatrix reshapes a size-(m*n) vector into an m-row, n-column matrix,
// row-major: M[i][j] = v[n*i+j].
func (v GroupVector[E]) ToMatrix(m, n int) (GroupMatrix[E], error) {
	if m*n != len(v.elements) {
		return GroupMatrix[E]{}, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"group vector to matrix: size %d != %d*%d", len(v.elements), m, n)
	}
	rows := make([]GroupVector[E], m)
	for i := 0; i < m; i++ {
		row, err := NewGroupVector(v.elements[i*n : i*n+n])
		if err != nil {
			return GroupMatrix[E]{}, err
		}
		rows[i] = row
	}
	return NewGroupMatrix(rows)
}

// MapVector applies f elementwise and rebuilds the homogeneity invariants
// over the result, failing with InvariantViolation if f's outputs are no
// longer homogeneous (which a correct f never produces, but the check is
// cheap insurance shared with NewGroupVector).
func MapVector[E GroupElement[E], F GroupElement[F]](v GroupVector[E], f func(E) (F, error)) (GroupVector[F], error) {
	out := make([]F, v.Size())
	for i, e := range v.elements {
		mapped, err := f(e)
		if err != nil {
			return GroupVector[F]{}, err
		}
		out[i] = mapped
	}
	return NewGroupVector(out)
}

// ZipVector combines two equal-length vectors elementwise with f.
func ZipVector[E GroupElement[E], F GroupElement[F], G GroupElement[G]](
	a GroupVector[E], b GroupVector[F], f func(E, F) (G, error),
) (GroupVector[G], error) {
	if a.Size() != b.Size() {
		return GroupVector[G]{}, errors.Wrapf(cryptoerrors.ErrInvalidArgument,
			"zip vector: size mismatch %d != %d", a.Size(), b.Size())
	}
	out := make([]G, a.Size())
	for i := range a.elements {
		zipped, err := f(a.elements[i], b.elements[i])
		if err != nil {
			return GroupVector[G]{}, err
		}
		out[i] = zipped
	}
	return NewGroupVector(out)
}
