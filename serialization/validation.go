package serialization

import (
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
)

// AllEqualUnderProjection returns true iff project(items[i]) is equal, by
// ==, for every item in items. An empty or single-element slice is
// trivially equal.
func AllEqualUnderProjection[T any, K comparable](items []T, project func(T) K) bool {
	if len(items) < 2 {
		return true
	}
	first := project(items[0])
	for _, item := range items[1:] {
		if project(item) != first {
			return false
		}
	}
	return true
}

// RequireNonEmpty fails with InvalidArgument when items has length 0.
func RequireNonEmpty[T any](items []T, what string) error {
	if len(items) == 0 {
		return errors.Wrapf(cryptoerrors.ErrInvalidArgument, "%s must not be empty", what)
	}
	return nil
}

// RequireNoNilElements fails with InvariantViolation when any element of
// items is a nil pointer.
func RequireNoNilElements[T comparable](items []T, what string) error {
	var zero T
	for i, item := range items {
		if item == zero {
			return errors.Wrapf(cryptoerrors.ErrInvariantViolation, "%s[%d] must not be nil", what, i)
		}
	}
	return nil
}

// RequireInRange fails with InvalidArgument unless lo <= x < hi.
func RequireInRange(x, lo, hi int, what string) error {
	if x < lo || x >= hi {
		return errors.Wrapf(cryptoerrors.ErrInvalidArgument, "%s must be in [%d, %d), got %d", what, lo, hi, x)
	}
	return nil
}

// RequirePositive fails with InvalidArgument unless x > 0.
func RequirePositive(x int, what string) error {
	if x <= 0 {
		return errors.Wrapf(cryptoerrors.ErrInvalidArgument, "%s must be positive, got %d", what, x)
	}
	return nil
}
