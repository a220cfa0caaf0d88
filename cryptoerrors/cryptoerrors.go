// Package cryptoerrors defines the closed set of error kinds returned by
// this module. Every fallible constructor or operation wraps one of these
// sentinels with github.com/pkg/errors so callers can recover the kind with
// errors.Is while still getting a human-readable message from Error().
package cryptoerrors

import "errors"

var (
	// ErrInvalidArgument marks a nil, empty, out-of-range, or
	// dimension-mismatched argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvariantViolation marks a heterogeneous group, a wrong element
	// size inside a vector or matrix, or a non-member of Gq.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrInvalidGroupParameters marks a (p, q, g) triple that fails
	// primality, safe-prime, or generator checks.
	ErrInvalidGroupParameters = errors.New("invalid group parameters")

	// ErrInvalidEncoding marks a bytes-to-string UTF-8 failure, a
	// bytes-to-integer call on empty input, or a decimal parse failure.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrPreconditionViolation marks a hash-length/bitlen(q) violation or
	// a statement that is not consistent with its witness during proof
	// generation.
	ErrPreconditionViolation = errors.New("precondition violation")

	// ErrNotInvertible marks a Zq element with value 0 presented where an
	// inverse is required.
	ErrNotInvertible = errors.New("not invertible")
)
