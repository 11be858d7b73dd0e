package sss

import "errors"

var (
	// ErrInvalidPoints is returned by Interpolate on empty input, mismatched
	// value lengths, or duplicate x-coordinates.
	ErrInvalidPoints = errors.New("sss: invalid interpolation points")

	// ErrInvalidThreshold is returned by Split for T outside [1, N] or N outside [1, 16].
	ErrInvalidThreshold = errors.New("sss: invalid threshold/count")

	// ErrInvalidSecretLength is returned by Split for a secret shorter than 16 bytes or of odd length.
	ErrInvalidSecretLength = errors.New("sss: secret must be at least 16 bytes and of even length")

	// ErrDigestMismatch is returned by Recover when the recomputed digest does not match the recovered tag.
	ErrDigestMismatch = errors.New("sss: digest mismatch")

	// ErrNotEnoughPoints is returned by Recover when fewer than T points are supplied.
	ErrNotEnoughPoints = errors.New("sss: not enough points to recover")
)
