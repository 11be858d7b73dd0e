package gf256

import "errors"

var (
	// ErrDivisionByZero is returned by Div when the divisor is zero.
	ErrDivisionByZero = errors.New("gf256: division by zero")

	// ErrNoInverse is returned by Inv when asked to invert zero.
	ErrNoInverse = errors.New("gf256: zero has no multiplicative inverse")

	// ErrNegativeExponent is returned by Pow for a negative exponent.
	ErrNegativeExponent = errors.New("gf256: negative exponent")
)
