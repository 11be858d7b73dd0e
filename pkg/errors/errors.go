// Package errors provides structured error handling for the slip39 CLI
// and its supporting libraries. It defines sentinel errors matching the
// SLIP-0039 error taxonomy, CLI exit codes, and helpers for adding
// context, details, and suggestions to an error.
//
//nolint:revive // package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// CLI exit codes.
const (
	ExitSuccess = 0 // Successful execution
	ExitGeneral = 1 // General/unknown error
	ExitInput   = 2 // Invalid input (configuration, passphrase, share, word)
)

// Slip39Error is the structured error type used across the module.
type Slip39Error struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for the user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *Slip39Error) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *Slip39Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for Slip39Error: two Slip39Errors are equivalent
// if they share the same Code.
func (e *Slip39Error) Is(target error) bool {
	var t *Slip39Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors, one per SLIP-0039 error kind (§7 of the spec).
var (
	// ErrInvalidConfiguration covers bad GT/G/T_i/N_i, bad secret length, or bad iteration exponent.
	ErrInvalidConfiguration = &Slip39Error{
		Code:     "INVALID_CONFIGURATION",
		Message:  "invalid share generation configuration",
		ExitCode: ExitInput,
	}

	// ErrInvalidPassphrase covers a forbidden control character or a passphrase over 1000 code points.
	ErrInvalidPassphrase = &Slip39Error{
		Code:     "INVALID_PASSPHRASE",
		Message:  "invalid passphrase",
		ExitCode: ExitInput,
	}

	// ErrInvalidShare covers bad field ranges, non-zero padding, a digest mismatch on recovery, or a short share value.
	ErrInvalidShare = &Slip39Error{
		Code:     "INVALID_SHARE",
		Message:  "invalid share",
		ExitCode: ExitInput,
	}

	// ErrInvalidChecksum is returned when RS1024 verification fails.
	ErrInvalidChecksum = &Slip39Error{
		Code:     "INVALID_CHECKSUM",
		Message:  "share checksum is invalid",
		ExitCode: ExitInput,
	}

	// ErrInvalidWord is returned when a mnemonic token is not in the wordlist.
	ErrInvalidWord = &Slip39Error{
		Code:     "INVALID_WORD",
		Message:  "word is not in the slip39 wordlist",
		ExitCode: ExitInput,
	}

	// ErrInvalidShareSet covers cross-share mismatches, wrong group counts, duplicate indices, or insufficient members.
	ErrInvalidShareSet = &Slip39Error{
		Code:     "INVALID_SHARE_SET",
		Message:  "share set is invalid",
		ExitCode: ExitInput,
	}

	// ErrDivisionByZero is a field-arithmetic misuse error that should never reach a caller of a correct Combiner.
	ErrDivisionByZero = &Slip39Error{
		Code:     "DIVISION_BY_ZERO",
		Message:  "division by zero in GF(256)",
		ExitCode: ExitGeneral,
	}

	// ErrNoInverse is a field-arithmetic misuse error for inverting zero.
	ErrNoInverse = &Slip39Error{
		Code:     "NO_INVERSE",
		Message:  "zero has no multiplicative inverse in GF(256)",
		ExitCode: ExitGeneral,
	}

	// ErrNegativeExponent is a field-arithmetic misuse error for a negative Pow exponent.
	ErrNegativeExponent = &Slip39Error{
		Code:     "NEGATIVE_EXPONENT",
		Message:  "negative exponent in GF(256)",
		ExitCode: ExitGeneral,
	}

	// ErrGeneral is the catch-all for errors with no more specific code.
	ErrGeneral = &Slip39Error{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	// Bundle-specific errors (domain-stack addition, §4.13 of SPEC_FULL.md).

	// ErrBundleCorrupted indicates a bundle's checksum does not match its encrypted payload.
	ErrBundleCorrupted = &Slip39Error{
		Code:     "BUNDLE_CORRUPTED",
		Message:  "bundle is corrupted - checksum mismatch",
		ExitCode: ExitInput,
	}

	// ErrBundleDecryptionFailed indicates the bundle password was wrong or the ciphertext was tampered with.
	ErrBundleDecryptionFailed = &Slip39Error{
		Code:     "BUNDLE_DECRYPTION_FAILED",
		Message:  "bundle decryption failed - wrong password or corrupted file",
		ExitCode: ExitInput,
	}

	// CLI-level errors (not part of the SLIP-0039 taxonomy, but needed by
	// the command surface built on top of it).

	// ErrNotFound indicates a requested resource (config path, file) does not exist.
	ErrNotFound = &Slip39Error{
		Code:     "NOT_FOUND",
		Message:  "not found",
		ExitCode: ExitInput,
	}

	// ErrUnknownConfigKey indicates a config get/set path does not name a known setting.
	ErrUnknownConfigKey = &Slip39Error{
		Code:     "UNKNOWN_CONFIG_KEY",
		Message:  "unknown configuration key",
		ExitCode: ExitInput,
	}

	// ErrInvalidFormat indicates a config value failed validation for its key.
	ErrInvalidFormat = &Slip39Error{
		Code:     "INVALID_FORMAT",
		Message:  "invalid configuration value",
		ExitCode: ExitInput,
	}
)

// New creates a new Slip39Error with the given code and message.
func New(code, message string) *Slip39Error {
	return &Slip39Error{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context, preserving its code and exit
// code when the underlying error is itself a Slip39Error.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var se *Slip39Error
	if errors.As(err, &se) {
		return &Slip39Error{
			Code:       se.Code,
			Message:    fmt.Sprintf("%s: %s", msg, se.Message),
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      err,
			ExitCode:   se.ExitCode,
		}
	}

	return &Slip39Error{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails attaches structured details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var se *Slip39Error
	if errors.As(err, &se) {
		return &Slip39Error{
			Code:       se.Code,
			Message:    se.Message,
			Details:    details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &Slip39Error{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion attaches an actionable suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var se *Slip39Error
	if errors.As(err, &se) {
		return &Slip39Error{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &Slip39Error{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the CLI exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var se *Slip39Error
	if errors.As(err, &se) {
		return se.ExitCode
	}

	return ExitGeneral
}

// Code returns the machine-readable error code for an error.
func Code(err error) string {
	var se *Slip39Error
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
