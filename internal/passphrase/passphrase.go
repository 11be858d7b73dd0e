// Package passphrase normalizes and validates the user-supplied passphrase
// that protects a SLIP-39 master secret, per the NFKD normalization rule
// used throughout the Feistel encryption layer.
package passphrase

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

// Default is substituted for an empty or absent passphrase before normalization.
const Default = "TREZOR"

// MaxCodepoints is the maximum normalized length, in Unicode code points.
const MaxCodepoints = 1000

// allowedWhitespace lists the whitespace control characters permitted in an
// otherwise-Control-free passphrase.
var allowedWhitespace = map[rune]bool{
	'\t': true, '\n': true, '\r': true, ' ': true,
}

// Normalize applies NFKD to raw (substituting Default when raw is empty)
// and validates the result: at most MaxCodepoints code points, and no
// Unicode Control character other than tab, newline, carriage return, and space.
func Normalize(raw string) ([]byte, error) {
	if raw == "" {
		raw = Default
	}

	normalized := norm.NFKD.String(raw)

	count := 0
	for _, r := range normalized {
		count++
		if count > MaxCodepoints {
			return nil, slip39err.WithSuggestion(
				slip39err.ErrInvalidPassphrase,
				"shorten the passphrase to at most 1000 characters",
			)
		}
		if unicode.IsControl(r) && !allowedWhitespace[r] {
			return nil, slip39err.WithDetails(
				slip39err.ErrInvalidPassphrase,
				map[string]string{"reason": "contains a disallowed control character"},
			)
		}
	}

	return []byte(normalized), nil
}
