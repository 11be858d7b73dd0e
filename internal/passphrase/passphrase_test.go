package passphrase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

func TestEmptyPassphraseDefaultsToTrezor(t *testing.T) {
	t.Parallel()
	got, err := Normalize("")
	require.NoError(t, err)
	assert.Equal(t, []byte("TREZOR"), got)
}

func TestNormalizeNFKD(t *testing.T) {
	t.Parallel()
	// "é" as a single precomposed code point and as "e" + combining acute
	// must normalize to the same NFKD byte sequence.
	precomposed := "café"
	decomposed := "café"

	a, err := Normalize(precomposed)
	require.NoError(t, err)
	b, err := Normalize(decomposed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNormalizeRejectsTooLong(t *testing.T) {
	t.Parallel()
	_, err := Normalize(strings.Repeat("a", MaxCodepoints+1))
	require.Error(t, err)
	assert.ErrorIs(t, err, slip39err.ErrInvalidPassphrase)
}

func TestNormalizeAcceptsMaxLength(t *testing.T) {
	t.Parallel()
	_, err := Normalize(strings.Repeat("a", MaxCodepoints))
	assert.NoError(t, err)
}

func TestNormalizeAllowsWhitespace(t *testing.T) {
	t.Parallel()
	_, err := Normalize("a\tb\nc\rd e")
	assert.NoError(t, err)
}

func TestNormalizeRejectsControlCharacters(t *testing.T) {
	t.Parallel()
	_, err := Normalize("abc\x01def")
	require.Error(t, err)
	assert.ErrorIs(t, err, slip39err.ErrInvalidPassphrase)
}

func TestNormalizeAcceptsPunctuationAndSymbols(t *testing.T) {
	t.Parallel()
	_, err := Normalize("p@ss-w0rd! #$%^&*()")
	assert.NoError(t, err)
}
