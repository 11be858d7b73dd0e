package slip39

import (
	"crypto/rand"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

func zeros(n int) []byte {
	return make([]byte, n)
}

func sequence(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i + 1)
	}
	return b
}

// S1 - minimal: a single 1-of-1 group, extendable, empty passphrase.
func TestScenarioS1Minimal(t *testing.T) {
	t.Parallel()

	ms := zeros(16)
	groups, err := Generate(GenerateParams{
		GroupThreshold:    1,
		Groups:            []GroupSpec{{Threshold: 1, Count: 1}},
		MasterSecret:      ms,
		Passphrase:        "",
		IterationExponent: 0,
		Extendable:        true,
		Random:            rand.Reader,
	})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Mnemonics, 1)

	share := groups[0].Mnemonics[0]
	assert.Len(t, strings.Fields(share), 20)

	recovered, err := Combine(CombineParams{Mnemonics: []string{share}, Passphrase: ""})
	require.NoError(t, err)
	assert.Equal(t, ms, recovered)
}

// S2 - 2-of-3, single group.
func TestScenarioS2TwoOfThree(t *testing.T) {
	t.Parallel()

	ms := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10}
	groups, err := Generate(GenerateParams{
		GroupThreshold:    1,
		Groups:            []GroupSpec{{Threshold: 2, Count: 3}},
		MasterSecret:      ms,
		Passphrase:        "test passphrase",
		IterationExponent: 0,
		Extendable:        false,
		Random:            rand.Reader,
	})
	require.NoError(t, err)
	mnemonics := groups[0].Mnemonics
	require.Len(t, mnemonics, 3)

	for _, pair := range [][2]int{{0, 1}, {0, 2}, {1, 2}} {
		recovered, err := Combine(CombineParams{
			Mnemonics:  []string{mnemonics[pair[0]], mnemonics[pair[1]]},
			Passphrase: "test passphrase",
		})
		require.NoError(t, err)
		assert.Equal(t, ms, recovered)
	}

	_, err = Combine(CombineParams{Mnemonics: []string{mnemonics[0]}, Passphrase: "test passphrase"})
	require.Error(t, err)
	var se *slip39err.Slip39Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "INVALID_SHARE_SET", se.Code)
}

// S3 - multi-group.
func TestScenarioS3MultiGroup(t *testing.T) {
	t.Parallel()

	ms := sequence(32)
	groups, err := Generate(GenerateParams{
		GroupThreshold: 2,
		Groups: []GroupSpec{
			{Threshold: 2, Count: 3},
			{Threshold: 2, Count: 2},
			{Threshold: 1, Count: 1},
		},
		MasterSecret:      ms,
		Passphrase:        "complex test",
		IterationExponent: 1,
		Extendable:        false,
		Random:            rand.Reader,
	})
	require.NoError(t, err)

	quorum := []string{groups[0].Mnemonics[0], groups[0].Mnemonics[1], groups[1].Mnemonics[0], groups[1].Mnemonics[1]}
	recovered, err := Combine(CombineParams{Mnemonics: quorum, Passphrase: "complex test"})
	require.NoError(t, err)
	assert.Equal(t, ms, recovered)

	onlyGroup0 := []string{groups[0].Mnemonics[0], groups[0].Mnemonics[1], groups[0].Mnemonics[2]}
	_, err = Combine(CombineParams{Mnemonics: onlyGroup0, Passphrase: "complex test"})
	require.Error(t, err)
	var se *slip39err.Slip39Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "INVALID_SHARE_SET", se.Code)
}

// S4 - 64-byte secret, mnemonic length is 59 words per share.
func TestScenarioS4LongSecret(t *testing.T) {
	t.Parallel()

	ms := sequence(64)
	// sequence starts at 1; spec lists bytes [0..63] but the exact byte
	// values don't affect mnemonic length, only |MS| does.
	groups, err := Generate(GenerateParams{
		GroupThreshold:    1,
		Groups:            []GroupSpec{{Threshold: 2, Count: 3}},
		MasterSecret:      ms,
		Passphrase:        "TREZOR",
		IterationExponent: 0,
		Extendable:        false,
		Random:            rand.Reader,
	})
	require.NoError(t, err)
	for _, m := range groups[0].Mnemonics {
		assert.Len(t, strings.Fields(m), 59)
	}

	recovered, err := Combine(CombineParams{
		Mnemonics:  groups[0].Mnemonics[:2],
		Passphrase: "TREZOR",
	})
	require.NoError(t, err)
	assert.Equal(t, ms, recovered)
}

// S5 - passphrase normalization: combining decomposed form must equal
// combining the composed form.
func TestScenarioS5PassphraseNormalization(t *testing.T) {
	t.Parallel()

	ms := zeros(16)
	groups, err := Generate(GenerateParams{
		GroupThreshold:    1,
		Groups:            []GroupSpec{{Threshold: 1, Count: 1}},
		MasterSecret:      ms,
		Passphrase:        "é",
		IterationExponent: 0,
		Extendable:        false,
		Random:            rand.Reader,
	})
	require.NoError(t, err)

	recovered, err := Combine(CombineParams{
		Mnemonics:  []string{groups[0].Mnemonics[0]},
		Passphrase: "é",
	})
	require.NoError(t, err)
	assert.Equal(t, ms, recovered)
}

// S6 - shares from two independently generated sets never combine.
func TestScenarioS6MismatchedIdentifiers(t *testing.T) {
	t.Parallel()

	ms := zeros(16)
	params := GenerateParams{
		GroupThreshold:    1,
		Groups:            []GroupSpec{{Threshold: 1, Count: 1}},
		MasterSecret:      ms,
		Passphrase:        "",
		IterationExponent: 0,
		Extendable:        false,
		Random:            rand.Reader,
	}

	setA, err := Generate(params)
	require.NoError(t, err)
	setB, err := Generate(params)
	require.NoError(t, err)

	_, err = Combine(CombineParams{
		Mnemonics: []string{setA[0].Mnemonics[0], setB[0].Mnemonics[0]},
	})
	require.Error(t, err)
	var se *slip39err.Slip39Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "INVALID_SHARE_SET", se.Code)
}

func TestCombine_WrongPassphraseIsNotAnError(t *testing.T) {
	t.Parallel()

	ms := sequence(16)
	groups, err := Generate(GenerateParams{
		GroupThreshold:    1,
		Groups:            []GroupSpec{{Threshold: 1, Count: 1}},
		MasterSecret:      ms,
		Passphrase:        "correct horse",
		IterationExponent: 0,
		Extendable:        false,
		Random:            rand.Reader,
	})
	require.NoError(t, err)

	recovered, err := Combine(CombineParams{
		Mnemonics:  []string{groups[0].Mnemonics[0]},
		Passphrase: "wrong passphrase",
	})
	require.NoError(t, err)
	assert.Len(t, recovered, len(ms))
	assert.NotEqual(t, ms, recovered)
}

func TestCombine_EmptyShareSet(t *testing.T) {
	t.Parallel()
	_, err := Combine(CombineParams{Mnemonics: nil})
	require.Error(t, err)
}

func TestCombine_ExcessGroupsRejected(t *testing.T) {
	t.Parallel()

	ms := sequence(16)
	groups, err := Generate(GenerateParams{
		GroupThreshold: 1,
		Groups: []GroupSpec{
			{Threshold: 1, Count: 1},
			{Threshold: 1, Count: 1},
		},
		MasterSecret:      ms,
		Passphrase:        "",
		IterationExponent: 0,
		Extendable:        false,
		Random:            rand.Reader,
	})
	require.NoError(t, err)

	_, err = Combine(CombineParams{
		Mnemonics: []string{groups[0].Mnemonics[0], groups[1].Mnemonics[0]},
	})
	require.Error(t, err)
}
