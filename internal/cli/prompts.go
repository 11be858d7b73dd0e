package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

// out writes a formatted message to w without a trailing newline.
func out(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

// outln writes a message to w followed by a newline.
func outln(w io.Writer, args ...any) {
	fmt.Fprintln(w, args...)
}

// promptPassword prompts for a password with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassword(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	password, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}

// zeroBytes overwrites b with zeros in place.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// promptNewPassword prompts for a new bundle password with confirmation.
// The caller is responsible for zeroing the returned bytes after use.
func promptNewPassword() ([]byte, error) {
	password, err := promptPassword("Enter bundle password: ")
	if err != nil {
		return nil, err
	}

	if len(password) < 8 {
		zeroBytes(password)
		return nil, slip39err.WithSuggestion(
			slip39err.ErrInvalidConfiguration,
			"bundle password must be at least 8 characters",
		)
	}

	confirm, err := promptPassword("Confirm bundle password: ")
	if err != nil {
		zeroBytes(password)
		return nil, err
	}
	defer zeroBytes(confirm)

	if string(password) != string(confirm) {
		zeroBytes(password)
		return nil, slip39err.WithSuggestion(
			slip39err.ErrInvalidConfiguration,
			"passwords do not match",
		)
	}

	return password, nil
}

// promptPassphrase prompts for an optional SLIP-39 passphrase with confirmation.
func promptPassphrase() (string, error) {
	outln(os.Stderr, "\nSLIP-39 passphrase (optional extra security layer):")
	outln(os.Stderr, "WARNING: if you lose this passphrase, the shares alone cannot recover the secret!")

	passphrase, err := promptPassword("Enter passphrase: ")
	if err != nil {
		return "", err
	}

	if len(passphrase) == 0 {
		return "", nil
	}

	confirm, err := promptPassword("Confirm passphrase: ")
	if err != nil {
		zeroBytes(passphrase)
		return "", err
	}
	defer zeroBytes(confirm)

	if string(passphrase) != string(confirm) {
		zeroBytes(passphrase)
		return "", slip39err.WithSuggestion(
			slip39err.ErrInvalidPassphrase,
			"passphrases do not match",
		)
	}

	result := string(passphrase)
	zeroBytes(passphrase)
	return result, nil
}

// promptConfirmation asks the user to confirm a sensitive action.
func promptConfirmation(question string) bool {
	out(os.Stderr, "%s [y/N]: ", question)

	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// promptShareMnemonic reads a single share mnemonic line from r, trimming
// surrounding whitespace. Used by recover's interactive share entry.
func promptShareMnemonic(r *bufio.Reader, label string) (string, error) {
	out(os.Stderr, "%s: ", label)

	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading share mnemonic: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// Function variables indirecting to the prompt implementations above, so
// commands can be exercised in tests without a real terminal.
//
//nolint:gochecknoglobals // indirection point for test doubles
var (
	promptPasswordFn       = promptPassword
	promptNewPasswordFn    = promptNewPassword
	promptPassphraseFn     = promptPassphrase
	promptConfirmFn        = promptConfirmation
	promptShareMnemonicFn  = promptShareMnemonic
)
