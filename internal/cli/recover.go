package cli

import (
	"bufio"
	"encoding/hex"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slip39kit/slip39/internal/sigilcrypto"
	"github.com/slip39kit/slip39/internal/slip39"
	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	recoverSharesFile     string
	recoverPassphraseArg  string
	recoverDryRun         bool
	recoverHex            bool
)

// recoverCmd reconstructs a master secret from a quorum of SLIP-39 shares.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var recoverCmd = &cobra.Command{
	Use:   "recover [mnemonics...]",
	Short: "Recover a master secret from SLIP-39 shares",
	Long: `Recover a master secret from a sufficient quorum of SLIP-39 mnemonic
shares, read from --shares-file, positional arguments (one mnemonic per
argument, quoted), or interactively from stdin when neither is given.`,
	Example: `  slip39 recover --shares-file shares.txt
  slip39 recover "academic acid acrobat ..." "academic acid beard ..."
  slip39 recover --shares-file shares.txt --dry-run`,
	RunE: runRecover,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(recoverCmd)

	recoverCmd.Flags().StringVar(&recoverSharesFile, "shares-file", "", "path to a file with one mnemonic per line")
	recoverCmd.Flags().StringVar(&recoverPassphraseArg, "passphrase", "", "SLIP-39 passphrase (prompted securely when omitted)")
	recoverCmd.Flags().BoolVar(&recoverDryRun, "dry-run", false, "validate quorum and digest without printing the recovered secret")
	recoverCmd.Flags().BoolVar(&recoverHex, "hex", false, "print the recovered secret as hex instead of raw bytes")
}

func runRecover(cmd *cobra.Command, args []string) error {
	mnemonics, err := collectShareMnemonics(cmd, args)
	if err != nil {
		return err
	}

	passphrase, err := resolveRecoverPassphrase()
	if err != nil {
		return err
	}

	secret, err := slip39.Combine(slip39.CombineParams{
		Mnemonics:  mnemonics,
		Passphrase: passphrase,
	})
	if err != nil {
		return err
	}

	secureSecret, err := sigilcrypto.SecureBytesFromSlice(secret)
	zeroBytes(secret)
	if err != nil {
		return err
	}
	defer secureSecret.Destroy()

	w := cmd.OutOrStdout()
	if recoverDryRun {
		outln(w, "OK: quorum satisfied, share set validates")
		return nil
	}

	if recoverHex {
		outln(w, hex.EncodeToString(secureSecret.Bytes()))
		return nil
	}

	_, werr := w.Write(secureSecret.Bytes())
	return werr
}

// collectShareMnemonics gathers mnemonics from --shares-file, positional
// arguments, or interactive stdin entry, in that order of precedence.
func collectShareMnemonics(cmd *cobra.Command, args []string) ([]string, error) {
	if recoverSharesFile != "" {
		return readShareFile(recoverSharesFile)
	}

	if len(args) > 0 {
		return args, nil
	}

	return readSharesInteractive(cmd)
}

func readShareFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied path is the explicit purpose of this flag
	if err != nil {
		return nil, slip39err.WithDetails(
			slip39err.ErrNotFound,
			map[string]string{"path": path, "reason": err.Error()},
		)
	}

	var mnemonics []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			mnemonics = append(mnemonics, line)
		}
	}

	if len(mnemonics) == 0 {
		return nil, slip39err.WithDetails(
			slip39err.ErrInvalidShareSet,
			map[string]string{"reason": "shares file contains no mnemonics", "path": path},
		)
	}

	return mnemonics, nil
}

func readSharesInteractive(cmd *cobra.Command) ([]string, error) {
	w := cmd.OutOrStdout()
	outln(w, "Enter share mnemonics one per line. Submit an empty line when done.")

	r := bufio.NewReader(cmd.InOrStdin())
	var mnemonics []string
	for {
		line, err := promptShareMnemonicFn(r, "Share")
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		mnemonics = append(mnemonics, line)
	}

	if len(mnemonics) == 0 {
		return nil, slip39err.WithSuggestion(
			slip39err.ErrInvalidShareSet,
			"no shares were entered",
		)
	}

	return mnemonics, nil
}

func resolveRecoverPassphrase() (string, error) {
	if recoverPassphraseArg != "" {
		return recoverPassphraseArg, nil
	}
	return promptPassphraseFn()
}
