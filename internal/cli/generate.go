package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slip39kit/slip39/internal/sigilcrypto"
	"github.com/slip39kit/slip39/internal/slip39"
	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	generateSecretHex     string
	generateRandomBits    int
	generateGroups        string
	generateGroupThresh   int
	generateIterationExp  uint8
	generateExtendable    bool
	generatePassphraseArg string
)

// generateCmd splits a master secret into SLIP-39 mnemonic shares.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Split a master secret into SLIP-39 shares",
	Long: `Split a master secret into mnemonic shares using SLIP-0039
two-level Shamir's Secret Sharing.

The secret comes from --secret-hex, or is drawn fresh from the
cryptographic RNG when --random-bits is given instead. Groups are
described as a comma-separated list of threshold:count pairs.`,
	Example: `  slip39 generate --secret-hex 00112233445566778899aabbccddeeff --groups 2:3
  slip39 generate --random-bits 256 --groups 2:3,2:2 --group-threshold 2 --extendable`,
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateSecretHex, "secret-hex", "", "master secret as a hex string")
	generateCmd.Flags().IntVar(&generateRandomBits, "random-bits", 0, "draw a fresh master secret of this bit length (128, 256, or 512)")
	generateCmd.Flags().StringVar(&generateGroups, "groups", "", "comma-separated threshold:count pairs, e.g. 2:3,1:1 (required)")
	generateCmd.Flags().IntVar(&generateGroupThresh, "group-threshold", 1, "number of groups required to recover the secret")
	generateCmd.Flags().Uint8Var(&generateIterationExp, "iteration-exponent", 0, "PBKDF2 iteration exponent (0-15)")
	generateCmd.Flags().BoolVar(&generateExtendable, "extendable", true, "allow extending the share set without invalidating existing shares")
	generateCmd.Flags().StringVar(&generatePassphraseArg, "passphrase", "", "SLIP-39 passphrase (prompted securely when omitted)")

	_ = generateCmd.MarkFlagRequired("groups")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	groups, err := parseGroupSpecs(generateGroups)
	if err != nil {
		return err
	}

	secret, err := resolveMasterSecret()
	if err != nil {
		return err
	}

	secureSecret, err := sigilcrypto.SecureBytesFromSlice(secret)
	zeroBytes(secret)
	if err != nil {
		return err
	}
	defer secureSecret.Destroy()

	passphrase, err := resolveGeneratePassphrase()
	if err != nil {
		return err
	}

	result, err := slip39.Generate(slip39.GenerateParams{
		GroupThreshold:    generateGroupThresh,
		Groups:            groups,
		MasterSecret:      secureSecret.Bytes(),
		Passphrase:        passphrase,
		IterationExponent: generateIterationExp,
		Extendable:        generateExtendable,
		Random:            sigilcrypto.Reader,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for gi, group := range result {
		outln(w, fmt.Sprintf("Group %d:", gi))
		for _, m := range group.Mnemonics {
			outln(w, "  "+m)
		}
	}

	return nil
}

func resolveMasterSecret() ([]byte, error) {
	if generateSecretHex != "" {
		secret, err := hex.DecodeString(strings.TrimSpace(generateSecretHex))
		if err != nil {
			return nil, slip39err.WithDetails(
				slip39err.ErrInvalidConfiguration,
				map[string]string{"reason": "secret-hex is not valid hex"},
			)
		}
		return secret, nil
	}

	if generateRandomBits > 0 {
		if generateRandomBits%8 != 0 {
			return nil, slip39err.WithDetails(
				slip39err.ErrInvalidConfiguration,
				map[string]string{"reason": "random-bits must be a multiple of 8"},
			)
		}
		return sigilcrypto.RandomBytes(generateRandomBits / 8)
	}

	return nil, slip39err.WithSuggestion(
		slip39err.ErrInvalidConfiguration,
		"one of --secret-hex or --random-bits is required",
	)
}

func resolveGeneratePassphrase() (string, error) {
	if generatePassphraseArg != "" {
		return generatePassphraseArg, nil
	}

	passphrase, err := promptPassphraseFn()
	if err != nil {
		return "", err
	}
	return passphrase, nil
}

// parseGroupSpecs parses a "T:N,T:N,..." string into GroupSpecs.
func parseGroupSpecs(spec string) ([]slip39.GroupSpec, error) {
	if spec == "" {
		return nil, slip39err.WithSuggestion(
			slip39err.ErrInvalidConfiguration,
			"--groups is required, e.g. --groups 2:3",
		)
	}

	parts := strings.Split(spec, ",")
	groups := make([]slip39.GroupSpec, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		tn := strings.SplitN(part, ":", 2)
		if len(tn) != 2 {
			return nil, slip39err.WithDetails(
				slip39err.ErrInvalidConfiguration,
				map[string]string{"reason": "each group must be threshold:count", "value": part},
			)
		}

		threshold, err := strconv.Atoi(strings.TrimSpace(tn[0]))
		if err != nil {
			return nil, slip39err.WithDetails(
				slip39err.ErrInvalidConfiguration,
				map[string]string{"reason": "threshold is not an integer", "value": tn[0]},
			)
		}
		count, err := strconv.Atoi(strings.TrimSpace(tn[1]))
		if err != nil {
			return nil, slip39err.WithDetails(
				slip39err.ErrInvalidConfiguration,
				map[string]string{"reason": "count is not an integer", "value": tn[1]},
			)
		}

		groups = append(groups, slip39.GroupSpec{Threshold: threshold, Count: count})
	}

	return groups, nil
}
