package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slip39kit/slip39/internal/bundle"
	"github.com/slip39kit/slip39/internal/fileutil"
	"github.com/slip39kit/slip39/internal/mnemonic"
	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	bundleExportOut   string
	bundleExportFile  string
	bundleImportIn    string
)

// bundleCmd is the parent command for encrypted share-set bundles.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Export or import encrypted share-set bundles",
	Long: `Package a SLIP-39 share set into a password-encrypted, checksummed
bundle file for at-rest storage, or restore the share set from one.`,
}

// bundleExportCmd writes mnemonics to an encrypted bundle file.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var bundleExportCmd = &cobra.Command{
	Use:   "export [mnemonics...]",
	Short: "Export shares into an encrypted bundle file",
	Long: `Read mnemonics from --shares-file or positional arguments, encrypt them
under a bundle password, and write the result to --out.`,
	Example: `  slip39 bundle export --shares-file shares.txt --out backup.slip39bundle`,
	RunE:    runBundleExport,
}

// bundleImportCmd reads mnemonics back out of an encrypted bundle file.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var bundleImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import shares from an encrypted bundle file",
	Long:  `Decrypt a bundle file and print its share mnemonics.`,
	Example: `  slip39 bundle import --in backup.slip39bundle`,
	RunE: runBundleImport,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(bundleCmd)
	bundleCmd.AddCommand(bundleExportCmd)
	bundleCmd.AddCommand(bundleImportCmd)

	bundleExportCmd.Flags().StringVar(&bundleExportFile, "shares-file", "", "path to a file with one mnemonic per line")
	bundleExportCmd.Flags().StringVar(&bundleExportOut, "out", "", "output bundle file path (required)")
	_ = bundleExportCmd.MarkFlagRequired("out")

	bundleImportCmd.Flags().StringVar(&bundleImportIn, "in", "", "input bundle file path (required)")
	_ = bundleImportCmd.MarkFlagRequired("in")
}

func runBundleExport(cmd *cobra.Command, args []string) error {
	var mnemonics []string
	var err error
	if bundleExportFile != "" {
		mnemonics, err = readShareFile(bundleExportFile)
	} else if len(args) > 0 {
		mnemonics = args
	} else {
		return slip39err.WithSuggestion(
			slip39err.ErrInvalidShareSet,
			"one of --shares-file or positional mnemonic arguments is required",
		)
	}
	if err != nil {
		return err
	}

	manifest, err := manifestFromMnemonics(mnemonics)
	if err != nil {
		return err
	}

	password, err := promptNewPasswordFn()
	if err != nil {
		return err
	}
	defer zeroBytes(password)

	b, err := bundle.Export(mnemonics, manifest, string(password))
	if err != nil {
		return err
	}

	data, err := json.Marshal(b)
	if err != nil {
		return err
	}

	if err := fileutil.WriteAtomic(bundleExportOut, data, 0o600); err != nil {
		return err
	}

	outln(cmd.OutOrStdout(), "Bundle written to "+bundleExportOut)
	return nil
}

func runBundleImport(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(bundleImportIn) //nolint:gosec // user-supplied path is the explicit purpose of this flag
	if err != nil {
		return slip39err.WithDetails(
			slip39err.ErrNotFound,
			map[string]string{"path": bundleImportIn, "reason": err.Error()},
		)
	}

	var b bundle.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return slip39err.WithDetails(
			slip39err.ErrGeneral,
			map[string]string{"reason": "bundle file is not valid JSON"},
		)
	}

	password, err := promptPasswordFn("Enter bundle password: ")
	if err != nil {
		return err
	}
	defer zeroBytes(password)

	mnemonics, _, err := bundle.Import(&b, string(password))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	outln(w, strings.Join(mnemonics, "\n"))
	return nil
}

// manifestFromMnemonics decodes the first mnemonic to derive bundle header
// metadata, mirroring how a single share's fields describe the whole set.
func manifestFromMnemonics(mnemonics []string) (bundle.Manifest, error) {
	s, err := mnemonic.Decode(mnemonics[0])
	if err != nil {
		return bundle.Manifest{}, err
	}
	return bundle.ManifestFromShare(s), nil
}
