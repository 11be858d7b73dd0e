package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/slip39kit/slip39/internal/wordlist"
	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

// wordsCmd is the parent command for wordlist operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Work with the SLIP-39 wordlist",
	Long:  `Validate words against the SLIP-39 wordlist, or get typo-correction suggestions.`,
}

// wordsValidateCmd checks whether words are present in the wordlist.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var wordsValidateCmd = &cobra.Command{
	Use:   "validate <word>...",
	Short: "Validate one or more words against the SLIP-39 wordlist",
	Long:  `Check that each given word is a member of the fixed 1024-word SLIP-39 table.`,
	Example: `  slip39 words validate academic
  slip39 words validate academic acid acrobat`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWordsValidate,
}

// wordsSuggestCmd suggests the closest wordlist entry for a typo.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var wordsSuggestCmd = &cobra.Command{
	Use:   "suggest <word>",
	Short: "Suggest the closest SLIP-39 wordlist entry for a typo",
	Long: `Find the wordlist entry with the smallest Levenshtein distance to the
given word, useful when a transcribed share mnemonic contains a typo.`,
	Example: `  slip39 words suggest acidr`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWordsSuggest,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var wordsSuggestMaxDistance int

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(wordsCmd)
	wordsCmd.AddCommand(wordsValidateCmd)
	wordsCmd.AddCommand(wordsSuggestCmd)

	wordsSuggestCmd.Flags().IntVar(&wordsSuggestMaxDistance, "max-distance", 2, "maximum Levenshtein distance to consider a match")
}

func runWordsValidate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	var invalid []string
	for _, word := range args {
		if _, err := wordlist.IndexOf(word); err != nil {
			invalid = append(invalid, word)
		}
	}

	if len(invalid) > 0 {
		return slip39err.WithDetails(
			slip39err.ErrInvalidWord,
			map[string]string{"words": strings.Join(invalid, ", ")},
		)
	}

	outln(w, "OK: all words are valid")
	return nil
}

func runWordsSuggest(cmd *cobra.Command, args []string) error {
	word := args[0]
	w := cmd.OutOrStdout()

	if _, err := wordlist.IndexOf(word); err == nil {
		outln(w, word+" (already valid)")
		return nil
	}

	best := wordlist.SuggestWord(word, wordsSuggestMaxDistance)
	if best == "" {
		return slip39err.WithSuggestion(
			slip39err.ErrInvalidWord,
			"no wordlist entry is within the requested distance",
		)
	}

	outln(w, best)
	return nil
}
