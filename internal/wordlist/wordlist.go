package wordlist

import (
	"strconv"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

// Size is the number of words in the table.
const Size = 1024

//nolint:gochecknoglobals // built once from the constant words table
var (
	indexOf     map[string]int
	indexOfOnce sync.Once
)

func buildIndex() {
	indexOfOnce.Do(func() {
		indexOf = make(map[string]int, Size)
		for i, w := range words {
			indexOf[w] = i
		}
	})
}

// Word returns the word at index i. i must be in [0, 1024).
func Word(i int) (string, error) {
	if i < 0 || i >= Size {
		return "", slip39err.WithDetails(slip39err.ErrInvalidWord,
			map[string]string{"index": strconv.Itoa(i)})
	}
	return words[i], nil
}

// IndexOf returns the index of word (case-insensitive). Returns InvalidWord
// when word is not in the table.
func IndexOf(word string) (int, error) {
	buildIndex()
	idx, ok := indexOf[strings.ToLower(word)]
	if !ok {
		return 0, slip39err.WithSuggestion(
			slip39err.ErrInvalidWord,
			suggestionHint(word),
		)
	}
	return idx, nil
}

func suggestionHint(word string) string {
	if best := SuggestWord(word, 2); best != "" {
		return "did you mean \"" + best + "\"?"
	}
	return "word is not part of the wordlist"
}

// WordsToIndices converts a sequence of words into their table indices, in order.
func WordsToIndices(tokens []string) ([]int, error) {
	out := make([]int, len(tokens))
	for i, t := range tokens {
		idx, err := IndexOf(t)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// IndicesToWords converts a sequence of table indices into their words, in order.
func IndicesToWords(indices []int) ([]string, error) {
	out := make([]string, len(indices))
	for i, idx := range indices {
		w, err := Word(idx)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

// SuggestWord returns the closest word in the table to input within
// maxDistance Levenshtein edits, or "" if none qualifies. Ties break toward
// the lexicographically smaller word.
func SuggestWord(input string, maxDistance int) string {
	input = strings.ToLower(input)
	best := ""
	bestDist := maxDistance + 1

	for _, w := range words {
		d := levenshtein.ComputeDistance(input, w)
		if d < bestDist || (d == bestDist && w < best) {
			bestDist = d
			best = w
		}
	}

	if bestDist > maxDistance {
		return ""
	}
	return best
}

// DetectTypos scans tokens and returns, for each token not found verbatim in
// the table, its index and the closest suggestion (empty if none is close
// enough). Tokens that are already valid words are omitted from the result.
func DetectTypos(tokens []string, maxDistance int) map[int]string {
	buildIndex()
	out := make(map[int]string)
	for i, t := range tokens {
		if _, ok := indexOf[strings.ToLower(t)]; ok {
			continue
		}
		out[i] = SuggestWord(t, maxDistance)
	}
	return out
}
