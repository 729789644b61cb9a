package errors

import (
	"slices"
	"strings"
)

// MaxSuggestionDistance is the maximum edit distance for a suggestion to be considered.
const MaxSuggestionDistance = 3

// MaxSuggestions is the maximum number of suggestions to return.
const MaxSuggestions = 3

// Suggestion represents a suggested correction with its edit distance.
type Suggestion struct {
	Value    string
	Distance int
}

// SuggestSimilar finds candidates that are a small, case-insensitive edit
// away from target. Exact matches are skipped. Results are ordered by
// distance, then alphabetically, and capped at MaxSuggestions.
func SuggestSimilar(target string, candidates []string) []Suggestion {
	if target == "" {
		return nil
	}
	lower := strings.ToLower(target)

	// Short words tolerate fewer edits.
	threshold := MaxSuggestionDistance
	switch {
	case len(lower) <= 3:
		threshold = 1
	case len(lower) <= 5:
		threshold = 2
	}

	var out []Suggestion
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if c == "" || lc == lower {
			continue
		}
		if d := levenshtein(lower, lc); d <= threshold {
			out = append(out, Suggestion{Value: c, Distance: d})
		}
	}
	slices.SortFunc(out, func(a, b Suggestion) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return strings.Compare(a.Value, b.Value)
	})
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// FormatSuggestions formats suggestions as a user-friendly string.
// Returns empty string if no suggestions.
func FormatSuggestions(suggestions []Suggestion) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return "did you mean '" + suggestions[0].Value + "'?"
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = "'" + s.Value + "'"
	}
	return "did you mean one of: " + strings.Join(quoted, ", ") + "?"
}

// levenshtein computes the edit distance between two strings using a single
// row of the dynamic programming table.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}
	row := make([]int, len(ar)+1)
	for i := range row {
		row[i] = i
	}
	for j := 1; j <= len(br); j++ {
		diag := row[0]
		row[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			next := min(row[i]+1, row[i-1]+1, diag+cost)
			diag = row[i]
			row[i] = next
		}
	}
	return row[len(ar)]
}
