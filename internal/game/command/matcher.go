package command

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SimilarityThreshold is the minimum normalized similarity for a fuzzy match.
const SimilarityThreshold = 0.70

// maxEditDistance caps the absolute edit distance for a fuzzy match,
// independent of token length.
const maxEditDistance = 3

// Similarity returns the normalized Levenshtein similarity of two strings
// in [0, 1], where 1 means equal. Comparison is case-insensitive.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// editBudget returns the edit distance tolerated for a token of the given
// length. Short tokens get a tighter budget so one- and two-letter inputs
// cannot drift onto unrelated commands.
func editBudget(tokenLen int) int {
	budget := tokenLen / 2
	if budget > maxEditDistance {
		budget = maxEditDistance
	}
	return budget
}

// Match resolves a raw lowercased token to a command, tolerating typos.
// Exact names and aliases win outright; otherwise the vocabulary is scanned
// for the best candidate with similarity ≥ SimilarityThreshold within the
// token's edit budget. Ties keep the earliest declared command. Admin-only
// commands never fuzzy-match for non-admin callers.
//
// Postcondition: Returns (command, true) on a match, or (nil, false).
func (r *Registry) Match(token string, admin bool) (*Command, bool) {
	if cmd, ok := r.Resolve(token); ok {
		if cmd.Admin && !admin {
			return nil, false
		}
		return cmd, true
	}

	budget := editBudget(len([]rune(token)))
	if budget == 0 {
		return nil, false
	}

	var best *Command
	bestScore := 0.0
	for _, cmd := range r.ordered {
		if cmd.Admin && !admin {
			continue
		}
		dist := levenshtein.ComputeDistance(token, cmd.Name)
		if dist > budget {
			continue
		}
		score := Similarity(token, cmd.Name)
		if score >= SimilarityThreshold && score > bestScore {
			best = cmd
			bestScore = score
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// BestName returns the name from candidates most similar to input, provided
// it clears the similarity threshold. Used to resolve human-typed player
// names with the same tolerance as command matching.
//
// Postcondition: Returns (index, true) of the best candidate, or (-1, false).
func BestName(input string, candidates []string) (int, bool) {
	input = strings.ToLower(input)

	// Exact (case-insensitive) match wins before any scoring.
	for i, c := range candidates {
		if strings.ToLower(c) == input {
			return i, true
		}
	}

	bestIdx := -1
	bestScore := 0.0
	for i, c := range candidates {
		score := Similarity(input, c)
		if score >= SimilarityThreshold && score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	if bestIdx < 0 {
		return -1, false
	}
	return bestIdx, true
}
