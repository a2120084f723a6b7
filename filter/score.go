package filter

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// DistanceMode selects the ranking metric used when sorting is
// enabled.
type DistanceMode int

const (
	// DistanceLevenshtein ranks by edit distance, lower is better.
	DistanceLevenshtein DistanceMode = iota
	// DistanceFuzzy ranks by positional subsequence score, higher is
	// better. Only effective together with MatchFuzzy.
	DistanceFuzzy
)

const (
	// scoreEmptyPattern is the best possible fuzzy score; an empty
	// pattern constrains nothing.
	scoreEmptyPattern = 1 << 30
	// bonusExact lifts a pattern identical to the candidate above any
	// proper subsequence match of that candidate.
	bonusExact = 1 << 20

	scoreRuneMatch = 16
	bonusAdjacent  = 8
	bonusWordStart = 10
	penaltySkipped = 1
)

// EditDistance returns the Levenshtein distance between pattern and s
// over Unicode code points.
func EditDistance(pattern, s string) int {
	return levenshtein.DistanceForStrings([]rune(pattern), []rune(s), levenshtein.DefaultOptions)
}

// FuzzyScore rates how well pattern matches s as an in-order rune
// subsequence. Higher is better. Matched runes score for adjacency to
// the previous match and for sitting at a word boundary; skipped
// runes cost a small penalty. Deterministic for identical inputs.
// Callers fold case before calling when matching case-insensitively.
func FuzzyScore(pattern, s string) int {
	pr := []rune(pattern)
	if len(pr) == 0 {
		return scoreEmptyPattern
	}
	score := 0
	if pattern == s {
		score += bonusExact
	}
	pi := 0
	prevMatched := false
	prevRune := rune(0)
	for _, r := range s {
		if pi < len(pr) && r == pr[pi] {
			score += scoreRuneMatch
			if prevMatched {
				score += bonusAdjacent
			}
			if isWordBoundary(prevRune) {
				score += bonusWordStart
			}
			pi++
			prevMatched = true
		} else {
			score -= penaltySkipped
			prevMatched = false
		}
		prevRune = r
	}
	return score
}

func isWordBoundary(prev rune) bool {
	switch prev {
	case 0, ' ', '\t', '/', '\\', '-', '_', '.', ':':
		return true
	}
	return false
}
