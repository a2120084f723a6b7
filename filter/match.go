package filter

import (
	"strings"
	"unicode/utf8"
)

// MatchMode selects the per-token predicate.
type MatchMode int

const (
	// MatchSubstring requires every token to appear verbatim.
	MatchSubstring MatchMode = iota
	// MatchFuzzy requires every token to appear as an in-order rune
	// subsequence.
	MatchFuzzy
)

// Match reports whether every token matches s under the given mode.
// Candidates that are not valid UTF-8 never match. Safe to call
// concurrently; s is the only per-call input.
func (t Tokens) Match(s string, mode MatchMode) bool {
	if !utf8.ValidString(s) {
		return false
	}
	if !t.caseSensitive {
		s = strings.ToLower(s)
	}
	for _, w := range t.words {
		if mode == MatchFuzzy {
			if !subsequenceMatch(w.runes, s) {
				return false
			}
			continue
		}
		if !strings.Contains(s, w.text) {
			return false
		}
	}
	return true
}

func subsequenceMatch(pattern []rune, s string) bool {
	if len(pattern) == 0 {
		return true
	}
	i := 0
	for _, r := range s {
		if r == pattern[i] {
			i++
			if i == len(pattern) {
				return true
			}
		}
	}
	return false
}
