package filter

import "strings"

type token struct {
	text  string
	runes []rune
}

// Tokens is the parsed form of one query snapshot: one entry per
// whitespace-separated word, pre-folded to lower case unless the
// query is matched case-sensitively. A Tokens value is immutable and
// safe to share across worker goroutines.
type Tokens struct {
	words         []token
	caseSensitive bool
}

// Tokenize splits query on Unicode whitespace (strings.Fields
// semantics). An empty or all-whitespace query yields zero tokens.
func Tokenize(query string, caseSensitive bool) Tokens {
	fields := strings.Fields(query)
	words := make([]token, 0, len(fields))
	for _, f := range fields {
		if !caseSensitive {
			f = strings.ToLower(f)
		}
		words = append(words, token{text: f, runes: []rune(f)})
	}
	return Tokens{words: words, caseSensitive: caseSensitive}
}

// Empty reports whether the query produced no tokens.
func (t Tokens) Empty() bool { return len(t.words) == 0 }

// Len returns the number of tokens.
func (t Tokens) Len() int { return len(t.words) }
