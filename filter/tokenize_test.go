package filter

import "testing"

func TestTokenize(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		caseSensitive bool
		want          []string
	}{
		{
			name:  "empty query",
			query: "",
			want:  []string{},
		},
		{
			name:  "whitespace only",
			query: "   \t ",
			want:  []string{},
		},
		{
			name:  "single word folded",
			query: "Firefox",
			want:  []string{"firefox"},
		},
		{
			name:          "case sensitive keeps case",
			query:         "FireFox",
			caseSensitive: true,
			want:          []string{"FireFox"},
		},
		{
			name:  "multiple words with extra spaces",
			query: "  web   Browser ",
			want:  []string{"web", "browser"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.query, tt.caseSensitive)
			if tokens.Len() != len(tt.want) {
				t.Fatalf("expected %d tokens, got %d", len(tt.want), tokens.Len())
			}
			for i, w := range tokens.words {
				if w.text != tt.want[i] {
					t.Errorf("token %d: expected %q, got %q", i, tt.want[i], w.text)
				}
			}
			if tokens.Empty() != (len(tt.want) == 0) {
				t.Errorf("Empty() = %v for %d tokens", tokens.Empty(), len(tt.want))
			}
		})
	}
}
