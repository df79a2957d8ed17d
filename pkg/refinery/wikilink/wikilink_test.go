package wikilink

import (
	"testing"
)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want []string
	}{
		{
			name: "plain list",
			csv:  "neural network, backpropagation, gradient descent",
			want: []string{"neural network", "backpropagation", "gradient descent"},
		},
		{
			name: "drops empties and short fragments",
			csv:  "ai, , machine learning,, ml",
			want: []string{"machine learning"},
		},
		{
			name: "length measured in runes",
			csv:  "ён, нейросеть",
			want: []string{"нейросеть"},
		},
		{
			name: "empty response",
			csv:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKeywords(tt.csv)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseKeywords() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("keyword[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAddLinks(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     string
	}{
		{
			name:     "single keyword",
			text:     "A transformer rearranges attention.",
			keywords: []string{"transformer"},
			want:     "A [[transformer]] rearranges attention.",
		},
		{
			name:     "longer keyword wins over its substring",
			text:     "A neural network is a network of neurons.",
			keywords: []string{"network", "neural network"},
			want:     "A [[neural network]] is a [[network]] of neurons.",
		},
		{
			name:     "case insensitive, whole word only",
			text:     "Networking uses a Network, not networks.",
			keywords: []string{"network"},
			want:     "Networking uses a [[Network]], not networks.",
		},
		{
			name:     "existing links are left alone",
			text:     "See [[neural network]] for the neural network basics.",
			keywords: []string{"neural network"},
			want:     "See [[neural network]] for the [[neural network]] basics.",
		},
		{
			name:     "no keywords",
			text:     "Nothing changes here.",
			keywords: nil,
			want:     "Nothing changes here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddLinks(tt.text, tt.keywords)
			if got != tt.want {
				t.Errorf("AddLinks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddLinksIdempotent(t *testing.T) {
	keywords := []string{"entropy", "information theory"}
	text := "Entropy is central to information theory; high entropy means surprise."

	once := AddLinks(text, keywords)
	twice := AddLinks(once, keywords)
	if once != twice {
		t.Errorf("second pass changed the text:\nonce:  %q\ntwice: %q", once, twice)
	}
}
