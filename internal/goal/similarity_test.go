package goal

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "abc", b: "abc", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "fully different", a: "abc", b: "xyz", want: 0.0},
		{name: "one empty", a: "abcd", b: "", want: 0.0},
		{name: "single substitution", a: "abcd", b: "abxd", want: 0.75},
		{name: "insertion", a: "abc", b: "abcd", want: 0.75},
		{name: "unicode runes", a: "héllo", b: "hello", want: 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a, b := "ship the coordination layer.", "ship the conflict layer!"
	if got, rev := Similarity(a, b), Similarity(b, a); got != rev {
		t.Errorf("Similarity not symmetric: %v vs %v", got, rev)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		if got := levenshtein([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWordDiff(t *testing.T) {
	added, removed := wordDiff("build the parser.", "build the Parser and lexer.", 10)
	// "parser." differs from "parser" only by punctuation, so both sides
	// report their own token.
	wantAdded := []string{"parser", "and", "lexer."}
	wantRemoved := []string{"parser."}
	if len(added) != len(wantAdded) {
		t.Fatalf("added = %v, want %v", added, wantAdded)
	}
	for i, w := range wantAdded {
		if added[i] != w {
			t.Errorf("added[%d] = %q, want %q", i, added[i], w)
		}
	}
	if len(removed) != 1 || removed[0] != wantRemoved[0] {
		t.Errorf("removed = %v, want %v", removed, wantRemoved)
	}
}

func TestWordDiffLimit(t *testing.T) {
	added, _ := wordDiff("", "one two three four five.", 3)
	if len(added) != 3 {
		t.Errorf("len(added) = %d, want 3", len(added))
	}
}
