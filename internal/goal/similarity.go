package goal

import "strings"

// Similarity scores how close two strings are as 1 - editDistance/maxLen,
// using classic Levenshtein edit distance over runes. Two identical strings
// (including two empty strings) score 1.0; strings with nothing in common
// score 0.0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes the edit distance between two rune slices using the
// two-row dynamic programming formulation.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// tokenize lowercases s and splits it on whitespace.
func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// wordDiff returns the words present in after but not before, and vice
// versa, each bounded to the first limit entries in encounter order.
func wordDiff(before, after string, limit int) (added, removed []string) {
	beforeSet := make(map[string]bool)
	for _, w := range tokenize(before) {
		beforeSet[w] = true
	}
	afterSet := make(map[string]bool)
	for _, w := range tokenize(after) {
		afterSet[w] = true
	}

	seen := make(map[string]bool)
	for _, w := range tokenize(after) {
		if !beforeSet[w] && !seen[w] && len(added) < limit {
			added = append(added, w)
			seen[w] = true
		}
	}
	seen = make(map[string]bool)
	for _, w := range tokenize(before) {
		if !afterSet[w] && !seen[w] && len(removed) < limit {
			removed = append(removed, w)
			seen[w] = true
		}
	}
	return added, removed
}
