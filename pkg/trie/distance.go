package trie

import "github.com/bastiangx/wordtrie/pkg/alphabet"

// Distance returns the Levenshtein distance between two encoded words.
func Distance(a, b alphabet.Word) int {
	return Levenshtein(a, b)
}

// Levenshtein computes the edit distance between two sequences with unit
// costs, using two rows of the DP matrix.
func Levenshtein[T comparable](a, b []T) int {
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
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
