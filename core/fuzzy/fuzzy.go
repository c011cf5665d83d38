// Package fuzzy implements trigram-based approximate string matching for
// catalog searches.
package fuzzy

import "sort"

// Match pairs a candidate with its similarity score against a query.
type Match[T any] struct {
	Value T
	Score float32
}

// Compare computes a bounded similarity between a and b. Each string is
// padded with two leading spaces and one trailing space and split into
// overlapping 3-rune windows; the score is the number of a's trigrams found
// in b, normalized by the trigram count of a (len(a)+1). The result is not
// symmetric: it is normalized by the length of the first argument only.
func Compare(a, b string) float32 {
	trigramsA := trigrams(a)
	trigramsB := trigrams(b)

	set := make(map[[3]rune]struct{}, len(trigramsB))
	for _, t := range trigramsB {
		set[t] = struct{}{}
	}

	var acc float32
	for _, t := range trigramsA {
		if _, ok := set[t]; ok {
			acc++
		}
	}

	res := acc / float32(len(trigramsA))
	// acc can never exceed len(trigramsA); the clamp guards float edge cases.
	if res < 0.0 || res > 1.0 {
		return 0.0
	}
	return res
}

// BestN scores every candidate's key field against term and returns the top
// n matches, best first. The sort is stable: candidates with equal scores
// keep their input order. n larger than the candidate count is harmless.
func BestN[T any](term string, candidates []T, key func(T) string, n int) []Match[T] {
	matches := make([]Match[T], 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, Match[T]{Value: c, Score: Compare(term, key(c))})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if n < 0 {
		n = 0
	}
	if n < len(matches) {
		matches = matches[:n]
	}
	return matches
}

// trigrams returns the L+1 overlapping 3-rune windows of "  " + s + " ".
func trigrams(s string) [][3]rune {
	runes := []rune(s)
	padded := make([]rune, 0, len(runes)+3)
	padded = append(padded, ' ', ' ')
	padded = append(padded, runes...)
	padded = append(padded, ' ')

	res := make([][3]rune, 0, len(runes)+1)
	for i := 0; i+3 <= len(padded); i++ {
		res = append(res, [3]rune{padded[i], padded[i+1], padded[i+2]})
	}
	return res
}
