package model

import (
	"cmp"
	"slices"
)

// WordCount is a single word and the number of times it occurred.
type WordCount struct {
	// Word is the normalized word.
	Word string `json:"word"`

	// Count is the total number of occurrences across all visited pages.
	Count int `json:"count"`
}

// compareWordCounts orders by count descending, then by word ascending.
func compareWordCounts(a, b WordCount) int {
	if c := cmp.Compare(b.Count, a.Count); c != 0 {
		return c
	}
	return cmp.Compare(a.Word, b.Word)
}

// TopWords returns the n most popular words in counts.
//
// Words are ordered by count descending. Words with the same count are
// ordered lexicographically so the result does not depend on map iteration
// order. If n exceeds the number of distinct words all words are returned,
// and if n <= 0 or counts is empty the result is an empty, non-nil slice.
//
// Design decision: We sort the full slice rather than keeping a bounded heap
// because:
//  1. It runs once per crawl, after all pages have been merged
//  2. The vocabulary of a crawl is small compared to the fetch cost
//  3. A full sort keeps the tie-break rule in one comparison function
func TopWords(counts map[string]int, n int) []WordCount {
	if n <= 0 || len(counts) == 0 {
		return []WordCount{}
	}

	all := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		all = append(all, WordCount{Word: word, Count: count})
	}
	slices.SortFunc(all, compareWordCounts)

	if n < len(all) {
		all = all[:n]
	}
	return slices.Clip(all)
}
