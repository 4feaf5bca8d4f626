package model

// PageResult is what a page parser extracts from a single URL.
type PageResult struct {
	// WordCounts maps each word on the page to its number of occurrences.
	WordCounts map[string]int

	// Links contains the absolute URLs the page links to, in document order.
	// Duplicates are allowed; the crawler deduplicates through its visited set.
	Links []string
}

// NewPageResult returns an empty PageResult.
func NewPageResult() *PageResult {
	return &PageResult{
		WordCounts: make(map[string]int),
		Links:      make([]string, 0),
	}
}
