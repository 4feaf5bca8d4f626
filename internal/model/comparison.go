package model

import (
	"slices"
	"time"
)

// RunSummary is the short form of a RunReport used in history listings
// and comparisons.
type RunSummary struct {
	// ID identifies the stored run.
	ID string `json:"id"`

	// StartedAt is when the crawl started.
	StartedAt time.Time `json:"started_at"`

	// Seeds are the start pages of the crawl.
	Seeds []string `json:"seeds"`

	// URLsVisited is the number of distinct URLs the crawl claimed.
	URLsVisited int `json:"urls_visited"`

	// PopularWords is the number of words in the result.
	PopularWords int `json:"popular_words"`

	// TopWord is the most popular word, empty if none was counted.
	TopWord string `json:"top_word,omitempty"`
}

// Summarize returns the summary of r.
func (r *RunReport) Summarize() RunSummary {
	s := RunSummary{
		ID:        r.ID,
		StartedAt: r.StartedAt,
		Seeds:     r.Seeds,
	}
	if r.Result != nil {
		s.URLsVisited = r.Result.URLsVisited
		s.PopularWords = len(r.Result.WordCounts)
		if len(r.Result.WordCounts) > 0 {
			s.TopWord = r.Result.WordCounts[0].Word
		}
	}
	return s
}

// WordChange describes a word that is popular in both runs.
type WordChange struct {
	Word          string `json:"word"`
	PreviousRank  int    `json:"previous_rank"`
	CurrentRank   int    `json:"current_rank"`
	PreviousCount int    `json:"previous_count"`
	CurrentCount  int    `json:"current_count"`
}

// RankDelta is positive when the word moved up the ranking.
func (c WordChange) RankDelta() int {
	return c.PreviousRank - c.CurrentRank
}

// CountDelta is the change in occurrences.
func (c WordChange) CountDelta() int {
	return c.CurrentCount - c.PreviousCount
}

// Comparison is the difference between two runs.
type Comparison struct {
	// Previous is the older run.
	Previous RunSummary `json:"previous"`

	// Current is the newer run.
	Current RunSummary `json:"current"`

	// Entered are words popular in the current run only, in current rank order.
	Entered []WordCount `json:"entered"`

	// Left are words popular in the previous run only, in previous rank order.
	Left []WordCount `json:"left"`

	// Changed are words popular in both runs, in current rank order.
	Changed []WordChange `json:"changed"`

	// VisitedDelta is the change in visited URLs.
	VisitedDelta int `json:"visited_delta"`
}

// Compare computes the difference between the popular words of two runs.
// A nil Result counts as an empty one.
func Compare(previous, current *RunReport) *Comparison {
	prev := resultOrEmpty(previous.Result)
	curr := resultOrEmpty(current.Result)

	c := &Comparison{
		Previous:     previous.Summarize(),
		Current:      current.Summarize(),
		Entered:      make([]WordCount, 0),
		Left:         make([]WordCount, 0),
		Changed:      make([]WordChange, 0),
		VisitedDelta: curr.URLsVisited - prev.URLsVisited,
	}

	prevCounts := prev.Counts()
	for i, wc := range curr.WordCounts {
		before, ok := prevCounts[wc.Word]
		if !ok {
			c.Entered = append(c.Entered, wc)
			continue
		}
		c.Changed = append(c.Changed, WordChange{
			Word:          wc.Word,
			PreviousRank:  prev.Rank(wc.Word),
			CurrentRank:   i + 1,
			PreviousCount: before,
			CurrentCount:  wc.Count,
		})
	}

	currCounts := curr.Counts()
	for _, wc := range prev.WordCounts {
		if _, ok := currCounts[wc.Word]; !ok {
			c.Left = append(c.Left, wc)
		}
	}

	return c
}

// Unchanged reports whether both runs have the same ranking and counts.
func (c *Comparison) Unchanged() bool {
	if len(c.Entered) > 0 || len(c.Left) > 0 || c.VisitedDelta != 0 {
		return false
	}
	return !slices.ContainsFunc(c.Changed, func(wc WordChange) bool {
		return wc.RankDelta() != 0 || wc.CountDelta() != 0
	})
}

func resultOrEmpty(r *CrawlResult) *CrawlResult {
	if r == nil {
		return &CrawlResult{WordCounts: []WordCount{}}
	}
	return r
}
