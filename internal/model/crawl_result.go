package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// CrawlResult is the outcome of one crawl.
//
// Design decision: WordCounts is a slice rather than a map because:
//  1. The popular words are ranked, and Go maps have no order
//  2. Report writers render the ranking as-is
//  3. The JSON form still is an object, written in rank order
type CrawlResult struct {
	// WordCounts contains the most popular words, most frequent first.
	WordCounts []WordCount

	// URLsVisited is the number of distinct URLs the crawler claimed.
	URLsVisited int

	// DeadlineReached reports whether the time budget cut the crawl short,
	// i.e. at least one task was dropped because of the deadline.
	// It is not part of the JSON form.
	DeadlineReached bool
}

// NewCrawlResult builds a result from the final word counts.
// The popular words are selected with TopWords.
func NewCrawlResult(counts map[string]int, popularWordCount, urlsVisited int) *CrawlResult {
	return &CrawlResult{
		WordCounts:  TopWords(counts, popularWordCount),
		URLsVisited: urlsVisited,
	}
}

// Counts returns the popular words as a map.
func (r *CrawlResult) Counts() map[string]int {
	out := make(map[string]int, len(r.WordCounts))
	for _, wc := range r.WordCounts {
		out[wc.Word] = wc.Count
	}
	return out
}

// Rank returns the 1-based rank of word, or 0 if it is not a popular word.
func (r *CrawlResult) Rank(word string) int {
	for i, wc := range r.WordCounts {
		if wc.Word == word {
			return i + 1
		}
	}
	return 0
}

// MarshalJSON writes the result as
// {"wordCounts":{"word":count,...},"urlsVisited":n} keeping the rank order.
func (r CrawlResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"wordCounts":{`)
	for i, wc := range r.WordCounts {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(wc.Word)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(wc.Count))
	}
	buf.WriteString(`},"urlsVisited":`)
	buf.WriteString(strconv.Itoa(r.URLsVisited))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the format written by MarshalJSON, preserving the
// order of the wordCounts object.
func (r *CrawlResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		WordCounts  json.RawMessage `json:"wordCounts"`
		URLsVisited int             `json:"urlsVisited"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.URLsVisited = raw.URLsVisited
	r.WordCounts = make([]WordCount, 0)
	if len(raw.WordCounts) == 0 || string(raw.WordCounts) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw.WordCounts))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("wordCounts must be a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		word, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected wordCounts key %v", keyTok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("invalid count for %q: %w", word, err)
		}
		r.WordCounts = append(r.WordCounts, WordCount{Word: word, Count: count})
	}
	_, err = dec.Token()
	return err
}
