package parser

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
)

// Stemmer reduces words to their Snowball stem, e.g. "crawling" to "crawl".
// It is stateless and safe for concurrent use.
type Stemmer struct {
	language string
}

// NewStemmer returns a Stemmer for language ("english", "french", ...).
// It returns ErrUnsupportedLanguage if Snowball has no stemmer for it.
func NewStemmer(language string) (*Stemmer, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	if _, err := snowball.Stem("words", lang, true); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return &Stemmer{language: lang}, nil
}

// Language returns the normalized stemming language.
func (s *Stemmer) Language() string {
	return s.language
}

// Stem returns the stem of word. Stop words are stemmed too so that every
// word is treated the same way.
func (s *Stemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}

// StemCounts returns counts keyed by stem, adding up words that share one.
func (s *Stemmer) StemCounts(counts map[string]int) map[string]int {
	out := make(map[string]int, len(counts))
	for word, n := range counts {
		out[s.Stem(word)] += n
	}
	return out
}
