package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/wordcrawl/internal/config"
)

// Tokenize splits text into words and counts them.
//
// A word is a maximal run of letters, digits and combining marks. Text is
// NFC-normalized before splitting so that "e" followed by a combining acute
// accent and the precomposed "é" count as the same word, and every word is
// lower-cased with Unicode case mapping. Words that fully match any of
// ignored are dropped.
func Tokenize(text string, ignored []*regexp.Regexp) map[string]int {
	counts := make(map[string]int)
	if text == "" {
		return counts
	}

	// cases.Caser keeps state and must not be shared between goroutines.
	lower := cases.Lower(language.Und)

	words := strings.FieldsFunc(norm.NFC.String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
	})
	for _, w := range words {
		w = lower.String(w)
		if config.MatchesAny(ignored, w) {
			continue
		}
		counts[w]++
	}
	return counts
}
