package parser

import "errors"

var (
	// ErrPageNotFound is returned when a URL has no page in the corpus.
	ErrPageNotFound = errors.New("page not found")

	// ErrFetchFailed is returned for pages marked as failing in the corpus.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrInvalidCorpus is returned when a corpus file cannot be used.
	ErrInvalidCorpus = errors.New("invalid corpus")

	// ErrUnsupportedLanguage is returned for a stemming language Snowball
	// does not know.
	ErrUnsupportedLanguage = errors.New("unsupported stemming language")
)
