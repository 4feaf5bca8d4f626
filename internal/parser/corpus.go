package parser

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/wordcrawl/internal/model"
)

// Page is one entry of a corpus file.
type Page struct {
	// Text is the visible text of the page.
	Text string `yaml:"text"`

	// Links are the page's outgoing links, absolute or relative to the page URL.
	Links []string `yaml:"links,omitempty"`

	// Error, when set, makes every fetch of the page fail with this message.
	Error string `yaml:"error,omitempty"`

	// Latency delays every fetch of the page.
	Latency time.Duration `yaml:"latency,omitempty"`
}

// corpusFile is the on-disk layout of a corpus.
type corpusFile struct {
	Pages map[string]Page `yaml:"pages"`
}

// Corpus serves pages from memory. It is safe for concurrent use since its
// pages are never modified after construction.
type Corpus struct {
	pages        map[string]Page
	ignoredWords []*regexp.Regexp
	stemmer      *Stemmer
	logger       *slog.Logger
}

// CorpusOption configures a Corpus.
type CorpusOption func(*Corpus)

// WithIgnoredWords drops words that fully match any of patterns.
func WithIgnoredWords(patterns []*regexp.Regexp) CorpusOption {
	return func(c *Corpus) {
		c.ignoredWords = patterns
	}
}

// WithStemmer merges the counts of words that share a stem.
// Ignored words are matched before stemming.
func WithStemmer(s *Stemmer) CorpusOption {
	return func(c *Corpus) {
		c.stemmer = s
	}
}

// WithLogger sets the logger for the corpus.
func WithLogger(logger *slog.Logger) CorpusOption {
	return func(c *Corpus) {
		c.logger = logger
	}
}

// NewCorpus returns a Corpus serving pages.
func NewCorpus(pages map[string]Page, opts ...CorpusOption) *Corpus {
	c := &Corpus{
		pages:  maps.Clone(pages),
		logger: slog.Default(),
	}
	if c.pages == nil {
		c.pages = make(map[string]Page)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadCorpus reads a corpus file. Page keys must be absolute URLs.
func LoadCorpus(path string, opts ...CorpusOption) (*Corpus, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided corpus path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	var cf corpusFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCorpus, err)
	}

	for key := range cf.Pages {
		u, err := url.Parse(key)
		if err != nil || !u.IsAbs() {
			return nil, fmt.Errorf("%w: page key %q is not an absolute URL", ErrInvalidCorpus, key)
		}
	}

	return NewCorpus(cf.Pages, opts...), nil
}

// Len returns the number of pages in the corpus.
func (c *Corpus) Len() int {
	return len(c.pages)
}

// ProfiledMethods lists the methods timed by the profiler.
func (c *Corpus) ProfiledMethods() []string {
	return []string{"Parse"}
}

// Parse returns the word counts and absolute links of the page at pageURL.
// It honours the page's latency, returning ctx.Err() if ctx ends first.
func (c *Corpus) Parse(ctx context.Context, pageURL string) (*model.PageResult, error) {
	page, ok := c.pages[pageURL]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, pageURL)
	}

	if page.Latency > 0 {
		timer := time.NewTimer(page.Latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if page.Error != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrFetchFailed, pageURL, page.Error)
	}

	result := model.NewPageResult()
	result.WordCounts = Tokenize(page.Text, c.ignoredWords)
	if c.stemmer != nil {
		result.WordCounts = c.stemmer.StemCounts(result.WordCounts)
	}
	result.Links = c.resolveLinks(pageURL, page.Links)
	return result, nil
}

// resolveLinks makes links absolute against base and drops fragments.
// Unparseable links are skipped.
func (c *Corpus) resolveLinks(base string, links []string) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return []string{}
	}

	resolved := make([]string, 0, len(links))
	for _, link := range links {
		ref, err := url.Parse(link)
		if err != nil {
			c.logger.Debug("skipping malformed link", "page", base, "link", link, "error", err)
			continue
		}
		abs := baseURL.ResolveReference(ref)
		abs.Fragment = ""
		resolved = append(resolved, abs.String())
	}
	return resolved
}
