package crawler

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/wordcrawl/internal/config"
	"github.com/nao1215/wordcrawl/internal/model"
	"github.com/nao1215/wordcrawl/internal/parser"
)

var errBrokenPage = errors.New("connection reset")

// fakePage is a page served by fakeWeb.
type fakePage struct {
	words map[string]int
	links []string
	err   error
}

// fakeWeb is an in-memory parser.Parser that records how often each URL is fetched.
type fakeWeb struct {
	pages map[string]fakePage

	mu    sync.Mutex
	calls map[string]int
}

func newFakeWeb(pages map[string]fakePage) *fakeWeb {
	return &fakeWeb{pages: pages, calls: make(map[string]int)}
}

func (w *fakeWeb) Parse(_ context.Context, url string) (*model.PageResult, error) {
	w.mu.Lock()
	w.calls[url]++
	w.mu.Unlock()

	page, ok := w.pages[url]
	if !ok {
		return nil, fmt.Errorf("no page at %s", url)
	}
	if page.err != nil {
		return nil, page.err
	}
	return &model.PageResult{
		WordCounts: maps.Clone(page.words),
		Links:      append([]string(nil), page.links...),
	}, nil
}

func (w *fakeWeb) Calls(url string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls[url]
}

func (w *fakeWeb) TotalCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	total := 0
	for _, n := range w.calls {
		total += n
	}
	return total
}

// parserFunc adapts a function to parser.Parser.
type parserFunc func(ctx context.Context, url string) (*model.PageResult, error)

func (f parserFunc) Parse(ctx context.Context, url string) (*model.PageResult, error) {
	return f(ctx, url)
}

// testConfig returns a config whose limits never cut a small test crawl short.
func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Timeout = time.Minute
	cfg.MaxDepth = 10
	cfg.PopularWordCount = 100
	cfg.Parallelism = 8
	return cfg
}

// meshWeb builds n pages where page i links to three other pages and
// contains word{i%10} i+1 times. Every page is reachable from page 0.
func meshWeb(n int) *fakeWeb {
	url := func(i int) string { return fmt.Sprintf("http://mesh.test/%d", i) }
	pages := make(map[string]fakePage, n)
	for i := range n {
		pages[url(i)] = fakePage{
			words: map[string]int{fmt.Sprintf("word%d", i%10): i + 1, "mesh": 1},
			links: []string{url((i + 1) % n), url((i*7 + 3) % n), url((i*13 + 5) % n)},
		}
	}
	return newFakeWeb(pages)
}

func mustParallel(t *testing.T, cfg *config.Config, p parser.Parser, opts ...Option) *ParallelCrawler {
	t.Helper()

	c, err := NewParallelCrawler(cfg, p, opts...)
	if err != nil {
		t.Fatalf("NewParallelCrawler() error = %v", err)
	}
	return c
}
