package crawler

import (
	"context"

	"github.com/nao1215/wordcrawl/internal/config"
	"github.com/nao1215/wordcrawl/internal/model"
	"github.com/nao1215/wordcrawl/internal/parser"
)

// SequentialCrawler crawls depth-first on the calling goroutine.
// It follows the same skip rules as ParallelCrawler. When neither the
// deadline nor the depth limit cuts the crawl short, both visit exactly the
// pages reachable from the seeds and produce the same result.
type SequentialCrawler struct {
	*settings
}

// NewSequentialCrawler returns a SequentialCrawler for cfg that reads pages
// through p. Parallelism in cfg is validated but otherwise ignored.
func NewSequentialCrawler(cfg *config.Config, p parser.Parser, opts ...Option) (*SequentialCrawler, error) {
	s, err := newSettings(cfg, p, opts)
	if err != nil {
		return nil, err
	}
	return &SequentialCrawler{settings: s}, nil
}

// ProfiledMethods lists the methods timed by the profiler.
func (c *SequentialCrawler) ProfiledMethods() []string {
	return []string{"Crawl"}
}

// Crawl visits the seeds in order.
func (c *SequentialCrawler) Crawl(ctx context.Context, seeds []string) (*model.CrawlResult, error) {
	r := newRun(c.settings, nil)
	for _, seed := range seeds {
		r.processSequential(ctx, seed, c.maxDepth)
	}
	result := r.result()
	c.logger.Info("crawl finished", "urls_visited", result.URLsVisited)
	return result, nil
}
