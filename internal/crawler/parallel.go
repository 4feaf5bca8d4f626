package crawler

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/nao1215/wordcrawl/internal/config"
	"github.com/nao1215/wordcrawl/internal/model"
	"github.com/nao1215/wordcrawl/internal/parser"
)

// ParallelCrawler crawls with one goroutine per page and overlaps up to
// EffectiveParallelism page fetches.
type ParallelCrawler struct {
	*settings
	parallelism int
}

// NewParallelCrawler returns a ParallelCrawler for cfg that reads pages
// through p. It returns a config validation error if cfg cannot be crawled.
func NewParallelCrawler(cfg *config.Config, p parser.Parser, opts ...Option) (*ParallelCrawler, error) {
	s, err := newSettings(cfg, p, opts)
	if err != nil {
		return nil, err
	}
	return &ParallelCrawler{
		settings:    s,
		parallelism: min(cfg.Parallelism, runtime.NumCPU()),
	}, nil
}

// EffectiveParallelism returns the number of page fetches that may run at
// once: the configured parallelism capped at the number of CPUs.
func (c *ParallelCrawler) EffectiveParallelism() int {
	return c.parallelism
}

// ProfiledMethods lists the methods timed by the profiler.
func (c *ParallelCrawler) ProfiledMethods() []string {
	return []string{"Crawl"}
}

// Crawl runs one task per seed and returns once every task, and every
// task it spawned, has finished.
func (c *ParallelCrawler) Crawl(ctx context.Context, seeds []string) (*model.CrawlResult, error) {
	r := newRun(c.settings, semaphore.NewWeighted(int64(c.parallelism)))
	c.logger.Debug("starting crawl",
		"seeds", seeds,
		"max_depth", c.maxDepth,
		"parallelism", c.parallelism,
		"deadline", r.deadline)

	var roots errgroup.Group
	for _, seed := range seeds {
		roots.Go(func() error {
			r.process(ctx, seed, c.maxDepth)
			return nil
		})
	}
	_ = roots.Wait() //nolint:errcheck // tasks never fail

	result := r.result()
	c.logger.Info("crawl finished",
		"urls_visited", result.URLsVisited,
		"distinct_words", len(r.counts.Snapshot()))
	return result, nil
}
