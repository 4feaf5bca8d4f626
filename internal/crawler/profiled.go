package crawler

import (
	"context"
	"fmt"

	"github.com/nao1215/wordcrawl/internal/model"
	"github.com/nao1215/wordcrawl/internal/profiler"
)

// profiledCrawler times the profiled methods of the WebCrawler it wraps.
type profiledCrawler struct {
	next      WebCrawler
	profiler  *profiler.Profiler
	component string
	timeCrawl bool
}

// WithProfiling wraps c so that calls to its profiled methods are recorded
// by prof. It returns profiler.ErrNotProfiled if c declares no profiled
// methods.
func WithProfiling(c WebCrawler, prof *profiler.Profiler) (WebCrawler, error) {
	if err := profiler.Check(c); err != nil {
		return nil, fmt.Errorf("cannot profile crawler: %w", err)
	}
	return &profiledCrawler{
		next:      c,
		profiler:  prof,
		component: profiler.ComponentName(c),
		timeCrawl: profiler.IsProfiled(c, "Crawl"),
	}, nil
}

// Crawl delegates to the wrapped crawler.
func (c *profiledCrawler) Crawl(ctx context.Context, seeds []string) (*model.CrawlResult, error) {
	if c.timeCrawl {
		defer c.profiler.Start(c.component, "Crawl")()
	}
	return c.next.Crawl(ctx, seeds)
}
