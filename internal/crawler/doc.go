// Package crawler implements the word-counting web crawler.
//
// # Architecture
//
// A crawl starts one task per seed URL. A task runs these checks in order
// and stops at the first that applies:
//
//  1. its depth budget is used up (depth <= 0)
//  2. the crawl deadline has passed (clock.Now() >= deadline)
//  3. the URL fully matches an ignored URL pattern
//  4. another task already claimed the URL in the VisitedSet
//
// Otherwise it fetches the page through a parser.Parser, merges the page's
// word counts into the shared WordCounts, starts one child task per link
// with depth-1 and waits for all of them. Crawl returns once every task has
// finished, with the top words and the number of claimed URLs.
//
// # Components
//
//   - ParallelCrawler: fork-join crawl, one goroutine per task
//   - SequentialCrawler: the same traversal on a single goroutine
//   - VisitedSet, WordCounts: the shared state of a crawl
//   - Metrics: Prometheus collectors for visited, skipped and failed pages
//
// # Stopping
//
// The deadline is absolute and computed once per Crawl call from the
// injected clock.Clock. Tasks check it on entry, so a fetch that is already
// running completes. Cancelling the context passed to Crawl stops the crawl
// the same way. Neither is an error: Crawl returns what was counted so far.
//
// A page that fails to fetch or parse is logged at debug level and counted
// in Metrics. It contributes no words and no links, and other tasks are
// unaffected.
//
// # Usage
//
//	c, err := crawler.NewParallelCrawler(cfg, corpus, crawler.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	result, err := c.Crawl(ctx, cfg.StartPages)
package crawler
