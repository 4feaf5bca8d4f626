package crawler

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/nao1215/wordcrawl/internal/config"
	"github.com/nao1215/wordcrawl/internal/model"
)

// run holds the state of a single Crawl call.
type run struct {
	*settings

	deadline time.Time
	visited  *VisitedSet
	counts   *WordCounts

	// slots bounds concurrent parser calls. Nil means unbounded, which is
	// what the sequential crawler uses since it never overlaps fetches.
	slots *semaphore.Weighted

	// limiter spaces out parser calls. Nil means no rate limit.
	// It runs on wall time, not on the injected clock.
	limiter *rate.Limiter

	// deadlineReached is set once a task is skipped because of the deadline.
	deadlineReached atomic.Bool
}

func newRun(s *settings, slots *semaphore.Weighted) *run {
	r := &run{
		settings: s,
		deadline: s.clock.Now().Add(s.timeout),
		visited:  NewVisitedSet(),
		counts:   NewWordCounts(),
		slots:    slots,
	}
	if s.rateLimit > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(s.rateLimit), 1)
	}
	return r
}

// result assembles the final CrawlResult. It must only be called after
// every task of the run has returned.
func (r *run) result() *model.CrawlResult {
	result := model.NewCrawlResult(r.counts.Snapshot(), r.popularWordCount, r.visited.Len())
	result.DeadlineReached = r.deadlineReached.Load()
	return result
}

// skipReason runs the checks that end a task before its page is fetched.
// The checks run in a fixed order and only the last one has a side effect:
// claiming url in the visited set.
func (r *run) skipReason(ctx context.Context, url string, depth int) (string, bool) {
	if reason, skip := r.precheck(ctx, url, depth); skip {
		return reason, true
	}
	if !r.visited.Add(url) {
		return SkipDuplicate, true
	}
	return "", false
}

// precheck is skipReason without the claim. A URL already in the visited
// set is reported as a duplicate, which is final since the set only grows.
func (r *run) precheck(ctx context.Context, url string, depth int) (string, bool) {
	if depth <= 0 {
		return SkipDepth, true
	}
	if !r.clock.Now().Before(r.deadline) {
		return SkipDeadline, true
	}
	if ctx.Err() != nil {
		return SkipCancelled, true
	}
	if config.MatchesAny(r.ignoredURLs, url) {
		return SkipIgnored, true
	}
	if r.visited.Contains(url) {
		return SkipDuplicate, true
	}
	return "", false
}

// skip ends a task for reason.
func (r *run) skip(reason string) {
	if reason == SkipDeadline {
		r.deadlineReached.Store(true)
	}
	r.metrics.IncSkipped(reason)
}

// visit claims url, fetches it and merges its words.
// It returns the page's links, or false if the task ends here.
//
// Design decision: We run the checks again once the task holds a fetch
// slot because:
//  1. A task may queue for a slot and a rate-limit token for longer than
//     the time left before the deadline
//  2. Without it every queued task would still fetch after the deadline,
//     one slot at a time
//  3. The first pass keeps late or useless tasks out of the queue
func (r *run) visit(ctx context.Context, url string, depth int) ([]string, bool) {
	if reason, skip := r.precheck(ctx, url, depth); skip {
		r.skip(reason)
		return nil, false
	}

	release, reason, ok := r.acquire(ctx)
	if !ok {
		r.skip(reason)
		return nil, false
	}
	defer release()

	if reason, skip := r.skipReason(ctx, url, depth); skip {
		r.skip(reason)
		return nil, false
	}
	r.metrics.IncVisited()

	page, ok := r.fetch(ctx, url)
	if !ok {
		return nil, false
	}

	r.counts.Merge(page.WordCounts)
	return page.Links, true
}

// acquire waits for a rate-limit token, then for a fetch slot. On success
// it returns the function that gives the slot back.
// A token that would only become available at or after the deadline is not
// waited for.
func (r *run) acquire(ctx context.Context) (func(), string, bool) {
	if r.limiter != nil {
		if reason, ok := r.waitToken(ctx); !ok {
			return nil, reason, false
		}
	}
	if r.slots == nil {
		return func() {}, "", true
	}
	if err := r.slots.Acquire(ctx, 1); err != nil {
		return nil, SkipCancelled, false
	}
	return func() { r.slots.Release(1) }, "", true
}

// waitToken reserves a token from the rate limiter and sleeps until it is
// due.
func (r *run) waitToken(ctx context.Context) (string, bool) {
	res := r.limiter.Reserve()
	if !res.OK() {
		return SkipCancelled, false
	}
	delay := res.Delay()
	if delay <= 0 {
		return "", true
	}
	if !r.clock.Now().Add(delay).Before(r.deadline) {
		res.Cancel()
		return SkipDeadline, false
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return "", true
	case <-ctx.Done():
		res.Cancel()
		return SkipCancelled, false
	}
}

// fetch calls the parser. The caller holds a fetch slot.
// Failures are logged and counted, never returned: a broken page only ends
// its own task.
func (r *run) fetch(ctx context.Context, url string) (*model.PageResult, bool) {
	r.metrics.FetchStarted()
	start := r.clock.Now()
	page, err := r.parser.Parse(ctx, url)
	r.metrics.FetchFinished(r.clock.Now().Sub(start))

	if err != nil {
		r.metrics.IncFetchError()
		r.logger.Debug("failed to fetch page", "url", url, "error", err)
		return nil, false
	}
	if page == nil {
		return nil, false
	}
	r.logger.Debug("fetched page", "url", url, "words", len(page.WordCounts), "links", len(page.Links))
	return page, true
}

// process is one fork-join crawl task: visit url, then run one child task
// per link at depth-1 and wait for all of them.
//
// Design decision: Only the checks and the parser call hold a slot of
// r.slots, not the whole task, because:
//  1. A parent waiting for its children would otherwise hold a slot and
//     could starve them, deadlocking a deep crawl
//  2. Parsing is the only work worth bounding; waiting costs nothing
//  3. Goroutines are cheap enough to start one per link
func (r *run) process(ctx context.Context, url string, depth int) {
	links, ok := r.visit(ctx, url, depth)
	if !ok {
		return
	}

	var children errgroup.Group
	for _, link := range links {
		children.Go(func() error {
			r.process(ctx, link, depth-1)
			return nil
		})
	}
	_ = children.Wait() //nolint:errcheck // tasks never fail
}

// processSequential is process without concurrency: children run one after
// another in link order.
func (r *run) processSequential(ctx context.Context, url string, depth int) {
	links, ok := r.visit(ctx, url, depth)
	if !ok {
		return
	}
	for _, link := range links {
		r.processSequential(ctx, link, depth-1)
	}
}
