package crawler

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/nao1215/wordcrawl/internal/clock"
	"github.com/nao1215/wordcrawl/internal/config"
	"github.com/nao1215/wordcrawl/internal/model"
	"github.com/nao1215/wordcrawl/internal/parser"
)

// WebCrawler crawls from a set of seed URLs and counts words.
type WebCrawler interface {
	// Crawl visits the seeds and the pages reachable from them and returns
	// the most popular words. Reaching the deadline or cancelling ctx ends
	// the crawl early with a partial result, not an error.
	Crawl(ctx context.Context, seeds []string) (*model.CrawlResult, error)
}

// ErrNilParser is returned when a crawler is constructed without a parser.
var ErrNilParser = errors.New("crawler requires a parser")

// Option configures a crawler.
type Option func(*options)

type options struct {
	clock   clock.Clock
	logger  *slog.Logger
	metrics *Metrics
}

// WithClock sets the time source used for the deadline.
// Defaults to the system clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger for the crawler.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records crawl metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// settings is the immutable part of a crawler shared by every run.
type settings struct {
	parser           parser.Parser
	timeout          time.Duration
	maxDepth         int
	popularWordCount int
	rateLimit        float64
	ignoredURLs      []*regexp.Regexp
	clock            clock.Clock
	logger           *slog.Logger
	metrics          *Metrics
}

// newSettings validates cfg and applies opts.
func newSettings(cfg *config.Config, p parser.Parser, opts []Option) (*settings, error) {
	if p == nil {
		return nil, ErrNilParser
	}
	if err := cfg.ValidateCrawl(); err != nil {
		return nil, err
	}
	ignored, err := config.CompilePatterns(cfg.IgnoredURLs)
	if err != nil {
		return nil, err
	}

	o := &options{
		clock:  clock.NewSystem(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &settings{
		parser:           p,
		timeout:          cfg.Timeout,
		maxDepth:         cfg.MaxDepth,
		popularWordCount: cfg.PopularWordCount,
		rateLimit:        cfg.RateLimit,
		ignoredURLs:      ignored,
		clock:            o.clock,
		logger:           o.logger,
		metrics:          o.metrics,
	}, nil
}

// New returns the crawler implementation selected by cfg.
func New(cfg *config.Config, p parser.Parser, opts ...Option) (WebCrawler, error) {
	switch cfg.Implementation() {
	case config.ImplementationSequential:
		return NewSequentialCrawler(cfg, p, opts...)
	case config.ImplementationParallel:
		return NewParallelCrawler(cfg, p, opts...)
	default:
		return nil, config.ErrInvalidImplementation
	}
}
