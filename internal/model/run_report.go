package model

import "time"

// RunReport wraps a CrawlResult with information about the run that
// produced it. It is what report writers print and what history stores.
type RunReport struct {
	// ID uniquely identifies the run. Empty until the run is saved.
	ID string `json:"id,omitempty"`

	// StartedAt is when the crawl started.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the wall time the crawl took.
	Elapsed time.Duration `json:"elapsed"`

	// Implementation is the crawler implementation that ran ("parallel" or "sequential").
	Implementation string `json:"implementation"`

	// Seeds are the start pages of the crawl.
	Seeds []string `json:"seeds"`

	// MaxDepth is the depth budget the seeds started with.
	MaxDepth int `json:"max_depth"`

	// Parallelism is the effective number of concurrent page fetches.
	Parallelism int `json:"parallelism"`

	// Timeout is the time budget of the crawl.
	Timeout time.Duration `json:"timeout"`

	// DeadlineReached reports whether the deadline cut the crawl short.
	DeadlineReached bool `json:"deadline_reached"`

	// Result is the crawl outcome.
	Result *CrawlResult `json:"result"`
}
