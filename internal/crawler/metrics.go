package crawler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Reasons a crawl task ends without fetching its page.
const (
	SkipDepth     = "depth"
	SkipDeadline  = "deadline"
	SkipCancelled = "cancelled"
	SkipIgnored   = "ignored"
	SkipDuplicate = "duplicate"
)

// Metrics bundles Prometheus collectors for the crawler.
// All methods are safe to call on a nil *Metrics, which disables metrics.
type Metrics struct {
	Registry      *prometheus.Registry
	PagesVisited  prometheus.Counter
	TasksSkipped  *prometheus.CounterVec
	FetchErrors   prometheus.Counter
	FetchDuration prometheus.Histogram
	FetchInFlight prometheus.Gauge
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	visited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wordcrawl_pages_visited_total",
		Help: "Total number of URLs claimed by crawl tasks.",
	})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wordcrawl_tasks_skipped_total",
		Help: "Total number of crawl tasks that ended before fetching, by reason.",
	}, []string{"reason"})
	fetchErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wordcrawl_fetch_errors_total",
		Help: "Total number of pages that failed to fetch or parse.",
	})
	fetchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordcrawl_fetch_duration_seconds",
		Help:    "Time spent fetching and parsing a single page.",
		Buckets: prometheus.DefBuckets,
	})
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wordcrawl_fetch_in_flight",
		Help: "Number of page fetches currently running.",
	})

	registry.MustRegister(visited, skipped, fetchErrors, fetchDuration, inFlight)

	return &Metrics{
		Registry:      registry,
		PagesVisited:  visited,
		TasksSkipped:  skipped,
		FetchErrors:   fetchErrors,
		FetchDuration: fetchDuration,
		FetchInFlight: inFlight,
	}
}

// IncVisited increments the visited pages counter.
func (m *Metrics) IncVisited() {
	if m == nil {
		return
	}
	m.PagesVisited.Inc()
}

// IncSkipped increments the skipped tasks counter for reason.
func (m *Metrics) IncSkipped(reason string) {
	if m == nil {
		return
	}
	m.TasksSkipped.WithLabelValues(reason).Inc()
}

// IncFetchError increments the fetch errors counter.
func (m *Metrics) IncFetchError() {
	if m == nil {
		return
	}
	m.FetchErrors.Inc()
}

// FetchStarted marks the start of a page fetch.
func (m *Metrics) FetchStarted() {
	if m == nil {
		return
	}
	m.FetchInFlight.Inc()
}

// FetchFinished marks the end of a page fetch that took d.
func (m *Metrics) FetchFinished(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchInFlight.Dec()
	m.FetchDuration.Observe(d.Seconds())
}
