package config

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout bounds the whole crawl, not a single fetch.
	// Ten seconds is enough for an offline corpus and keeps an
	// accidental deep crawl from running away.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxDepth lets a crawl follow links ten hops from a seed.
	// A seed is depth 1, so depth 0 disables crawling entirely.
	DefaultMaxDepth = 10

	// DefaultPopularWordCount is the number of words kept in the result.
	DefaultPopularWordCount = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "wordcrawl"

	// ImplementationParallel selects the fork-join crawler.
	ImplementationParallel = "parallel"

	// ImplementationSequential selects the single-goroutine crawler.
	ImplementationSequential = "sequential"
)

// Config holds all configuration options for wordcrawl.
// This struct is populated from the configuration file and CLI flags and
// passed through the application via dependency injection rather than
// global state. It is not modified once a crawl starts.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// StartPages are the seed URLs. Each one starts a crawl task at MaxDepth.
	StartPages []string

	// IgnoredURLs are regular expressions. A URL that fully matches any of
	// them is never visited.
	IgnoredURLs []string

	// IgnoredWords are regular expressions. A word that fully matches any of
	// them is not counted.
	IgnoredWords []string

	// Parallelism is the requested number of concurrent page fetches.
	// The crawler caps it at runtime.NumCPU().
	Parallelism int

	// ImplementationOverride forces a crawler implementation.
	// Empty means the parallel crawler.
	ImplementationOverride string

	// MaxDepth is the depth budget of each seed.
	MaxDepth int

	// Timeout is the wall-clock budget of the crawl.
	Timeout time.Duration

	// PopularWordCount is the number of most frequent words in the result.
	PopularWordCount int

	// RateLimit caps page fetches per second across the whole crawl.
	// Zero disables rate limiting.
	RateLimit float64

	// StemLanguage reduces words to their Snowball stem in this language
	// before counting, so "crawl" and "crawling" count as one word.
	// Empty disables stemming.
	StemLanguage string

	// ProfileOutputPath is where profiling data is appended.
	// Empty means profiling data is written to stdout only with --profile.
	ProfileOutputPath string

	// ResultPath is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ResultPath string

	// CorpusPath is the YAML corpus the page parser reads pages from.
	CorpusPath string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables the JSON result format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables the Markdown result format.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// Profile prints profiling data after the crawl.
	Profile bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// MetricsAddr is the listen address of the Prometheus endpoint.
	// Empty disables the endpoint.
	MetricsAddr string

	// DBDir is the directory path for the run history database.
	// Defaults to XDG data directory (~/.local/share/wordcrawl on Linux).
	DBDir string

	// SaveToDB indicates whether finished runs are stored in the history.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, depth).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		StartPages:       []string{},
		IgnoredURLs:      []string{},
		IgnoredWords:     []string{},
		Parallelism:      runtime.NumCPU(),
		MaxDepth:         DefaultMaxDepth,
		Timeout:          DefaultTimeout,
		PopularWordCount: DefaultPopularWordCount,
		DBDir:            XDGDataDir(),
		SaveToDB:         true,
	}
}

// Implementation returns the crawler implementation to run.
func (c *Config) Implementation() string {
	if c.ImplementationOverride == "" {
		return ImplementationParallel
	}
	return c.ImplementationOverride
}

// XDGDataDir returns the XDG data directory for wordcrawl.
// On Linux: ~/.local/share/wordcrawl
// On macOS: ~/Library/Application Support/wordcrawl
// On Windows: %LOCALAPPDATA%\wordcrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wordcrawl.
// On Linux: ~/.config/wordcrawl
// On macOS: ~/Library/Application Support/wordcrawl
// On Windows: %APPDATA%\wordcrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after the file and flags are merged, before any
// page is crawled.
//
// An empty StartPages list is valid and produces an empty result.
func (c *Config) Validate() error {
	if err := c.ValidateCrawl(); err != nil {
		return err
	}

	switch c.ImplementationOverride {
	case "", ImplementationParallel, ImplementationSequential:
	default:
		return ErrInvalidImplementation
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if _, err := CompilePatterns(c.IgnoredWords); err != nil {
		return err
	}

	return nil
}

// ValidateCrawl checks only the settings a crawler needs: timeout, depth,
// popular word count, parallelism, rate limit and ignored URL patterns. Crawler
// constructors call it so that a Config built in code is checked too.
func (c *Config) ValidateCrawl() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}

	if c.PopularWordCount < 0 {
		return ErrInvalidPopularWordCount
	}

	if c.Parallelism <= 0 {
		return ErrInvalidParallelism
	}

	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}

	if _, err := CompilePatterns(c.IgnoredURLs); err != nil {
		return err
	}

	return nil
}
