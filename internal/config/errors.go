package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Errors that carry the offending value wrap
// these sentinels with fmt.Errorf.
var (
	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A zero timeout would end the crawl before the first page.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxDepth is returned when the maximum depth is negative.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidPopularWordCount is returned when the popular word count is negative.
	ErrInvalidPopularWordCount = errors.New("invalid popular word count: must be non-negative")

	// ErrInvalidParallelism is returned when parallelism is not positive.
	ErrInvalidParallelism = errors.New("invalid parallelism: must be positive")

	// ErrInvalidRateLimit is returned when the rate limit is negative.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")

	// ErrInvalidIgnorePattern is returned when an ignored URL or ignored word
	// pattern is not a valid regular expression.
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")

	// ErrInvalidImplementation is returned when implementationOverride names
	// an unknown crawler implementation.
	ErrInvalidImplementation = errors.New("invalid implementation: must be \"parallel\" or \"sequential\"")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
