// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Removal of credentials embedded in logged URLs (user:password@host)
//   - Masking of sensitive query parameters (?token=..., ?session=...)
//   - Masking of sensitive attribute keys and secret-looking values
//   - Configurable log levels with verbose mode support
//
// Even in verbose mode, sensitive values are masked so that crawl logs can
// be shared without leaking credentials that appear in seed or link URLs.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("visiting page",
//	    "url", "http://user:pw@example.com/a?token=abc&page=2",
//	)
//	// url=http://example.com/a?token=***REDACTED***&page=2
//
//	slog.SetDefault(logger)
package log
