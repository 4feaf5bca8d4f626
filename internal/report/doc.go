// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: The crawl result as JSON, optionally with run metadata
//   - MarkdownWriter: GitHub Flavored Markdown with tables and a pie chart
//
// Every writer renders both a single run (RunReport) and the difference
// between two stored runs (Comparison).
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) to follow the single responsibility
// principle. This allows adding new output formats without modifying
// the core data structures.
package report
