// Package model defines the data structures shared by the crawler, the
// report writers and the run history.
//
// This package contains the following main types:
//   - PageResult: Words and links extracted from a single page
//   - WordCount: A word and its number of occurrences
//   - CrawlResult: The popular words and the number of visited URLs
//   - RunReport: A CrawlResult together with the settings of the run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The parser, crawler, report and history packages all need
// these types, so centralizing them prevents import cycles.
package model
