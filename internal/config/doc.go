// Package config provides configuration structures and utilities for wordcrawl.
// It defines the crawl settings (seeds, depth, deadline, parallelism, ignore
// patterns), the layout of the YAML configuration file and report
// preferences.
package config
