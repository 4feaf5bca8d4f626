// Package main provides the entry point for the wordcrawl CLI.
//
// wordcrawl crawls a set of seed pages in parallel, follows links up to a
// bounded depth within a time budget, and reports the most popular words.
//
// Usage:
//
//	wordcrawl crawl --corpus pages.yaml https://example.com/
//	wordcrawl compare
//
// See --help for all available options.
package main

// main is the entry point for wordcrawl.
func main() {
	Execute()
}
