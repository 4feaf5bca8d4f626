// Package parser turns a URL into the words and links of the page behind it.
//
// The crawler only depends on the Parser interface. This package ships
// Corpus, an offline page source backed by a YAML file, and Tokenize, which
// splits page text into normalized word counts.
//
// Corpus file format:
//
//	pages:
//	  http://example.com/:
//	    text: "The quick brown fox"
//	    links: ["/about", "http://example.com/blog"]
//	  http://example.com/about:
//	    text: "About the fox"
//	    latency: 50ms
//	  http://example.com/blog:
//	    error: "connection reset"
//
// Relative links are resolved against the page URL. A page with an error
// fails every fetch, and a URL that is not in the corpus is reported as
// ErrPageNotFound.
package parser
