package config

import (
	"fmt"
	"regexp"
)

// CompilePatterns compiles regular expressions that must match a whole string.
//
// Design decision: We anchor every pattern as ^(?:p)$ because:
//  1. Ignore rules are documented as full matches against the URL or word
//  2. regexp.MatchString alone would accept a match anywhere in the input
//  3. Wrapping in a non-capturing group keeps alternations like "a|b" whole
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")$")
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidIgnorePattern, p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// MatchesAny reports whether s fully matches any of the compiled patterns.
func MatchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
