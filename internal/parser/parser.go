package parser

import (
	"context"

	"github.com/nao1215/wordcrawl/internal/model"
)

// Parser fetches and parses a single page.
// Implementations must be safe for concurrent use.
type Parser interface {
	// Parse returns the word counts and outgoing links of the page at url.
	// Links are absolute URLs.
	Parse(ctx context.Context, url string) (*model.PageResult, error)
}
