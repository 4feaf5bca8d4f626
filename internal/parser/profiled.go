package parser

import (
	"context"
	"fmt"

	"github.com/nao1215/wordcrawl/internal/model"
	"github.com/nao1215/wordcrawl/internal/profiler"
)

// profiledParser times the profiled methods of the Parser it wraps.
type profiledParser struct {
	next      Parser
	profiler  *profiler.Profiler
	component string
	timeParse bool
}

// WithProfiling wraps p so that calls to its profiled methods are recorded
// by prof. It returns profiler.ErrNotProfiled if p declares no profiled
// methods.
func WithProfiling(p Parser, prof *profiler.Profiler) (Parser, error) {
	if err := profiler.Check(p); err != nil {
		return nil, fmt.Errorf("cannot profile parser: %w", err)
	}
	return &profiledParser{
		next:      p,
		profiler:  prof,
		component: profiler.ComponentName(p),
		timeParse: profiler.IsProfiled(p, "Parse"),
	}, nil
}

// Parse delegates to the wrapped parser.
func (p *profiledParser) Parse(ctx context.Context, url string) (*model.PageResult, error) {
	if p.timeParse {
		defer p.profiler.Start(p.component, "Parse")()
	}
	return p.next.Parse(ctx, url)
}
