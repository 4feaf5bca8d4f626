package profiler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/nao1215/wordcrawl/internal/clock"
)

// Profiled is implemented by components that want some of their methods timed.
type Profiled interface {
	// ProfiledMethods returns the names of the methods to time.
	ProfiledMethods() []string
}

// Profiler records the time spent in profiled methods.
// A single Profiler is shared by every decorator of a run.
type Profiler struct {
	clock     clock.Clock
	state     *state
	startedAt time.Time
}

// New returns a Profiler that reads time from c.
// The start time printed by WriteData is taken now.
func New(c clock.Clock) *Profiler {
	return &Profiler{
		clock:     c,
		state:     newState(),
		startedAt: c.Now(),
	}
}

// Check returns ErrNotProfiled unless component implements Profiled and
// lists at least one method.
func Check(component any) error {
	p, ok := component.(Profiled)
	if !ok || len(p.ProfiledMethods()) == 0 {
		return fmt.Errorf("%w: %s", ErrNotProfiled, ComponentName(component))
	}
	return nil
}

// IsProfiled reports whether method is one of component's profiled methods.
func IsProfiled(component any, method string) bool {
	p, ok := component.(Profiled)
	if !ok {
		return false
	}
	return slices.Contains(p.ProfiledMethods(), method)
}

// ComponentName returns the package-qualified type name of v without
// a pointer marker, e.g. "crawler.ParallelCrawler".
func ComponentName(v any) string {
	return strings.TrimLeft(fmt.Sprintf("%T", v), "*")
}

// Start begins timing one call of component#method and returns the function
// that ends it. Callers defer the returned function so the call is recorded
// even when it fails or panics.
func (p *Profiler) Start(component, method string) func() {
	begin := p.clock.Now()
	return func() {
		p.state.record(component+"#"+method, p.clock.Now().Sub(begin))
	}
}

// Totals returns the accumulated time per "component#method".
func (p *Profiler) Totals() map[string]time.Duration {
	return p.state.snapshot()
}

// WriteData writes the profiling report to w: a "Run at" header with the
// profiler's start time in RFC 1123 format followed by one line per method.
func (p *Profiler) WriteData(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Run at %s\n", p.startedAt.Format(time.RFC1123)); err != nil {
		return err
	}
	if err := p.state.write(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// WriteDataToPath appends the profiling report to the file at path,
// creating the file and its directory if needed.
func (p *Profiler) WriteDataToPath(path string) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to open profile output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return p.WriteData(f)
}
