package profiler

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"time"
)

// state accumulates the total time spent in each profiled method.
// It is safe for concurrent use; the parallel crawler records from many
// goroutines at once.
type state struct {
	mu    sync.Mutex
	total map[string]time.Duration
}

func newState() *state {
	return &state{total: make(map[string]time.Duration)}
}

// record adds elapsed to the running total of key.
// Negative durations (a clock set backwards) count as zero.
func (s *state) record(key string, elapsed time.Duration) {
	elapsed = max(elapsed, 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.total[key] += elapsed
}

// snapshot returns a copy of the totals.
func (s *state) snapshot() map[string]time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]time.Duration, len(s.total))
	for k, v := range s.total {
		out[k] = v
	}
	return out
}

// write prints one line per method, sorted by method key.
func (s *state) write(w io.Writer) error {
	totals := s.snapshot()
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s took %s\n", k, formatDuration(totals[k])); err != nil {
			return err
		}
	}
	return nil
}

// formatDuration renders d as "<m>m <s>s <ms>ms", e.g. "0m 1s 234ms".
func formatDuration(d time.Duration) string {
	minutes := int64(d / time.Minute)
	seconds := int64(d % time.Minute / time.Second)
	millis := int64(d % time.Second / time.Millisecond)
	return fmt.Sprintf("%dm %ds %dms", minutes, seconds, millis)
}
