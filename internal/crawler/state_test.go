package crawler

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
)

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	t.Run("add reports first insertion only", func(t *testing.T) {
		t.Parallel()

		v := NewVisitedSet()
		if !v.Add("http://a.test/") {
			t.Error("first Add() = false, want true")
		}
		if v.Add("http://a.test/") {
			t.Error("second Add() = true, want false")
		}
		if !v.Contains("http://a.test/") || v.Contains("http://b.test/") {
			t.Error("Contains() mismatch")
		}
		if v.Len() != 1 {
			t.Errorf("Len() = %d, want 1", v.Len())
		}
	})

	t.Run("exactly one concurrent claimant wins", func(t *testing.T) {
		t.Parallel()

		v := NewVisitedSet()
		var wins atomic.Int64
		var wg sync.WaitGroup
		for range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if v.Add("http://contended.test/") {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()

		if wins.Load() != 1 {
			t.Errorf("%d goroutines claimed the URL, want 1", wins.Load())
		}
		if v.Len() != 1 {
			t.Errorf("Len() = %d, want 1", v.Len())
		}
	})

	t.Run("urls are sorted", func(t *testing.T) {
		t.Parallel()

		v := NewVisitedSet()
		for _, u := range []string{"http://c/", "http://a/", "http://b/"} {
			v.Add(u)
		}
		if got := v.URLs(); !slices.Equal(got, []string{"http://a/", "http://b/", "http://c/"}) {
			t.Errorf("URLs() = %v", got)
		}
	})
}

func TestWordCounts(t *testing.T) {
	t.Parallel()

	t.Run("merge adds per word", func(t *testing.T) {
		t.Parallel()

		w := NewWordCounts()
		w.Merge(map[string]int{"go": 2, "fast": 1})
		w.Merge(map[string]int{"go": 3})
		w.Merge(map[string]int{})

		want := map[string]int{"go": 5, "fast": 1}
		if got := w.Snapshot(); !maps.Equal(got, want) {
			t.Errorf("Snapshot() = %v, want %v", got, want)
		}
		if w.Get("missing") != 0 {
			t.Error("Get() of unknown word should be 0")
		}
	})

	t.Run("concurrent merges are not lost", func(t *testing.T) {
		t.Parallel()

		w := NewWordCounts()
		var wg sync.WaitGroup
		for i := range 64 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.Merge(map[string]int{"shared": 1, fmt.Sprintf("own%d", i): 2})
			}()
		}
		wg.Wait()

		if got := w.Get("shared"); got != 64 {
			t.Errorf("shared = %d, want 64", got)
		}
		if got := len(w.Snapshot()); got != 65 {
			t.Errorf("distinct words = %d, want 65", got)
		}
	})
}
