package clock

import (
	"sync"
	"testing"
	"time"
)

func TestSystem(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := NewSystem().Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("System.Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestManual(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("returns start time", func(t *testing.T) {
		t.Parallel()

		c := NewManual(start)
		if !c.Now().Equal(start) {
			t.Errorf("expected %v, got %v", start, c.Now())
		}
	})

	t.Run("advance moves forward", func(t *testing.T) {
		t.Parallel()

		c := NewManual(start)
		got := c.Advance(3 * time.Second)
		want := start.Add(3 * time.Second)
		if !got.Equal(want) || !c.Now().Equal(want) {
			t.Errorf("expected %v, got %v", want, c.Now())
		}
	})

	t.Run("set replaces time", func(t *testing.T) {
		t.Parallel()

		c := NewManual(start)
		later := start.Add(time.Hour)
		c.Set(later)
		if !c.Now().Equal(later) {
			t.Errorf("expected %v, got %v", later, c.Now())
		}
	})

	t.Run("concurrent advance is not lost", func(t *testing.T) {
		t.Parallel()

		c := NewManual(start)
		var wg sync.WaitGroup
		for range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Advance(time.Millisecond)
			}()
		}
		wg.Wait()

		want := start.Add(100 * time.Millisecond)
		if !c.Now().Equal(want) {
			t.Errorf("expected %v, got %v", want, c.Now())
		}
	})
}
