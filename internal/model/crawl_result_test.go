package model

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestCrawlResultMarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("keeps rank order", func(t *testing.T) {
		t.Parallel()

		r := CrawlResult{
			WordCounts:  []WordCount{{"zebra", 9}, {"apple", 4}, {"mango", 4}},
			URLsVisited: 3,
		}
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		want := `{"wordCounts":{"zebra":9,"apple":4,"mango":4},"urlsVisited":3}`
		if string(data) != want {
			t.Errorf("Marshal() = %s, want %s", data, want)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(CrawlResult{})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		want := `{"wordCounts":{},"urlsVisited":0}`
		if string(data) != want {
			t.Errorf("Marshal() = %s, want %s", data, want)
		}
	})

	t.Run("escapes words", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(&CrawlResult{WordCounts: []WordCount{{`say"hi`, 1}}})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		var back CrawlResult
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if back.WordCounts[0].Word != `say"hi` {
			t.Errorf("word = %q", back.WordCounts[0].Word)
		}
	})
}

func TestCrawlResultUnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("preserves object order", func(t *testing.T) {
		t.Parallel()

		var r CrawlResult
		input := `{"wordCounts": {"b": 2, "a": 2, "c": 1}, "urlsVisited": 7}`
		if err := json.Unmarshal([]byte(input), &r); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		want := []WordCount{{"b", 2}, {"a", 2}, {"c", 1}}
		if !slices.Equal(r.WordCounts, want) {
			t.Errorf("WordCounts = %v, want %v", r.WordCounts, want)
		}
		if r.URLsVisited != 7 {
			t.Errorf("URLsVisited = %d, want 7", r.URLsVisited)
		}
	})

	t.Run("rejects non-object word counts", func(t *testing.T) {
		t.Parallel()

		var r CrawlResult
		if err := json.Unmarshal([]byte(`{"wordCounts": [1, 2]}`), &r); err == nil {
			t.Error("expected error for array wordCounts")
		}
	})

	t.Run("rejects non-integer counts", func(t *testing.T) {
		t.Parallel()

		var r CrawlResult
		if err := json.Unmarshal([]byte(`{"wordCounts": {"a": "x"}}`), &r); err == nil {
			t.Error("expected error for string count")
		}
	})

	t.Run("missing word counts", func(t *testing.T) {
		t.Parallel()

		var r CrawlResult
		if err := json.Unmarshal([]byte(`{"urlsVisited": 1}`), &r); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if r.WordCounts == nil || len(r.WordCounts) != 0 {
			t.Errorf("WordCounts = %v, want empty", r.WordCounts)
		}
	})
}

func TestNewCrawlResult(t *testing.T) {
	t.Parallel()

	r := NewCrawlResult(map[string]int{"go": 3, "rust": 1, "zig": 2}, 2, 5)
	if r.URLsVisited != 5 {
		t.Errorf("URLsVisited = %d, want 5", r.URLsVisited)
	}
	if got := r.Rank("go"); got != 1 {
		t.Errorf("Rank(go) = %d, want 1", got)
	}
	if got := r.Rank("zig"); got != 2 {
		t.Errorf("Rank(zig) = %d, want 2", got)
	}
	if got := r.Rank("rust"); got != 0 {
		t.Errorf("Rank(rust) = %d, want 0", got)
	}
	counts := r.Counts()
	if len(counts) != 2 || counts["go"] != 3 || counts["zig"] != 2 {
		t.Errorf("Counts() = %v", counts)
	}
}
