package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/wordcrawl/internal/model"
)

// createTestReport creates a run report with sample data for testing.
func createTestReport() *model.RunReport {
	counts := map[string]int{"go": 5, "crawler": 3, "word": 3, "parallel": 1}
	return &model.RunReport{
		ID:             "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		StartedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Elapsed:        1234 * time.Millisecond,
		Implementation: "parallel",
		Seeds:          []string{"https://example.com/", "https://example.org/"},
		MaxDepth:       3,
		Parallelism:    4,
		Timeout:        10 * time.Second,
		Result:         model.NewCrawlResult(counts, 3, 7),
	}
}

// createTestComparison creates a comparison between two sample runs.
func createTestComparison() *model.Comparison {
	previous := createTestReport()
	previous.ID = "previous-run"

	current := createTestReport()
	current.ID = "current-run"
	current.StartedAt = previous.StartedAt.Add(time.Hour)
	current.Result = model.NewCrawlResult(map[string]int{"go": 8, "word": 6, "gopher": 4}, 3, 9)

	return model.Compare(previous, current)
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes run information", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"WORDCRAWL RESULT",
			"7c9e6679-7425-40de-944b-e07fc1f90ae7",
			"parallel (parallelism 4)",
			"URLs visited:   7",
			"Seeds:          2",
			"Complete",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
	})

	t.Run("ranks words by count then word", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		goIdx := strings.Index(output, "go  ")
		crawlerIdx := strings.Index(output, "crawler")
		wordIdx := strings.Index(output, "word  ")
		if goIdx < 0 || crawlerIdx < 0 || wordIdx < 0 {
			t.Fatalf("expected all popular words in output\n%s", output)
		}
		if goIdx >= crawlerIdx || crawlerIdx >= wordIdx {
			t.Errorf("expected order go, crawler, word\n%s", output)
		}
		if strings.Contains(output, "4      parallel") {
			t.Errorf("expected word outside the top 3 to be omitted\n%s", output)
		}
	})

	t.Run("lists seeds when requested", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithSeeds(true)).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "  - https://example.org/") {
			t.Errorf("expected seed list\n%s", buf.String())
		}
	})

	t.Run("reports deadline and empty result", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.DeadlineReached = true
		report.Result = model.NewCrawlResult(nil, 3, 0)

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Deadline reached") {
			t.Error("expected deadline status")
		}
		if !strings.Contains(output, "No words counted") {
			t.Error("expected empty result message")
		}
	})

	t.Run("writes comparison", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteComparison(createTestComparison()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"URLs visited: 7 -> 9 (+2)",
			"[+] gopher (4)",
			"[-] crawler (3)",
			"up 1",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
	})

	t.Run("writes unchanged comparison", func(t *testing.T) {
		t.Parallel()

		c := model.Compare(createTestReport(), createTestReport())

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteComparison(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "No changes in popular words.") {
			t.Errorf("expected unchanged message\n%s", buf.String())
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes result in rank order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := `{"wordCounts":{"go":5,"crawler":3,"word":3},"urlsVisited":7}` + "\n"
		if got := buf.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("pretty print produces valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}

		var result model.CrawlResult
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if result.URLsVisited != 7 || len(result.WordCounts) != 3 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("nil result writes empty result", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Result = nil

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := `{"wordCounts":{},"urlsVisited":0}` + "\n"
		if got := buf.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("run metadata", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithRunMetadata()).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded map[string]json.RawMessage
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		for _, key := range []string{"id", "seeds", "result", "implementation"} {
			if _, ok := decoded[key]; !ok {
				t.Errorf("expected key %q in output", key)
			}
		}
	})

	t.Run("writes comparison", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteComparison(createTestComparison()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var c model.Comparison
		if err := json.Unmarshal(buf.Bytes(), &c); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if c.VisitedDelta != 2 {
			t.Errorf("VisitedDelta = %d, want 2", c.VisitedDelta)
		}
		if len(c.Entered) != 1 || c.Entered[0].Word != "gopher" {
			t.Errorf("Entered = %+v, want [gopher]", c.Entered)
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewMarkdownWriter(&buf).Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Error("expected non-zero byte count")
		}

		output := buf.String()
		for _, want := range []string{
			"# Wordcrawl Report",
			"## Popular Words",
			"```mermaid",
			"Word Distribution",
			"[!TIP]",
			"https://example.com/",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
	})

	t.Run("warns when deadline reached", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.DeadlineReached = true

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!WARNING]") {
			t.Errorf("expected warning alert\n%s", buf.String())
		}
	})

	t.Run("empty result has no chart", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Result = model.NewCrawlResult(nil, 3, 0)

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "```mermaid") {
			t.Error("expected no chart for empty result")
		}
		if !strings.Contains(output, "[!NOTE]") {
			t.Error("expected note for run without visits")
		}
	})

	t.Run("writes comparison", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteComparison(createTestComparison()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"# Run Comparison", "## New Popular Words", "## No Longer Popular", "## Still Popular", "gopher"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
	})
}

func TestWriteToPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "result.json")
	if err := WriteToPath(path, FormatJSON, createTestReport()); err != nil {
		t.Fatalf("WriteToPath() error = %v", err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // Test file path
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var result model.CrawlResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.URLsVisited != 7 {
		t.Errorf("URLsVisited = %d, want 7", result.URLsVisited)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{name: "text", format: FormatText, want: "*report.SimpleWriter"},
		{name: "json", format: FormatJSON, want: "*report.JSONWriter"},
		{name: "markdown", format: FormatMarkdown, want: "*report.MarkdownWriter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w := New(tt.format, &buf)
			if got := typeName(w); got != tt.want {
				t.Errorf("New() = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *SimpleWriter:
		return "*report.SimpleWriter"
	case *JSONWriter:
		return "*report.JSONWriter"
	case *MarkdownWriter:
		return "*report.MarkdownWriter"
	default:
		return "unknown"
	}
}

func TestFormatHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "positive delta", got: formatDelta(3), want: "+3"},
		{name: "negative delta", got: formatDelta(-2), want: "-2"},
		{name: "zero delta", got: formatDelta(0), want: "0"},
		{name: "rank up", got: formatRankMove(2), want: "up 2"},
		{name: "rank down", got: formatRankMove(-1), want: "down 1"},
		{name: "rank same", got: formatRankMove(0), want: "same"},
		{name: "truncate long", got: truncateString("abcdefghij", 6), want: "abc..."},
		{name: "truncate short", got: truncateString("abc", 6), want: "abc"},
		{name: "escape pipe", got: escapeMarkdownTableCell("a|b"), want: `a\|b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
