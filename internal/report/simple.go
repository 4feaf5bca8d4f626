package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/wordcrawl/internal/model"
)

const ruleWidth = 60

// SimpleWriter outputs human-readable text reports.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Word rankings read fine without color
type SimpleWriter struct {
	baseWriter

	// showSeeds lists every seed URL instead of only their number.
	showSeeds bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithSeeds lists the seed URLs in the report header.
func WithSeeds(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showSeeds = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeWords(&sb, report)
	writeRule(&sb, "=")

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	writeRule(sb, "=")
	sb.WriteString("                    WORDCRAWL RESULT\n")
	writeRule(sb, "=")
	sb.WriteString("\n")

	if report.ID != "" {
		fmt.Fprintf(sb, "Run ID:         %s\n", report.ID)
	}
	fmt.Fprintf(sb, "Started:        %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Elapsed:        %s\n", report.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(sb, "Implementation: %s (parallelism %d)\n", report.Implementation, report.Parallelism)
	fmt.Fprintf(sb, "Max depth:      %d\n", report.MaxDepth)
	if w.showSeeds {
		sb.WriteString("Seeds:\n")
		for _, seed := range report.Seeds {
			fmt.Fprintf(sb, "  - %s\n", seed)
		}
	} else {
		fmt.Fprintf(sb, "Seeds:          %d\n", len(report.Seeds))
	}
	if report.Result != nil {
		fmt.Fprintf(sb, "URLs visited:   %d\n", report.Result.URLsVisited)
	}
	fmt.Fprintf(sb, "Status:         %s\n", statusText(report))
	sb.WriteString("\n")
}

// writeWords writes the ranking of popular words.
func (w *SimpleWriter) writeWords(sb *strings.Builder, report *model.RunReport) {
	writeRule(sb, "-")
	sb.WriteString("POPULAR WORDS\n")
	writeRule(sb, "-")
	sb.WriteString("\n")

	if report.Result == nil || len(report.Result.WordCounts) == 0 {
		sb.WriteString("  No words counted\n\n")
		return
	}

	fmt.Fprintf(sb, "  %-5s  %-30s  %s\n", "Rank", "Word", "Count")
	for i, wc := range report.Result.WordCounts {
		fmt.Fprintf(sb, "  %-5d  %-30s  %d\n", i+1, truncateString(wc.Word, 30), wc.Count)
	}
	sb.WriteString("\n")
}

// WriteComparison outputs the difference between two runs.
func (w *SimpleWriter) WriteComparison(c *model.Comparison) (int, error) {
	var sb strings.Builder

	sb.WriteString("Run Comparison\n")
	writeRule(&sb, "=")
	fmt.Fprintf(&sb, "\nPrevious run: %s  %s\n", c.Previous.ID, c.Previous.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Current run:  %s  %s\n", c.Current.ID, c.Current.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "\nURLs visited: %d -> %d (%s)\n",
		c.Previous.URLsVisited, c.Current.URLsVisited, formatDelta(c.VisitedDelta))

	if c.Unchanged() {
		sb.WriteString("\nNo changes in popular words.\n")
		return io.WriteString(w.output, sb.String())
	}

	if len(c.Entered) > 0 {
		fmt.Fprintf(&sb, "\nNew popular words (%d):\n", len(c.Entered))
		for _, wc := range c.Entered {
			fmt.Fprintf(&sb, "  [+] %s (%d)\n", wc.Word, wc.Count)
		}
	}

	if len(c.Left) > 0 {
		fmt.Fprintf(&sb, "\nNo longer popular (%d):\n", len(c.Left))
		for _, wc := range c.Left {
			fmt.Fprintf(&sb, "  [-] %s (%d)\n", wc.Word, wc.Count)
		}
	}

	if len(c.Changed) > 0 {
		sb.WriteString("\nStill popular:\n")
		fmt.Fprintf(&sb, "  %-20s  %-6s  %-6s  %-8s  %s\n", "Word", "Was", "Now", "Move", "Count")
		writeIndentedRule(&sb, 2, 56)
		for _, ch := range c.Changed {
			fmt.Fprintf(&sb, "  %-20s  %-6d  %-6d  %-8s  %d (%s)\n",
				truncateString(ch.Word, 20), ch.PreviousRank, ch.CurrentRank,
				formatRankMove(ch.RankDelta()), ch.CurrentCount, formatDelta(ch.CountDelta()))
		}
	}

	return io.WriteString(w.output, sb.String())
}

func writeRule(sb *strings.Builder, char string) {
	sb.WriteString(strings.Repeat(char, ruleWidth))
	sb.WriteString("\n")
}

func writeIndentedRule(sb *strings.Builder, indent, width int) {
	sb.WriteString(strings.Repeat(" ", indent))
	sb.WriteString(strings.Repeat("-", width))
	sb.WriteString("\n")
}
