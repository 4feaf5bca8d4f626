package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/wordcrawl/internal/model"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the
// same API.
type Writer interface {
	// Write outputs a finished run.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.RunReport) (int, error)

	// WriteComparison outputs the difference between two runs.
	WriteComparison(c *model.Comparison) (int, error)
}

// Format selects a Writer implementation.
type Format int

const (
	// FormatText is the human-readable terminal format.
	FormatText Format = iota
	// FormatJSON is the JSON format.
	FormatJSON
	// FormatMarkdown is the Markdown format.
	FormatMarkdown
)

// New returns a Writer for format that writes to output.
func New(format Format, output io.Writer) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewSimpleWriter(output)
	}
}

// WriteToPath writes report to the file at path in the given format,
// creating parent directories as needed. An existing file is replaced.
func WriteToPath(path string, format Format, report *model.RunReport) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	_, err = New(format, f).Write(report)
	return err
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}

// formatRankMove describes how far a word moved in the ranking.
func formatRankMove(delta int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("up %d", delta)
	case delta < 0:
		return fmt.Sprintf("down %d", -delta)
	default:
		return "same"
	}
}

// statusText summarizes how a run ended.
func statusText(report *model.RunReport) string {
	if report.DeadlineReached {
		return "Deadline reached (partial results)"
	}
	return "Complete"
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
