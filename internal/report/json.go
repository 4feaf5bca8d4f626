package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/wordcrawl/internal/model"
)

// JSONWriter outputs reports in JSON format.
// By default only the crawl result is written, in the form
// {"wordCounts": {...}, "urlsVisited": n} with words in rank order.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. model.CrawlResult controls its own encoding to keep rank order
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// withMetadata writes the whole RunReport instead of only the result.
	withMetadata bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// WithRunMetadata writes the run's ID, seeds and settings around the result.
func WithRunMetadata() JSONWriterOption {
	return func(w *JSONWriter) {
		w.withMetadata = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run in JSON format.
func (w *JSONWriter) Write(report *model.RunReport) (int, error) {
	if w.withMetadata {
		return w.writeJSON(report)
	}
	result := report.Result
	if result == nil {
		result = &model.CrawlResult{}
	}
	return w.writeJSON(result)
}

// WriteComparison outputs the comparison in JSON format.
func (w *JSONWriter) WriteComparison(c *model.Comparison) (int, error) {
	return w.writeJSON(c)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
