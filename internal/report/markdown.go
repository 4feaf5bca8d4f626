package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/wordcrawl/internal/model"
)

// maxChartSlices bounds the number of words drawn in the pie chart.
// Larger charts are unreadable in rendered Markdown.
const maxChartSlices = 10

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables and mermaid charts
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAlert(md, report)
	w.writeWords(md, report)
	w.writePieChart(md, report)
	w.writeSeeds(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Wordcrawl Report")
	md.PlainText("")

	visited := 0
	if report.Result != nil {
		visited = report.Result.URLsVisited
	}

	rows := [][]string{}
	if report.ID != "" {
		rows = append(rows, []string{"Run ID", "`" + report.ID + "`"})
	}
	rows = append(rows,
		[]string{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
		[]string{"Elapsed", report.Elapsed.Round(time.Millisecond).String()},
		[]string{"Implementation", report.Implementation},
		[]string{"Parallelism", strconv.Itoa(report.Parallelism)},
		[]string{"Max Depth", strconv.Itoa(report.MaxDepth)},
		[]string{"Timeout", report.Timeout.String()},
		[]string{"URLs Visited", strconv.Itoa(visited)},
		[]string{"Status", statusText(report)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAlert writes an alert describing how the run ended.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.RunReport) {
	switch {
	case report.DeadlineReached:
		md.Warningf("The crawl stopped at its %s deadline. Counts cover only the pages reached in time.", report.Timeout)
	case report.Result == nil || report.Result.URLsVisited == 0:
		md.Note("No pages were visited. Check the seed URLs and ignore patterns.")
	default:
		md.Tip("The crawl finished before its deadline.")
	}
	md.PlainText("")
}

// writeWords writes the popular words table.
func (w *MarkdownWriter) writeWords(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Popular Words")
	md.PlainText("")

	if report.Result == nil || len(report.Result.WordCounts) == 0 {
		md.PlainText("No words counted.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Result.WordCounts))
	for i, wc := range report.Result.WordCounts {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			escapeMarkdownTableCell(wc.Word),
			strconv.Itoa(wc.Count),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Word", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the most popular words.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.RunReport) {
	if report.Result == nil || len(report.Result.WordCounts) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Word Distribution"),
		piechart.WithShowData(true),
	)

	words := report.Result.WordCounts
	if len(words) > maxChartSlices {
		words = words[:maxChartSlices]
	}
	for _, wc := range words {
		chart.LabelAndIntValue(wc.Word, uint64(max(wc.Count, 0))) //nolint:gosec // Clamped to non-negative
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeSeeds writes the list of seed URLs.
func (w *MarkdownWriter) writeSeeds(md *markdown.Markdown, report *model.RunReport) {
	if len(report.Seeds) == 0 {
		return
	}

	md.H2("Seed Pages")
	md.PlainText("")
	md.BulletList(report.Seeds...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [wordcrawl](https://github.com/nao1215/wordcrawl)*")
}

// WriteComparison outputs the difference between two runs in Markdown format.
func (w *MarkdownWriter) WriteComparison(c *model.Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Run Comparison")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"", "Previous", "Current"},
		Rows: [][]string{
			{"Run ID", "`" + c.Previous.ID + "`", "`" + c.Current.ID + "`"},
			{"Started", c.Previous.StartedAt.Format("2006-01-02 15:04:05"), c.Current.StartedAt.Format("2006-01-02 15:04:05")},
			{"URLs Visited", strconv.Itoa(c.Previous.URLsVisited), strconv.Itoa(c.Current.URLsVisited)},
			{"Top Word", escapeMarkdownTableCell(c.Previous.TopWord), escapeMarkdownTableCell(c.Current.TopWord)},
		},
	})
	md.PlainText("")

	if c.Unchanged() {
		md.Note("No changes in popular words.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	if len(c.Entered) > 0 {
		md.H2("New Popular Words")
		md.PlainText("")
		md.Table(wordCountTable(c.Entered))
		md.PlainText("")
	}

	if len(c.Left) > 0 {
		md.H2("No Longer Popular")
		md.PlainText("")
		md.Table(wordCountTable(c.Left))
		md.PlainText("")
	}

	if len(c.Changed) > 0 {
		md.H2("Still Popular")
		md.PlainText("")
		rows := make([][]string, 0, len(c.Changed))
		for _, ch := range c.Changed {
			rows = append(rows, []string{
				escapeMarkdownTableCell(ch.Word),
				strconv.Itoa(ch.PreviousRank),
				strconv.Itoa(ch.CurrentRank),
				formatRankMove(ch.RankDelta()),
				formatDelta(ch.CountDelta()),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Word", "Was", "Now", "Move", "Count Change"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

func wordCountTable(words []model.WordCount) markdown.TableSet {
	rows := make([][]string, 0, len(words))
	for _, wc := range words {
		rows = append(rows, []string{escapeMarkdownTableCell(wc.Word), strconv.Itoa(wc.Count)})
	}
	return markdown.TableSet{
		Header: []string{"Word", "Count"},
		Rows:   rows,
	}
}

// escapeMarkdownTableCell escapes characters that break table rows.
func escapeMarkdownTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
