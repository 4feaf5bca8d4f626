package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nao1215/wordcrawl/internal/config"
	"github.com/nao1215/wordcrawl/internal/history"
	"github.com/nao1215/wordcrawl/internal/model"
	"github.com/nao1215/wordcrawl/internal/report"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

// errConflictingFormats is returned when both --json and --markdown are set.
var errConflictingFormats = errors.New("--json and --markdown are mutually exclusive")

// compareOptions holds the parsed flags of the compare command.
type compareOptions struct {
	withRunID string
	since     string
	format    report.Format
}

// NewCompareCmd creates the compare command.
// This command compares crawl results stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare crawl results with previous runs",
		Long: `Compare displays how the popular words changed between two stored runs.

Every 'wordcrawl crawl' saves its result in the history database unless
--no-history is given. The comparison shows:
- Words that became popular since the previous run
- Words that are no longer popular
- Rank and count changes of words popular in both runs
- The change in visited pages

Examples:
  # Compare the latest two runs
  wordcrawl compare

  # List stored runs
  wordcrawl compare --list

  # Compare a specific run with the latest one
  wordcrawl compare --with-run-id 7c9e6679-7425-40de-944b-e07fc1f90ae7

  # Compare the first run since a date with the latest one
  wordcrawl compare --since 2026-01-01

  # Output comparison in JSON format
  wordcrawl compare --json`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List stored runs")

	// Comparison target flags
	cmd.Flags().StringP("with-run-id", "i", "",
		"Compare a specific run with the latest one (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare the first run on or after this date with the latest one (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}

	opts, err := parseCompareOptions(cmd)
	if err != nil {
		return err
	}

	// Validate flags before opening the database so a usage error never
	// creates an empty history.
	store, err := history.Open(config.XDGDataDir(), history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if listRuns {
		return listHistory(ctx, store, cmd.OutOrStdout())
	}
	return runComparison(ctx, store, opts, cmd.OutOrStdout())
}

// parseCompareOptions reads and validates the comparison flags.
func parseCompareOptions(cmd *cobra.Command) (compareOptions, error) {
	var opts compareOptions
	var err error

	if opts.withRunID, err = cmd.Flags().GetString("with-run-id"); err != nil {
		return opts, err
	}
	if opts.since, err = cmd.Flags().GetString("since"); err != nil {
		return opts, err
	}
	if opts.withRunID != "" && opts.since != "" {
		return opts, errors.New("--with-run-id and --since are mutually exclusive")
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return opts, err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return opts, err
	}

	switch {
	case jsonOutput && markdownOutput:
		return opts, errConflictingFormats
	case jsonOutput:
		opts.format = report.FormatJSON
	case markdownOutput:
		opts.format = report.FormatMarkdown
	default:
		opts.format = report.FormatText
	}

	return opts, nil
}

// listHistory lists all runs stored in the history database.
func listHistory(ctx context.Context, store *history.Store, out io.Writer) error {
	runs, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs found in the history.")
		fmt.Fprintln(out, "\nUse 'wordcrawl crawl' to run a crawl.")
		return nil
	}

	fmt.Fprintf(out, "Stored runs (%d):\n\n", len(runs))

	tbl := table.New("ID", "Date", "Visited", "Words", "Top Word").WithWriter(out)
	for _, run := range runs {
		tbl.AddRow(
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.URLsVisited,
			run.PopularWords,
			formatTopWord(run.TopWord),
		)
	}
	tbl.Print()

	fmt.Fprintln(out, "\nUse 'wordcrawl compare' to compare the latest two runs.")
	fmt.Fprintln(out, "Use 'wordcrawl compare --with-run-id <id>' to compare with a specific run.")

	return nil
}

// formatTopWord returns a placeholder for runs that counted no words.
func formatTopWord(word string) string {
	if word == "" {
		return "-"
	}
	return word
}

// runComparison compares two stored runs and writes the result.
func runComparison(ctx context.Context, store *history.Store, opts compareOptions, out io.Writer) error {
	runID := opts.withRunID
	if opts.since != "" {
		id, err := firstRunSince(ctx, store, opts.since)
		if err != nil {
			return err
		}
		runID = id
	}

	comparison, err := store.Compare(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to compare runs: %w", err)
	}

	_, err = report.New(opts.format, out).WriteComparison(comparison)
	return err
}

// firstRunSince returns the ID of the oldest run started on or after date.
func firstRunSince(ctx context.Context, store *history.Store, date string) (string, error) {
	since, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}

	runs, err := store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list runs: %w", err)
	}

	// Runs are listed newest first, so walk backwards to find the oldest match.
	var found *model.RunSummary
	for i := len(runs) - 1; i >= 0; i-- {
		if !runs[i].StartedAt.Before(since) {
			found = &runs[i]
			break
		}
	}
	if found == nil {
		return "", fmt.Errorf("no runs found since %s", date)
	}
	return found.ID, nil
}
