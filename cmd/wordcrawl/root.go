package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wordcrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordcrawl",
		Short: "Parallel word-counting web crawler",
		Long: `wordcrawl crawls a set of seed pages, follows their links up to a
maximum depth, and counts how often every word occurs across the visited
pages. The crawl stops at a wall-clock deadline and reports the most
popular words together with the number of distinct pages visited.

Pages are read from a YAML corpus file, so crawls are reproducible and
need no network access. Finished runs are stored in a local history that
'wordcrawl compare' can diff.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
