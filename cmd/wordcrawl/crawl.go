package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nao1215/wordcrawl/internal/clock"
	"github.com/nao1215/wordcrawl/internal/config"
	"github.com/nao1215/wordcrawl/internal/crawler"
	"github.com/nao1215/wordcrawl/internal/history"
	"github.com/nao1215/wordcrawl/internal/log"
	"github.com/nao1215/wordcrawl/internal/model"
	"github.com/nao1215/wordcrawl/internal/parser"
	"github.com/nao1215/wordcrawl/internal/profiler"
	"github.com/nao1215/wordcrawl/internal/report"
)

// errNoCorpus is returned when neither --corpus nor corpusPath is set.
var errNoCorpus = errors.New("no corpus specified (use --corpus or corpusPath in the configuration file)")

// metricsShutdownTimeout bounds the graceful shutdown of the metrics server.
const metricsShutdownTimeout = 5 * time.Second

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [seed-url...]",
		Short: "Crawl seed pages and count the most popular words",
		Long: `Crawl visits the seed pages and the pages they link to, up to the
maximum depth, and counts every word on every visited page.

Pages are fetched in parallel, never more than once per URL, and the
crawl stops at its deadline. Pages that fail to load are skipped. The
result lists the most popular words and the number of distinct pages
visited. Pressing Ctrl-C stops the crawl and prints the partial result.

Examples:
  # Crawl one seed page from a corpus
  wordcrawl crawl --corpus pages.yaml https://example.com/

  # Use seeds and settings from a configuration file
  wordcrawl crawl -c crawl.yaml

  # Limit depth and time, ignore PDFs and short words
  wordcrawl crawl --corpus pages.yaml -d 3 -t 2s \
    --ignore '.*\.pdf' --ignore-word '.{1,2}' https://example.com/

  # Output the result as JSON
  wordcrawl crawl --corpus pages.yaml --json https://example.com/

  # Expose Prometheus metrics while crawling
  wordcrawl crawl --corpus pages.yaml --metrics-addr :9090 https://example.com/`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Input flags
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wordcrawl in current or home directory)")
	cmd.Flags().String("corpus", "",
		"YAML corpus file the pages are read from")

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Time budget of the whole crawl")
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum link depth (a seed is depth 1, 0 visits nothing)")
	cmd.Flags().IntP("popular", "n", config.DefaultPopularWordCount,
		"Number of most popular words to report")
	cmd.Flags().IntP("parallelism", "p", 0,
		"Maximum concurrent page fetches (default: number of CPUs)")
	cmd.Flags().StringArray("ignore", nil,
		"Regular expression of URLs to skip, matched against the whole URL (repeatable)")
	cmd.Flags().StringArray("ignore-word", nil,
		"Regular expression of words not to count (repeatable)")
	cmd.Flags().String("implementation", "",
		"Crawler implementation: parallel or sequential")
	cmd.Flags().Float64("rate", 0,
		"Maximum page fetches per second (0 means unlimited)")
	cmd.Flags().String("stem", "",
		"Count words by their Snowball stem in this language (e.g. english)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON result (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write result to specified file path (creates directories if needed)")
	cmd.Flags().Bool("profile", false,
		"Print time spent per component method to stderr")

	// Integration flags
	cmd.Flags().String("metrics-addr", "",
		"Serve Prometheus metrics on this address during the crawl (e.g. :9090)")
	cmd.Flags().Bool("no-history", false,
		"Do not store the run in the history database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel on interrupt. The crawler treats cancellation like its
	// deadline, so the partial result is still reported.
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCrawl(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the configuration file and
// the command flags, in increasing order of precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	if configPath := config.FindConfigFile(cfg.ConfigFilePath); configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("corpus") {
		if cfg.CorpusPath, err = flags.GetString("corpus"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("depth") {
		if cfg.MaxDepth, err = flags.GetInt("depth"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("popular") {
		if cfg.PopularWordCount, err = flags.GetInt("popular"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("parallelism") {
		if cfg.Parallelism, err = flags.GetInt("parallelism"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("implementation") {
		if cfg.ImplementationOverride, err = flags.GetString("implementation"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("rate") {
		if cfg.RateLimit, err = flags.GetFloat64("rate"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("stem") {
		if cfg.StemLanguage, err = flags.GetString("stem"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.ResultPath, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}

	// Pattern flags add to the patterns of the configuration file.
	ignore, err := flags.GetStringArray("ignore")
	if err != nil {
		return nil, err
	}
	cfg.IgnoredURLs = append(cfg.IgnoredURLs, ignore...)

	ignoreWords, err := flags.GetStringArray("ignore-word")
	if err != nil {
		return nil, err
	}
	cfg.IgnoredWords = append(cfg.IgnoredWords, ignoreWords...)

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.Profile, err = flags.GetBool("profile"); err != nil {
		return nil, err
	}
	if cfg.MetricsAddr, err = flags.GetString("metrics-addr"); err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noHistory

	cfg.Verbose = getVerboseFlag(cmd)

	// Seeds on the command line replace the configured start pages.
	if len(args) > 0 {
		cfg.StartPages = args
	}

	return cfg, nil
}

// reportFormat returns the report format selected in cfg.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// runCrawl executes the crawl described by cfg and writes the report to
// stdout (or cfg.ResultPath). Profiling data goes to stderr.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	if cfg.CorpusPath == "" {
		return errNoCorpus
	}
	if len(cfg.StartPages) == 0 {
		logger.Warn("no start pages configured, the result will be empty")
	}

	ignoredWords, err := config.CompilePatterns(cfg.IgnoredWords)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	corpusOpts := []parser.CorpusOption{
		parser.WithIgnoredWords(ignoredWords),
		parser.WithLogger(logger),
	}
	if cfg.StemLanguage != "" {
		stemmer, err := parser.NewStemmer(cfg.StemLanguage)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		corpusOpts = append(corpusOpts, parser.WithStemmer(stemmer))
	}

	corpus, err := parser.LoadCorpus(cfg.CorpusPath, corpusOpts...)
	if err != nil {
		return err
	}
	logger.Info("corpus loaded", "path", cfg.CorpusPath, "pages", corpus.Len())

	clk := clock.NewSystem()

	var prof *profiler.Profiler
	if cfg.Profile || cfg.ProfileOutputPath != "" {
		prof = profiler.New(clk)
	}

	var p parser.Parser = corpus
	if prof != nil {
		if p, err = parser.WithProfiling(p, prof); err != nil {
			return err
		}
	}

	metrics := crawler.NewMetrics()
	if cfg.MetricsAddr != "" {
		stopMetrics, err := serveMetrics(cfg.MetricsAddr, metrics, logger)
		if err != nil {
			return err
		}
		defer stopMetrics()
	}

	c, err := crawler.New(cfg, p,
		crawler.WithClock(clk),
		crawler.WithLogger(logger),
		crawler.WithMetrics(metrics),
	)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	parallelism := 1
	if pc, ok := c.(*crawler.ParallelCrawler); ok {
		parallelism = pc.EffectiveParallelism()
	}

	if prof != nil {
		if c, err = crawler.WithProfiling(c, prof); err != nil {
			return err
		}
	}

	logger.Info("starting crawl",
		"seeds", cfg.StartPages,
		"implementation", cfg.Implementation(),
		"parallelism", parallelism,
		"maxDepth", cfg.MaxDepth,
		"timeout", cfg.Timeout,
	)

	startedAt := clk.Now()
	result, err := c.Crawl(ctx, cfg.StartPages)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}
	elapsed := clk.Now().Sub(startedAt)

	if ctx.Err() != nil {
		logger.Warn("crawl interrupted, reporting partial result")
	}

	run := &model.RunReport{
		StartedAt:       startedAt,
		Elapsed:         elapsed,
		Implementation:  cfg.Implementation(),
		Seeds:           cfg.StartPages,
		MaxDepth:        cfg.MaxDepth,
		Parallelism:     parallelism,
		Timeout:         cfg.Timeout,
		DeadlineReached: result.DeadlineReached,
		Result:          result,
	}

	if cfg.SaveToDB {
		saveRun(ctx, cfg.DBDir, run, logger)
	}

	if err := outputReport(cfg, run, stdout); err != nil {
		return err
	}

	if prof != nil {
		return writeProfile(cfg, prof, stderr)
	}
	return nil
}

// saveRun stores run in the history database. Failures are logged and
// do not fail the crawl.
func saveRun(ctx context.Context, dbDir string, run *model.RunReport, logger *slog.Logger) {
	store, err := history.Open(dbDir, history.DefaultOptions())
	if err != nil {
		logger.Error("failed to open history database", "dir", dbDir, "error", err)
		return
	}
	defer store.Close()

	// A run interrupted by a signal is still saved.
	id, err := store.Save(context.WithoutCancel(ctx), run)
	if err != nil {
		logger.Error("failed to save run", "error", err)
		return
	}
	logger.Info("run saved to history", "id", id, "path", store.Path())
}

// outputReport writes run in the format selected by cfg.
func outputReport(cfg *config.Config, run *model.RunReport, stdout io.Writer) error {
	format := reportFormat(cfg)
	if cfg.ResultPath != "" {
		return report.WriteToPath(cfg.ResultPath, format, run)
	}
	_, err := report.New(format, stdout).Write(run)
	return err
}

// writeProfile prints and persists profiling data as cfg requests.
func writeProfile(cfg *config.Config, prof *profiler.Profiler, stderr io.Writer) error {
	if cfg.Profile {
		if err := prof.WriteData(stderr); err != nil {
			return fmt.Errorf("failed to write profile: %w", err)
		}
	}
	if cfg.ProfileOutputPath != "" {
		if err := prof.WriteDataToPath(cfg.ProfileOutputPath); err != nil {
			return err
		}
	}
	return nil
}

// newMetricsHandler returns an HTTP handler serving m on /metrics.
func newMetricsHandler(m *crawler.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	return mux
}

// serveMetrics starts the metrics endpoint on addr and returns a function
// that shuts it down.
func serveMetrics(addr string, m *crawler.Metrics, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on metrics address %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           newMetricsHandler(m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown failed", "error", err)
		}
	}, nil
}
