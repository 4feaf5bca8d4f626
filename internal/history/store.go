package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wordcrawl/internal/model"
)

// FileName is the database file created inside the data directory.
const FileName = "wordcrawl.db"

// storedTimeFormat keeps a fixed width so that started_at sorts as text.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z"

// Store provides SQLite-based storage for finished runs.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the run history in dir.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, FileName)

	var dsn string
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		started_at TEXT NOT NULL,
		urls_visited INTEGER NOT NULL,
		top_word TEXT,
		summary_json TEXT NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Save stores report and returns its ID. A report without an ID gets a
// new UUID, which is also written back to report.ID.
func (s *Store) Save(ctx context.Context, report *model.RunReport) (string, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}

	summary := report.Summarize()
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to serialize summary: %w", err)
	}

	query := `
	INSERT INTO runs (id, started_at, urls_visited, top_word, summary_json, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		report.ID,
		report.StartedAt.UTC().Format(storedTimeFormat),
		summary.URLsVisited,
		summary.TopWord,
		string(summaryJSON),
		string(reportJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	return report.ID, nil
}

// Get retrieves the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*model.RunReport, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx, `SELECT report_json FROM runs WHERE id = ?`, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return decodeReport(reportJSON)
}

// Latest returns up to n runs, newest first.
func (s *Store) Latest(ctx context.Context, n int) ([]*model.RunReport, error) {
	if n <= 0 {
		return []*model.RunReport{}, nil
	}

	query := `
	SELECT report_json FROM runs
	ORDER BY started_at DESC, seq DESC
	LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest runs: %w", err)
	}
	defer rows.Close()

	reports := make([]*model.RunReport, 0, n)
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		report, err := decodeReport(reportJSON)
		if err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// List returns the summaries of all runs, newest first.
// This is cheaper than Latest when only metadata is needed.
func (s *Store) List(ctx context.Context) ([]model.RunSummary, error) {
	query := `
	SELECT id, started_at, urls_visited, top_word, summary_json
	FROM runs
	ORDER BY started_at DESC, seq DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	results := []model.RunSummary{}
	for rows.Next() {
		var (
			summary     model.RunSummary
			startedAt   string
			topWord     sql.NullString
			summaryJSON string
		)
		if err := rows.Scan(&summary.ID, &startedAt, &summary.URLsVisited, &topWord, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}

		var stored model.RunSummary
		if err := json.Unmarshal([]byte(summaryJSON), &stored); err == nil {
			summary.Seeds = stored.Seeds
			summary.PopularWords = stored.PopularWords
		}
		summary.StartedAt = parseTimestamp(startedAt)
		summary.TopWord = topWord.String

		results = append(results, summary)
	}

	return results, rows.Err()
}

// Compare diffs two stored runs. With an empty id the two most recent
// runs are compared; otherwise the run with that id is compared against
// the most recent one.
func (s *Store) Compare(ctx context.Context, id string) (*model.Comparison, error) {
	latest, err := s.Latest(ctx, 2)
	if err != nil {
		return nil, err
	}

	if id == "" {
		if len(latest) < 2 {
			return nil, ErrNotEnoughRuns
		}
		return model.Compare(latest[1], latest[0]), nil
	}

	previous, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(latest) == 0 || latest[0].ID == previous.ID {
		return nil, ErrNotEnoughRuns
	}
	return model.Compare(previous, latest[0]), nil
}

func decodeReport(reportJSON string) (*model.RunReport, error) {
	var report model.RunReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse run: %w", err)
	}
	return &report, nil
}

// timestampFormats contains the timestamp formats a stored run may carry.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	storedTimeFormat,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp parses s with the first matching format.
// If no format matches, it returns the zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
