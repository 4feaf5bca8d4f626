package history

import "errors"

var (
	// ErrDatabaseNotFound is returned when opening a missing database
	// without CreateIfNotExists.
	ErrDatabaseNotFound = errors.New("history database not found")

	// ErrRunNotFound is returned when no run has the requested ID.
	ErrRunNotFound = errors.New("run not found")

	// ErrNotEnoughRuns is returned when a comparison needs more stored runs.
	ErrNotEnoughRuns = errors.New("at least two runs are needed for comparison")
)
