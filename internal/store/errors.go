package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrIssueNotFound is returned when an update targets an issue id that
	// does not exist in the database.
	ErrIssueNotFound = errors.New("issue was not found")

	// ErrExecutingQuery wraps failures to execute a SQL statement.
	ErrExecutingQuery = errors.New("error executing query")

	// ErrScanningRow wraps failures to scan a result row into a model.
	ErrScanningRow = errors.New("error scanning row")
)
