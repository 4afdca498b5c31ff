package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shanewilkins/roadmap/internal/logger"
	"github.com/shanewilkins/roadmap/models"
)

// UpdateFieldLastSync is the [IssueStore.Update] key that merges a new
// last-sync timestamp into the issue's sync metadata instead of replacing a
// column of its own.
const UpdateFieldLastSync = "last_sync"

// issueRepository is the SQLite-backed implementation of [IssueStore].
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so all database interactions are traced with
// structured fields (issue_id, changed field names, etc.).
type issueRepository struct {
	*DB
	logger *logger.Logger
}

// NewIssueRepository constructs an [IssueStore] backed by the provided
// database connection and logger.
func NewIssueRepository(db *DB, logger *logger.Logger) IssueStore {
	return &issueRepository{
		DB:     db,
		logger: logger,
	}
}

// Get retrieves a single issue by id. A missing issue is (nil, nil).
func (r *issueRepository) Get(ctx context.Context, id string) (*models.Issue, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetIssueQuery(id)
	if err != nil {
		log.Err(err).
			Str("func", "issueRepository.Get").
			Str("issue_id", id).
			Msg("failed to create query")
		return nil, err
	}

	row := r.DB.QueryRowContext(ctx, query, args...)
	issue, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Err(err).
			Str("func", "issueRepository.Get").
			Str("issue_id", id).
			Msg("failed to scan issue row")
		return nil, err
	}

	return issue, nil
}

// List returns all issues ordered by id.
func (r *issueRepository) List(ctx context.Context) ([]models.Issue, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListIssuesQuery()
	if err != nil {
		log.Err(err).
			Str("func", "issueRepository.List").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "issueRepository.List").
			Msg("failed to execute query for listing issues")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	issues := make([]models.Issue, 0, 32)
	for rows.Next() {
		issue, scanErr := scanIssue(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "issueRepository.List").
				Msg("failed to scan issue row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		issues = append(issues, *issue)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return issues, nil
}

// Update applies recognized field values (see [IssueStore.Update]) and
// returns the refreshed issue.
func (r *issueRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Issue, error) {
	log := logger.FromContext(ctx)

	current, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrIssueNotFound
	}

	set, err := updateSetClauses(current, fields)
	if err != nil {
		log.Err(err).
			Str("func", "issueRepository.Update").
			Str("issue_id", id).
			Msg("invalid update fields")
		return nil, err
	}
	if len(set) == 0 {
		return current, nil
	}

	query, args, err := buildUpdateIssueQuery(id, set, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "issueRepository.Update").
			Str("issue_id", id).
			Msg("failed to execute update query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.Get(ctx, id)
}

// updateSetClauses translates the caller-facing field map into column
// assignments. The last-sync key is merged into the sync_metadata JSON
// instead of overwriting it.
func updateSetClauses(current *models.Issue, fields map[string]any) (map[string]any, error) {
	set := make(map[string]any, len(fields))

	for key, value := range fields {
		switch key {
		case models.FieldTitle:
			set["title"] = fmt.Sprint(value)
		case models.FieldContent:
			set["content"] = fmt.Sprint(value)
		case models.FieldStatus:
			status, ok := value.(models.Status)
			if !ok {
				parsed, err := models.ParseStatus(fmt.Sprint(value))
				if err != nil {
					return nil, err
				}
				status = parsed
			}
			set["status"] = status.String()
		case UpdateFieldLastSync:
			meta := make(map[string]string, len(current.SyncMetadata)+1)
			for k, v := range current.SyncMetadata {
				meta[k] = v
			}
			meta[models.MetadataLastSync] = fmt.Sprint(value)
			encoded, err := json.Marshal(meta)
			if err != nil {
				return nil, err
			}
			set["sync_metadata"] = string(encoded)
		default:
			return nil, fmt.Errorf("unknown update field %q", key)
		}
	}

	return set, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanIssue(row rowScanner) (*models.Issue, error) {
	var (
		issue       models.Issue
		status      string
		externalRef sql.NullInt64
		rawMetadata string
	)

	err := row.Scan(
		&issue.ID,
		&issue.Title,
		&issue.Content,
		&status,
		&externalRef,
		&rawMetadata,
		&issue.CreatedAt,
		&issue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	issue.Status = parsed

	if externalRef.Valid {
		ref := int(externalRef.Int64)
		issue.ExternalRef = &ref
	}

	if rawMetadata != "" {
		if err = json.Unmarshal([]byte(rawMetadata), &issue.SyncMetadata); err != nil {
			// malformed metadata must not poison the whole issue; the
			// engine treats a missing last-sync as "never synced"
			issue.SyncMetadata = nil
		}
	}

	return &issue, nil
}
