package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shanewilkins/roadmap/internal/logger"
	"github.com/shanewilkins/roadmap/models"
)

// auditRepository is the SQLite-backed implementation of [SyncAuditLog].
// Rows are append-only; nothing here updates or deletes.
type auditRepository struct {
	*DB
	logger *logger.Logger
}

// NewAuditRepository constructs a [SyncAuditLog] backed by the provided
// database connection and logger.
func NewAuditRepository(db *DB, logger *logger.Logger) SyncAuditLog {
	return &auditRepository{
		DB:     db,
		logger: logger,
	}
}

// Record appends one audit entry. A zero ID is assigned a fresh UUID and a
// zero SyncedAt gets the current time, so callers only fill what they know.
func (r *auditRepository) Record(ctx context.Context, record models.SyncRecord) error {
	log := logger.FromContext(ctx)

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.SyncedAt.IsZero() {
		record.SyncedAt = time.Now().UTC()
	}

	changesJSON, err := json.Marshal(record.Changes)
	if err != nil {
		return fmt.Errorf("encode sync record changes: %w", err)
	}

	query, args, err := buildInsertSyncRecordQuery(record, string(changesJSON))
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.Record").
			Str("issue_id", record.IssueID).
			Msg("failed to create query")
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "auditRepository.Record").
			Str("issue_id", record.IssueID).
			Bool("success", record.Success).
			Msg("failed to insert sync record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// LastSync returns the most recent successful sync time for issueID, or nil
// when no successful sync is on record.
func (r *auditRepository) LastSync(ctx context.Context, issueID string) (*time.Time, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLastSyncQuery(issueID)
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.LastSync").
			Str("issue_id", issueID).
			Msg("failed to create query")
		return nil, err
	}

	var syncedAt time.Time
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&syncedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Err(err).
			Str("func", "auditRepository.LastSync").
			Str("issue_id", issueID).
			Msg("failed to scan last sync time")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &syncedAt, nil
}
