package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shanewilkins/roadmap/internal/logger"
	"github.com/shanewilkins/roadmap/models"
)

// baselineRepository is the SQLite-backed implementation of [BaselineStore].
type baselineRepository struct {
	*DB
	logger *logger.Logger
}

// NewBaselineRepository constructs a [BaselineStore] backed by the provided
// database connection and logger.
func NewBaselineRepository(db *DB, logger *logger.Logger) BaselineStore {
	return &baselineRepository{
		DB:     db,
		logger: logger,
	}
}

// Get returns the baseline snapshot for issueID, or (nil, nil) when the
// issue has never completed a sync.
func (r *baselineRepository) Get(ctx context.Context, issueID string) (*models.Baseline, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetBaselineQuery(issueID)
	if err != nil {
		log.Err(err).
			Str("func", "baselineRepository.Get").
			Str("issue_id", issueID).
			Msg("failed to create query")
		return nil, err
	}

	var (
		b      models.Baseline
		status string
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&b.IssueID,
		&b.Title,
		&b.Content,
		&status,
		&b.CapturedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Err(err).
			Str("func", "baselineRepository.Get").
			Str("issue_id", issueID).
			Msg("failed to scan baseline row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	parsed, err := models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	b.Status = parsed

	return &b, nil
}

// Put replaces the issue's baseline atomically via upsert.
func (r *baselineRepository) Put(ctx context.Context, baseline models.Baseline) error {
	log := logger.FromContext(ctx)

	query, args, err := buildPutBaselineQuery(baseline)
	if err != nil {
		log.Err(err).
			Str("func", "baselineRepository.Put").
			Str("issue_id", baseline.IssueID).
			Msg("failed to create query")
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "baselineRepository.Put").
			Str("issue_id", baseline.IssueID).
			Msg("failed to upsert baseline")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Delete removes the issue's baseline; deleting a missing baseline is a no-op.
func (r *baselineRepository) Delete(ctx context.Context, issueID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteBaselineQuery(issueID)
	if err != nil {
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "baselineRepository.Delete").
			Str("issue_id", issueID).
			Msg("failed to delete baseline")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
