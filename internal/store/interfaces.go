// SPDX-License-Identifier: Apache-2.0

// Package store provides local persistence for issues, baseline snapshots,
// and the append-only sync audit log, backed by a single SQLite database.
//
// The sync engine consumes only the interfaces defined here; the SQLite
// repositories are wiring detail. Absence of a record is a normal condition
// for Get methods (nil result, nil error); mutations against missing rows
// return the sentinel errors from errors.go.
package store

import (
	"context"
	"time"

	"github.com/shanewilkins/roadmap/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// IssueStore is the local issue repository.
type IssueStore interface {
	// Get returns the issue with the given id, or (nil, nil) when no such
	// issue exists.
	Get(ctx context.Context, id string) (*models.Issue, error)

	// List returns all issues in stable listing order. The order is
	// deterministic across runs so that sync reports are reproducible.
	List(ctx context.Context) ([]models.Issue, error)

	// Update applies the given field values to the issue and returns the
	// updated record. Recognized keys: "title", "content", "status"
	// (string or models.Status), and "last_sync" (RFC 3339 string merged
	// into the issue's sync metadata). Returns ErrIssueNotFound when the
	// issue does not exist.
	Update(ctx context.Context, id string, fields map[string]any) (*models.Issue, error)
}

// BaselineStore persists one baseline snapshot per linked issue.
type BaselineStore interface {
	// Get returns the baseline for the issue, or (nil, nil) when the
	// issue has never completed a sync.
	Get(ctx context.Context, issueID string) (*models.Baseline, error)

	// Put replaces the issue's baseline atomically (upsert).
	Put(ctx context.Context, baseline models.Baseline) error

	// Delete removes the issue's baseline. Deleting a missing baseline is
	// a no-op.
	Delete(ctx context.Context, issueID string) error
}

// SyncAuditLog is the append-only record of sync attempts. It doubles as
// the source of each issue's last successful sync time.
type SyncAuditLog interface {
	// Record appends one audit entry. Entries are never mutated.
	Record(ctx context.Context, record models.SyncRecord) error

	// LastSync returns the timestamp of the issue's most recent successful
	// sync, or nil when the issue has never synced successfully.
	LastSync(ctx context.Context, issueID string) (*time.Time, error)
}
