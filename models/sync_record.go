package models

import "time"

// SyncRecord is one append-only audit entry describing a sync attempt for a
// single issue. Records are never updated or deleted; the most recent
// successful record is the source of an issue's last-sync time.
type SyncRecord struct {
	ID      string `json:"id"`
	IssueID string `json:"issue_id"`

	SyncedAt time.Time `json:"synced_at"`
	Success  bool      `json:"success"`

	// Changes holds the field changes that were applied (or attempted).
	Changes ChangeSet `json:"changes,omitempty"`

	// ConflictResolution names the override that resolved a conflict
	// ("local" or "github"), empty when no conflict was involved.
	ConflictResolution string `json:"conflict_resolution,omitempty"`

	Error string `json:"error,omitempty"`
}
