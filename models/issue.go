package models

import (
	"time"
)

// MetadataLastSync is the key inside Issue.SyncMetadata that stores the
// RFC 3339 timestamp of the last successful sync with the remote tracker.
const MetadataLastSync = "last_sync"

// Issue is a locally tracked work item. An issue is "linked" when
// ExternalRef points at a remote tracker record; only linked issues
// participate in sync runs.
type Issue struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Status  Status `json:"status"`

	// ExternalRef is the remote issue number this issue is linked to.
	// nil means the issue has never been linked (or was unlinked).
	ExternalRef *int `json:"external_ref,omitempty"`

	// SyncMetadata is an opaque key/value map maintained by the sync
	// machinery. It carries at least MetadataLastSync for linked issues
	// that have synced successfully at least once.
	SyncMetadata map[string]string `json:"sync_metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsLinked reports whether the issue is associated with a remote record.
func (i *Issue) IsLinked() bool {
	return i.ExternalRef != nil
}

// LastSync parses the last-sync timestamp out of SyncMetadata.
// A missing or malformed value returns nil: an unknown last-sync time is
// treated as "never synced", which suppresses false conflicts rather than
// producing spurious ones.
func (i *Issue) LastSync() *time.Time {
	raw, ok := i.SyncMetadata[MetadataLastSync]
	if !ok || raw == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &ts
}

// View returns the comparable projection of the issue used by the field
// differ.
func (i *Issue) View() IssueView {
	return IssueView{
		Title:   i.Title,
		Content: i.Content,
		Status:  i.Status,
	}
}

// IssueView is the fixed comparable field set shared by local issues,
// baseline snapshots, and remote snapshots. The field differ only ever
// compares two IssueView values.
type IssueView struct {
	Title   string
	Content string
	Status  Status
}
