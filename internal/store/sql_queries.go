// SPDX-License-Identifier: Apache-2.0

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/shanewilkins/roadmap/models"
)

var issueColumns = []string{
	"id", "title", "content", "status", "external_ref",
	"sync_metadata", "created_at", "updated_at",
}

var baselineColumns = []string{
	"issue_id", "title", "content", "status", "captured_at",
}

// SQLite uses "?" placeholders, which is squirrel's default format.

func buildGetIssueQuery(id string) (string, []any, error) {
	return sq.Select(issueColumns...).
		From("issues").
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildListIssuesQuery orders by id: listing order must be stable across
// runs so that sync reports are reproducible, and ids never change.
func buildListIssuesQuery() (string, []any, error) {
	return sq.Select(issueColumns...).
		From("issues").
		OrderBy("id").
		ToSql()
}

func buildUpdateIssueQuery(id string, set map[string]any, updatedAt time.Time) (string, []any, error) {
	return sq.Update("issues").
		SetMap(set).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildGetBaselineQuery(issueID string) (string, []any, error) {
	return sq.Select(baselineColumns...).
		From("baselines").
		Where(sq.Eq{"issue_id": issueID}).
		ToSql()
}

// buildPutBaselineQuery upserts: a linked issue carries exactly one
// baseline, replaced wholesale on every successful apply.
func buildPutBaselineQuery(b models.Baseline) (string, []any, error) {
	return sq.Insert("baselines").
		Columns(baselineColumns...).
		Values(b.IssueID, b.Title, b.Content, b.Status.String(), b.CapturedAt).
		Suffix(`ON CONFLICT (issue_id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			status = excluded.status,
			captured_at = excluded.captured_at`).
		ToSql()
}

func buildDeleteBaselineQuery(issueID string) (string, []any, error) {
	return sq.Delete("baselines").
		Where(sq.Eq{"issue_id": issueID}).
		ToSql()
}

func buildInsertSyncRecordQuery(rec models.SyncRecord, changesJSON string) (string, []any, error) {
	return sq.Insert("sync_records").
		Columns("id", "issue_id", "synced_at", "success", "changes", "conflict_resolution", "error").
		Values(rec.ID, rec.IssueID, rec.SyncedAt, rec.Success, changesJSON, rec.ConflictResolution, rec.Error).
		ToSql()
}

func buildLastSyncQuery(issueID string) (string, []any, error) {
	return sq.Select("synced_at").
		From("sync_records").
		Where(sq.Eq{"issue_id": issueID, "success": true}).
		OrderBy("synced_at DESC").
		Limit(1).
		ToSql()
}
