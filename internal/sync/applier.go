package sync

import (
	"context"
	"time"

	"github.com/shanewilkins/roadmap/internal/adapter"
	"github.com/shanewilkins/roadmap/internal/logger"
	"github.com/shanewilkins/roadmap/internal/store"
	"github.com/shanewilkins/roadmap/models"
)

// Conflict resolution labels recorded in the audit log.
const (
	ResolutionLocal  = "local"
	ResolutionGitHub = "github"
)

// Applier executes the write half of a sync: pulling remote field values
// into the local store or pushing local values to the remote tracker. Every
// successful apply in either direction refreshes the issue's baseline, its
// last-sync metadata, and the audit log, so the next run classifies the
// issue as up to date.
type Applier struct {
	issues    store.IssueStore
	baselines store.BaselineStore
	audit     store.SyncAuditLog
	tracker   adapter.IssueTracker
	log       *logger.Logger

	now func() time.Time
}

// NewApplier wires an Applier from its collaborators.
func NewApplier(issues store.IssueStore, baselines store.BaselineStore, audit store.SyncAuditLog, tracker adapter.IssueTracker, log *logger.Logger) *Applier {
	return &Applier{
		issues:    issues,
		baselines: baselines,
		audit:     audit,
		tracker:   tracker,
		log:       log,
		now:       time.Now,
	}
}

// ApplyLocal pulls the given changes into the local issue. Each change's New
// value is written to the corresponding local field; a status value that does
// not parse is skipped with a warning rather than failing the whole set.
// On success the baseline is replaced, the last-sync metadata updated, and a
// successful audit record appended. resolution labels the conflict override
// that triggered the pull, empty for a plain pull.
func (a *Applier) ApplyLocal(ctx context.Context, issue *models.Issue, changes models.ChangeSet, resolution string) error {
	now := a.now()

	fields := make(map[string]any, len(changes)+1)
	for _, c := range changes {
		switch c.Field {
		case models.FieldTitle:
			fields[models.FieldTitle] = c.New
		case models.FieldContent:
			fields[models.FieldContent] = c.New
		case models.FieldStatus:
			status, err := models.ParseStatus(c.New)
			if err != nil {
				a.log.Warn().Err(err).
					Str("issue_id", issue.ID).
					Str("value", c.New).
					Msg("skipping unparseable status change")
				continue
			}
			fields[models.FieldStatus] = status
		}
	}
	fields[store.UpdateFieldLastSync] = now.Format(time.RFC3339)

	updated, err := a.issues.Update(ctx, issue.ID, fields)
	if err != nil {
		a.recordAudit(ctx, issue.ID, false, changes, resolution, err)
		return err
	}

	if err := a.baselines.Put(ctx, models.NewBaseline(updated, now)); err != nil {
		a.recordAudit(ctx, issue.ID, false, changes, resolution, err)
		return err
	}

	a.recordAudit(ctx, issue.ID, true, changes, resolution, nil)
	a.log.Info().
		Str("issue_id", issue.ID).
		Int("fields", len(changes)).
		Msg("pulled remote changes")
	return nil
}

// ApplyRemote pushes the given changes to the remote tracker, translating
// each field into the remote vocabulary (content becomes body, status is
// projected onto open/closed). The local record is not content-modified,
// but its last-sync metadata, baseline, and audit trail are refreshed so
// both sides agree on the new common ancestor. resolution labels the
// conflict override that triggered the push, empty for a plain push.
func (a *Applier) ApplyRemote(ctx context.Context, issue *models.Issue, changes models.ChangeSet, cfg RemoteConfig, resolution string) error {
	now := a.now()
	number := *issue.ExternalRef

	fields := make(map[string]any, len(changes))
	for _, c := range changes {
		switch c.Field {
		case models.FieldTitle:
			fields["title"] = c.New
		case models.FieldContent:
			fields["body"] = c.New
		case models.FieldStatus:
			status, err := models.ParseStatus(c.New)
			if err != nil {
				a.log.Warn().Err(err).
					Str("issue_id", issue.ID).
					Str("value", c.New).
					Msg("skipping unparseable status change")
				continue
			}
			fields["state"] = status.RemoteState()
		}
	}

	if err := a.tracker.Update(ctx, cfg.Owner, cfg.Repo, number, fields); err != nil {
		a.recordAudit(ctx, issue.ID, false, changes, resolution, err)
		return err
	}

	updated, err := a.issues.Update(ctx, issue.ID, map[string]any{
		store.UpdateFieldLastSync: now.Format(time.RFC3339),
	})
	if err != nil {
		a.recordAudit(ctx, issue.ID, false, changes, resolution, err)
		return err
	}

	if err := a.baselines.Put(ctx, models.NewBaseline(updated, now)); err != nil {
		a.recordAudit(ctx, issue.ID, false, changes, resolution, err)
		return err
	}

	a.recordAudit(ctx, issue.ID, true, changes, resolution, nil)
	a.log.Info().
		Str("issue_id", issue.ID).
		Int("number", number).
		Int("fields", len(changes)).
		Msg("pushed local changes")
	return nil
}

// recordAudit appends one audit entry. An audit write failure is logged and
// swallowed: the apply itself already happened (or already failed), and the
// audit log must never decide an issue's fate.
func (a *Applier) recordAudit(ctx context.Context, issueID string, success bool, changes models.ChangeSet, resolution string, applyErr error) {
	record := models.SyncRecord{
		IssueID:            issueID,
		SyncedAt:           a.now(),
		Success:            success,
		Changes:            changes,
		ConflictResolution: resolution,
	}
	if applyErr != nil {
		record.Error = applyErr.Error()
	}
	if err := a.audit.Record(ctx, record); err != nil {
		a.log.Warn().Err(err).
			Str("issue_id", issueID).
			Msg("audit record write failed")
	}
}
