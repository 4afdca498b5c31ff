package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/shanewilkins/roadmap/internal/adapter"
	"github.com/shanewilkins/roadmap/internal/logger"
	"github.com/shanewilkins/roadmap/internal/store"
	"github.com/shanewilkins/roadmap/models"
)

// RemoteConfig carries the remote tracker coordinates a sync run works
// against. The engine treats an incomplete config as a per-issue failure
// rather than refusing to start, so a run over a mixed set of issues can
// still report local-only findings.
type RemoteConfig struct {
	Token string
	Owner string
	Repo  string
}

// IsComplete reports whether every coordinate needed to reach the remote
// tracker is present.
func (c RemoteConfig) IsComplete() bool {
	return c.Token != "" && c.Owner != "" && c.Repo != ""
}

// Detector performs the three-way comparison for a single issue: baseline
// against local, baseline against remote, then conflict classification.
// It never mutates anything; applying changes is the Applier's job.
type Detector struct {
	baselines store.BaselineStore
	audit     store.SyncAuditLog
	tracker   adapter.IssueTracker
	log       *logger.Logger
}

// NewDetector wires a Detector from its collaborators.
func NewDetector(baselines store.BaselineStore, audit store.SyncAuditLog, tracker adapter.IssueTracker, log *logger.Logger) *Detector {
	return &Detector{
		baselines: baselines,
		audit:     audit,
		tracker:   tracker,
		log:       log,
	}
}

// Detect compares one issue against its baseline and its remote record and
// returns the populated outcome. Failures are recorded on the outcome's
// Error field, never returned: one bad issue must not stop the run.
//
// The comparison is three-way when a baseline snapshot exists (changes on
// each side are measured against the baseline) and falls back to a two-way
// local-vs-remote comparison when it does not. In the two-way case every
// divergence is attributed to the remote side, since there is nothing to
// prove the local copy moved.
func (d *Detector) Detect(ctx context.Context, issue *models.Issue, cfg RemoteConfig) models.SyncOutcome {
	outcome := models.SyncOutcome{
		IssueID:    issue.ID,
		IssueTitle: issue.Title,
	}

	if !issue.IsLinked() {
		outcome.Error = fmt.Sprintf("issue %s is not linked to a remote issue", issue.ID)
		return outcome
	}
	if !cfg.IsComplete() {
		outcome.Error = "config incomplete: missing remote token, owner, or repo"
		return outcome
	}

	number := *issue.ExternalRef

	remote, err := d.tracker.Fetch(ctx, cfg.Owner, cfg.Repo, number)
	if err != nil {
		d.log.Warn().Err(err).
			Str("issue_id", issue.ID).
			Int("number", number).
			Msg("remote fetch failed")
		outcome.Error = fmt.Sprintf("failed to fetch remote issue #%d: %v", number, err)
		return outcome
	}

	baseline := d.loadBaseline(ctx, issue.ID)
	if baseline != nil {
		outcome.ThreeWay = true
		capturedAt := baseline.CapturedAt
		outcome.BaselineAt = &capturedAt
		outcome.LocalChanges = Diff(baseline.View(), issue.View())
	}

	if remote == nil {
		// The remote record is gone. Surface the deletion as a remote
		// status change to closed so a pull closes the local issue.
		outcome.RemoteDeleted = true
		if issue.Status != models.StatusClosed {
			outcome.RemoteChanges = models.ChangeSet{{
				Field: models.FieldStatus,
				Old:   issue.Status.String(),
				New:   models.StatusClosed.String(),
			}}
		}
	} else if baseline != nil {
		outcome.RemoteChanges = DiffRemote(baseline.View(), remote.LocalView())
	} else {
		outcome.RemoteChanges = DiffRemote(issue.View(), remote.LocalView())
	}

	if !outcome.LocalChanges.Empty() && !outcome.RemoteChanges.Empty() {
		// Both sides moved. That is only a conflict when we know the two
		// sides ever agreed: without a last-sync time there is no common
		// ancestor to have diverged from.
		if lastSync := d.lastSync(ctx, issue); lastSync != nil {
			outcome.Conflict = true
		}
	}

	d.log.Debug().
		Str("issue_id", issue.ID).
		Bool("three_way", outcome.ThreeWay).
		Str("state", outcome.State().String()).
		Int("local_changes", len(outcome.LocalChanges)).
		Int("remote_changes", len(outcome.RemoteChanges)).
		Msg("issue classified")

	return outcome
}

// loadBaseline fetches the issue's baseline. A read failure downgrades the
// comparison to two-way instead of failing the issue.
func (d *Detector) loadBaseline(ctx context.Context, issueID string) *models.Baseline {
	baseline, err := d.baselines.Get(ctx, issueID)
	if err != nil {
		d.log.Warn().Err(err).
			Str("issue_id", issueID).
			Msg("baseline read failed, falling back to two-way comparison")
		return nil
	}
	return baseline
}

// lastSync resolves the issue's last successful sync time: the audit log is
// authoritative, the issue's own sync metadata is the fallback for records
// written before the audit log existed.
func (d *Detector) lastSync(ctx context.Context, issue *models.Issue) *time.Time {
	ts, err := d.audit.LastSync(ctx, issue.ID)
	if err != nil {
		d.log.Warn().Err(err).
			Str("issue_id", issue.ID).
			Msg("audit lookup failed, using issue metadata")
	}
	if ts != nil {
		return ts
	}
	return issue.LastSync()
}
