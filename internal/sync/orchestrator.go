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

// Options controls a single sync run.
type Options struct {
	// DryRun detects and classifies but never writes to either side.
	DryRun bool

	// ForceLocal resolves conflicts by pushing the local values over the
	// remote record.
	ForceLocal bool

	// ForceGitHub resolves conflicts by pulling the remote values over the
	// local record. When both force flags are set ForceGitHub wins.
	ForceGitHub bool
}

// Orchestrator drives a full sync run: enumerate linked issues, detect each
// one's divergence, apply the resolution the options allow, and aggregate
// everything into a report. The orchestrator holds only wiring and is safe
// to reuse across runs.
type Orchestrator struct {
	issues   store.IssueStore
	detector *Detector
	applier  *Applier
	cfg      RemoteConfig
	log      *logger.Logger

	now func() time.Time
}

// NewOrchestrator wires an Orchestrator on top of the local storages and the
// remote tracker.
func NewOrchestrator(storages *store.Storages, tracker adapter.IssueTracker, cfg RemoteConfig, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		issues:   storages.Issues,
		detector: NewDetector(storages.Baselines, storages.Audit, tracker, log),
		applier:  NewApplier(storages.Issues, storages.Baselines, storages.Audit, tracker, log),
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Run executes one sync pass over every linked issue and returns the
// aggregated report. Run never returns a Go error: per-issue failures live
// on their outcomes, and only a failure to enumerate issues (or a cancelled
// context) sets the report-level Error.
//
// Issues are processed sequentially in stable listing order. Cancellation is
// honored between issues, never in the middle of one, so no issue is left
// half-applied.
func (o *Orchestrator) Run(ctx context.Context, opts Options) *models.SyncReport {
	report := &models.SyncReport{StartedAt: o.now()}

	all, err := o.issues.List(ctx)
	if err != nil {
		o.log.Error().Err(err).Msg("issue enumeration failed")
		report.Error = fmt.Sprintf("failed to list issues: %v", err)
		return report
	}

	for i := range all {
		issue := &all[i]
		if !issue.IsLinked() {
			continue
		}

		if err := ctx.Err(); err != nil {
			report.Error = fmt.Sprintf("sync interrupted: %v", err)
			break
		}

		outcome := o.detector.Detect(ctx, issue, o.cfg)
		detected := outcome.Error == ""

		if detected && !opts.DryRun {
			o.apply(ctx, issue, &outcome, opts)
		}

		report.TotalIssues++
		if detected {
			switch outcome.State() {
			case models.SyncNoChange:
				report.UpToDate++
			case models.SyncLocalOnly:
				report.NeedsPush++
			case models.SyncRemoteOnly:
				report.NeedsPull++
			case models.SyncConflict:
				report.Conflicts++
			}
		}
		if outcome.Pushed {
			report.Pushed++
		}
		if outcome.Pulled {
			report.Pulled++
		}
		report.Changes = append(report.Changes, outcome)
	}

	o.log.Info().
		Int("total", report.TotalIssues).
		Int("pushed", report.Pushed).
		Int("pulled", report.Pulled).
		Int("conflicts", report.Conflicts).
		Msg("sync run finished")

	return report
}

// apply executes the write the outcome's classification calls for, recording
// any apply failure on the outcome.
func (o *Orchestrator) apply(ctx context.Context, issue *models.Issue, outcome *models.SyncOutcome, opts Options) {
	switch outcome.State() {
	case models.SyncLocalOnly:
		if err := o.applier.ApplyRemote(ctx, issue, outcome.LocalChanges, o.cfg, ""); err != nil {
			outcome.Error = fmt.Sprintf("push failed: %v", err)
			return
		}
		outcome.Pushed = true

	case models.SyncRemoteOnly:
		if err := o.applier.ApplyLocal(ctx, issue, outcome.RemoteChanges, ""); err != nil {
			outcome.Error = fmt.Sprintf("pull failed: %v", err)
			return
		}
		outcome.Pulled = true

	case models.SyncConflict:
		switch {
		case opts.ForceGitHub:
			if err := o.applier.ApplyLocal(ctx, issue, outcome.RemoteChanges, ResolutionGitHub); err != nil {
				outcome.Error = fmt.Sprintf("pull failed: %v", err)
				return
			}
			outcome.Pulled = true
		case opts.ForceLocal:
			if err := o.applier.ApplyRemote(ctx, issue, forcePushChanges(issue, outcome), o.cfg, ResolutionLocal); err != nil {
				outcome.Error = fmt.Sprintf("push failed: %v", err)
				return
			}
			outcome.Pushed = true
		}
		// without a force flag the conflict is left for manual resolution
	}
}

// forcePushChanges builds the change set that makes the remote record match
// the local issue exactly during a force-local conflict resolution: the
// local edits themselves, plus an overwrite reverting every remote-side edit
// back to the current local value.
func forcePushChanges(issue *models.Issue, outcome *models.SyncOutcome) models.ChangeSet {
	byField := make(map[string]models.FieldChange, len(outcome.LocalChanges)+len(outcome.RemoteChanges))
	for _, c := range outcome.LocalChanges {
		byField[c.Field] = c
	}
	for _, c := range outcome.RemoteChanges {
		if _, ok := byField[c.Field]; ok {
			continue
		}
		byField[c.Field] = models.FieldChange{
			Field: c.Field,
			Old:   c.New,
			New:   localFieldValue(issue, c.Field),
		}
	}

	var changes models.ChangeSet
	for _, field := range models.ComparedFields {
		if c, ok := byField[field]; ok {
			changes = append(changes, c)
		}
	}
	return changes
}

func localFieldValue(issue *models.Issue, field string) string {
	switch field {
	case models.FieldStatus:
		return issue.Status.String()
	case models.FieldTitle:
		return issue.Title
	case models.FieldContent:
		return issue.Content
	default:
		return ""
	}
}
