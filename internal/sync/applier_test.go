// SPDX-License-Identifier: Apache-2.0

package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shanewilkins/roadmap/internal/logger"
	"github.com/shanewilkins/roadmap/internal/mock"
	"github.com/shanewilkins/roadmap/internal/store"
	"github.com/shanewilkins/roadmap/models"
)

var applyNow = time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)

func newTestApplier(ctrl *gomock.Controller) (*Applier, *mock.MockIssueStore, *mock.MockBaselineStore, *mock.MockSyncAuditLog, *mock.MockIssueTracker) {
	issues := mock.NewMockIssueStore(ctrl)
	baselines := mock.NewMockBaselineStore(ctrl)
	audit := mock.NewMockSyncAuditLog(ctrl)
	tracker := mock.NewMockIssueTracker(ctrl)

	a := NewApplier(issues, baselines, audit, tracker, logger.Nop())
	a.now = func() time.Time { return applyNow }

	return a, issues, baselines, audit, tracker
}

// ── ApplyLocal (pull) ────────────────────────────────────────────────────────

func TestApplier_ApplyLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, issues, baselines, audit, _ := newTestApplier(ctrl)
	ctx := context.Background()
	issue := linkedIssue("i1", 42, models.StatusInProgress)

	changes := models.ChangeSet{
		{Field: models.FieldStatus, Old: "in_progress", New: "closed"},
		{Field: models.FieldTitle, Old: "Fix login", New: "Fix login flow"},
	}

	updated := linkedIssue("i1", 42, models.StatusClosed)
	updated.Title = "Fix login flow"

	issues.EXPECT().Update(ctx, "i1", map[string]any{
		"status":                  models.StatusClosed,
		"title":                   "Fix login flow",
		store.UpdateFieldLastSync: applyNow.Format(time.RFC3339),
	}).Return(updated, nil)
	baselines.EXPECT().Put(ctx, models.NewBaseline(updated, applyNow)).Return(nil)
	audit.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, rec models.SyncRecord) error {
		assert.Equal(t, "i1", rec.IssueID)
		assert.True(t, rec.Success)
		assert.Equal(t, changes, rec.Changes)
		assert.Empty(t, rec.ConflictResolution)
		return nil
	})

	require.NoError(t, a.ApplyLocal(ctx, issue, changes, ""))
}

func TestApplier_ApplyLocal_SkipsUnparseableStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, issues, baselines, audit, _ := newTestApplier(ctrl)
	ctx := context.Background()
	issue := linkedIssue("i1", 42, models.StatusTodo)

	changes := models.ChangeSet{
		{Field: models.FieldStatus, Old: "todo", New: "archived"},
		{Field: models.FieldTitle, Old: "Fix login", New: "Fix login flow"},
	}

	// the bad status never reaches the store; the title still lands
	issues.EXPECT().Update(ctx, "i1", map[string]any{
		"title":                   "Fix login flow",
		store.UpdateFieldLastSync: applyNow.Format(time.RFC3339),
	}).Return(issue, nil)
	baselines.EXPECT().Put(ctx, gomock.Any()).Return(nil)
	audit.EXPECT().Record(ctx, gomock.Any()).Return(nil)

	require.NoError(t, a.ApplyLocal(ctx, issue, changes, ""))
}

func TestApplier_ApplyLocal_UpdateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, issues, _, audit, _ := newTestApplier(ctrl)
	ctx := context.Background()
	issue := linkedIssue("i1", 42, models.StatusTodo)
	changes := models.ChangeSet{{Field: models.FieldTitle, Old: "a", New: "b"}}

	issues.EXPECT().Update(ctx, "i1", gomock.Any()).Return(nil, store.ErrIssueNotFound)
	audit.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, rec models.SyncRecord) error {
		assert.False(t, rec.Success)
		assert.NotEmpty(t, rec.Error)
		return nil
	})

	err := a.ApplyLocal(ctx, issue, changes, "")
	assert.ErrorIs(t, err, store.ErrIssueNotFound)
}

func TestApplier_ApplyLocal_AuditFailureSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, issues, baselines, audit, _ := newTestApplier(ctrl)
	ctx := context.Background()
	issue := linkedIssue("i1", 42, models.StatusTodo)
	changes := models.ChangeSet{{Field: models.FieldTitle, Old: "a", New: "b"}}

	issues.EXPECT().Update(ctx, "i1", gomock.Any()).Return(issue, nil)
	baselines.EXPECT().Put(ctx, gomock.Any()).Return(nil)
	audit.EXPECT().Record(ctx, gomock.Any()).Return(errors.New("table locked"))

	assert.NoError(t, a.ApplyLocal(ctx, issue, changes, ""))
}

// ── ApplyRemote (push) ───────────────────────────────────────────────────────

func TestApplier_ApplyRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, issues, baselines, audit, tracker := newTestApplier(ctrl)
	ctx := context.Background()
	issue := linkedIssue("i1", 42, models.StatusClosed)

	changes := models.ChangeSet{
		{Field: models.FieldStatus, Old: "in_progress", New: "closed"},
		{Field: models.FieldContent, Old: "old body", New: "new body"},
	}

	tracker.EXPECT().Update(ctx, "acme", "roadmap", 42, map[string]any{
		"state": "closed",
		"body":  "new body",
	}).Return(nil)
	issues.EXPECT().Update(ctx, "i1", map[string]any{
		store.UpdateFieldLastSync: applyNow.Format(time.RFC3339),
	}).Return(issue, nil)
	baselines.EXPECT().Put(ctx, models.NewBaseline(issue, applyNow)).Return(nil)
	audit.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, rec models.SyncRecord) error {
		assert.True(t, rec.Success)
		assert.Equal(t, ResolutionLocal, rec.ConflictResolution)
		return nil
	})

	require.NoError(t, a.ApplyRemote(ctx, issue, changes, testCfg, ResolutionLocal))
}

func TestApplier_ApplyRemote_StatusProjection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, issues, baselines, audit, tracker := newTestApplier(ctrl)
	ctx := context.Background()
	issue := linkedIssue("i1", 42, models.StatusBlocked)

	// blocked has no remote equivalent; the remote issue stays open
	changes := models.ChangeSet{{Field: models.FieldStatus, Old: "todo", New: "blocked"}}

	tracker.EXPECT().Update(ctx, "acme", "roadmap", 42, map[string]any{"state": "open"}).Return(nil)
	issues.EXPECT().Update(ctx, "i1", gomock.Any()).Return(issue, nil)
	baselines.EXPECT().Put(ctx, gomock.Any()).Return(nil)
	audit.EXPECT().Record(ctx, gomock.Any()).Return(nil)

	require.NoError(t, a.ApplyRemote(ctx, issue, changes, testCfg, ""))
}

func TestApplier_ApplyRemote_TrackerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, _, _, audit, tracker := newTestApplier(ctrl)
	ctx := context.Background()
	issue := linkedIssue("i1", 42, models.StatusTodo)
	changes := models.ChangeSet{{Field: models.FieldTitle, Old: "a", New: "b"}}

	trackerErr := errors.New("http 502: bad gateway")
	tracker.EXPECT().Update(ctx, "acme", "roadmap", 42, gomock.Any()).Return(trackerErr)
	audit.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, rec models.SyncRecord) error {
		assert.False(t, rec.Success)
		assert.Contains(t, rec.Error, "502")
		return nil
	})

	err := a.ApplyRemote(ctx, issue, changes, testCfg, "")
	assert.ErrorIs(t, err, trackerErr)
}
