// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanewilkins/roadmap/internal/logger"
	"github.com/shanewilkins/roadmap/models"
)

const selectBaselineSQL = `SELECT issue_id, title, content, status, captured_at FROM baselines`

func TestBaselineRepository_Get(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBaselineRepository(newDBFromSQL(db), logger.Nop())
	capturedAt := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectBaselineSQL)).
		WithArgs("issue-1").
		WillReturnRows(sqlmock.NewRows(baselineColumns).
			AddRow("issue-1", "Fix login", "steps", "in_progress", capturedAt))

	b, err := repo.Get(testContext(), "issue-1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, models.StatusInProgress, b.Status)
	assert.Equal(t, capturedAt, b.CapturedAt)
}

func TestBaselineRepository_Get_NeverSynced(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBaselineRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(selectBaselineSQL)).
		WithArgs("issue-1").
		WillReturnRows(sqlmock.NewRows(baselineColumns))

	b, err := repo.Get(testContext(), "issue-1")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestBaselineRepository_Get_BadStatus(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBaselineRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(selectBaselineSQL)).
		WithArgs("issue-1").
		WillReturnRows(sqlmock.NewRows(baselineColumns).
			AddRow("issue-1", "t", "c", "archived", time.Now()))

	_, err := repo.Get(testContext(), "issue-1")
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestBaselineRepository_Put(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBaselineRepository(newDBFromSQL(db), logger.Nop())
	capturedAt := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	b := models.Baseline{
		IssueID:    "issue-1",
		Title:      "Fix login",
		Content:    "steps",
		Status:     models.StatusClosed,
		CapturedAt: capturedAt,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO baselines")).
		WithArgs("issue-1", "Fix login", "steps", "closed", capturedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Put(testContext(), b))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBaselineRepository_Put_ExecError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBaselineRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO baselines")).
		WillReturnError(errors.New("database is locked"))

	err := repo.Put(testContext(), models.Baseline{IssueID: "issue-1", Status: models.StatusTodo})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestBaselineRepository_Delete(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBaselineRepository(newDBFromSQL(db), logger.Nop())

	// deleting a missing baseline affects zero rows and is still a no-op
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM baselines")).
		WithArgs("issue-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(testContext(), "issue-1"))
}
