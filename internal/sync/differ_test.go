// SPDX-License-Identifier: Apache-2.0

package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanewilkins/roadmap/models"
)

func view(title, content string, status models.Status) models.IssueView {
	return models.IssueView{Title: title, Content: content, Status: status}
}

func TestDiff_NoChanges(t *testing.T) {
	v := view("Fix login", "steps to reproduce", models.StatusTodo)
	assert.True(t, Diff(v, v).Empty())
}

func TestDiff_SingleFieldChanges(t *testing.T) {
	base := view("Fix login", "body", models.StatusTodo)

	tests := []struct {
		name     string
		new      models.IssueView
		field    string
		old, val string
	}{
		{
			name:  "title changed",
			new:   view("Fix login flow", "body", models.StatusTodo),
			field: models.FieldTitle,
			old:   "Fix login",
			val:   "Fix login flow",
		},
		{
			name:  "content changed",
			new:   view("Fix login", "updated body", models.StatusTodo),
			field: models.FieldContent,
			old:   "body",
			val:   "updated body",
		},
		{
			name:  "status changed",
			new:   view("Fix login", "body", models.StatusInProgress),
			field: models.FieldStatus,
			old:   "todo",
			val:   "in_progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := Diff(base, tt.new)
			require.Len(t, changes, 1)
			assert.Equal(t, tt.field, changes[0].Field)
			assert.Equal(t, tt.old, changes[0].Old)
			assert.Equal(t, tt.val, changes[0].New)
		})
	}
}

func TestDiff_CanonicalFieldOrder(t *testing.T) {
	old := view("a", "b", models.StatusTodo)
	new := view("c", "d", models.StatusClosed)

	changes := Diff(old, new)
	assert.Equal(t, []string{models.FieldStatus, models.FieldTitle, models.FieldContent}, changes.Fields())
}

func TestDiff_Normalization(t *testing.T) {
	tests := []struct {
		name     string
		old, new models.IssueView
		want     int
	}{
		{
			name: "surrounding title whitespace ignored",
			old:  view("Fix login", "", models.StatusTodo),
			new:  view("  Fix login  ", "", models.StatusTodo),
			want: 0,
		},
		{
			name: "line ending flavor ignored",
			old:  view("t", "line one\nline two", models.StatusTodo),
			new:  view("t", "line one\r\nline two", models.StatusTodo),
			want: 0,
		},
		{
			name: "trailing blank lines ignored",
			old:  view("t", "body", models.StatusTodo),
			new:  view("t", "body\n\n", models.StatusTodo),
			want: 0,
		},
		{
			name: "interior edit still detected",
			old:  view("t", "line one\nline two", models.StatusTodo),
			new:  view("t", "line one\nline 2", models.StatusTodo),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Diff(tt.old, tt.new), tt.want)
		})
	}
}

func TestDiff_OriginalValuesPreserved(t *testing.T) {
	// Normalization drives equality only; reported values stay verbatim.
	old := view("t", "body\r\nmore", models.StatusTodo)
	new := view("t", "edited\r\nmore", models.StatusTodo)

	changes := Diff(old, new)
	require.Len(t, changes, 1)
	assert.Equal(t, "body\r\nmore", changes[0].Old)
	assert.Equal(t, "edited\r\nmore", changes[0].New)
}

func TestDiffRemote_StatusVocabulary(t *testing.T) {
	tests := []struct {
		name          string
		local, remote models.Status
		changed       bool
	}{
		{"in_progress maps to open", models.StatusInProgress, models.StatusTodo, false},
		{"blocked maps to open", models.StatusBlocked, models.StatusTodo, false},
		{"todo vs todo", models.StatusTodo, models.StatusTodo, false},
		{"open vs closed", models.StatusInProgress, models.StatusClosed, true},
		{"closed vs open", models.StatusClosed, models.StatusTodo, true},
		{"closed vs closed", models.StatusClosed, models.StatusClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := view("t", "b", tt.local)
			remote := view("t", "b", tt.remote)

			changes := DiffRemote(local, remote)
			_, ok := changes.Get(models.FieldStatus)
			assert.Equal(t, tt.changed, ok)
		})
	}
}

func TestDiffRemote_StrictForOtherFields(t *testing.T) {
	local := view("Fix login", "body", models.StatusInProgress)
	remote := view("Fix login flow", "body", models.StatusTodo)

	changes := DiffRemote(local, remote)
	require.Len(t, changes, 1)
	assert.Equal(t, models.FieldTitle, changes[0].Field)
}
