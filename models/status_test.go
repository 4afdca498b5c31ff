package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Status
		wantErr bool
	}{
		{name: "todo", in: "todo", want: StatusTodo},
		{name: "in_progress", in: "in_progress", want: StatusInProgress},
		{name: "dash alias", in: "in-progress", want: StatusInProgress},
		{name: "space alias", in: "In Progress", want: StatusInProgress},
		{name: "blocked", in: "blocked", want: StatusBlocked},
		{name: "closed", in: "CLOSED", want: StatusClosed},
		{name: "legacy done", in: "done", want: StatusClosed},
		{name: "unknown", in: "wontfix", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestStatusFromRemoteState pins the single remote→local mapping table:
// closed maps to closed regardless of reason, open or missing maps to todo.
func TestStatusFromRemoteState(t *testing.T) {
	assert.Equal(t, StatusClosed, StatusFromRemoteState(RemoteStateClosed, ""))
	assert.Equal(t, StatusClosed, StatusFromRemoteState(RemoteStateClosed, RemoteReasonCompleted))
	assert.Equal(t, StatusClosed, StatusFromRemoteState(RemoteStateClosed, RemoteReasonNotPlanned))
	assert.Equal(t, StatusTodo, StatusFromRemoteState(RemoteStateOpen, ""))
	assert.Equal(t, StatusTodo, StatusFromRemoteState("", ""))
}

// TestStatus_RemoteState verifies the reverse projection: only closed issues
// are closed remotely, every other local status is open.
func TestStatus_RemoteState(t *testing.T) {
	assert.Equal(t, RemoteStateClosed, StatusClosed.RemoteState())
	assert.Equal(t, RemoteStateOpen, StatusTodo.RemoteState())
	assert.Equal(t, RemoteStateOpen, StatusInProgress.RemoteState())
	assert.Equal(t, RemoteStateOpen, StatusBlocked.RemoteState())
}
