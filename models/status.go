package models

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a local issue.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusClosed     Status = "closed"
)

// Remote vocabulary used by the GitHub issues API.
const (
	RemoteStateOpen   = "open"
	RemoteStateClosed = "closed"

	RemoteReasonCompleted  = "completed"
	RemoteReasonNotPlanned = "not_planned"
)

// ParseStatus converts a stored or user-supplied status code into a Status.
// Comparison is case-insensitive and tolerates dashes and spaces in place of
// underscores. Unknown codes return an error; callers that apply field
// changes skip the field on parse failure instead of failing the whole
// change set.
func ParseStatus(s string) (Status, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	code = strings.NewReplacer("-", "_", " ", "_").Replace(code)

	switch Status(code) {
	case StatusTodo, StatusInProgress, StatusBlocked, StatusClosed:
		return Status(code), nil
	case "done":
		// legacy alias kept for files written by older versions
		return StatusClosed, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// RemoteState projects a local status onto the remote tracker's two-state
// vocabulary. Everything that is not closed is open remotely; the remote
// tracker has no notion of in-progress or blocked.
func (s Status) RemoteState() string {
	if s == StatusClosed {
		return RemoteStateClosed
	}
	return RemoteStateOpen
}

// StatusFromRemoteState is the single source of truth for the remote→local
// status mapping. A closed remote issue maps to StatusClosed regardless of
// the close reason ("completed" and "not_planned" are not distinguished
// locally); an open or absent state maps to StatusTodo.
func StatusFromRemoteState(state, stateReason string) Status {
	_ = stateReason // reason does not change the mapping
	if strings.EqualFold(strings.TrimSpace(state), RemoteStateClosed) {
		return StatusClosed
	}
	return StatusTodo
}
