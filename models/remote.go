package models

import "time"

// RemoteIssue is an ephemeral snapshot of a remote tracker issue, fetched
// fresh on every sync run and never persisted.
type RemoteIssue struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	State       string    `json:"state"`
	StateReason string    `json:"state_reason,omitempty"`
	HTMLURL     string    `json:"html_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LocalView maps the remote snapshot into the local comparison vocabulary
// using the single status-mapping table in status.go.
func (r *RemoteIssue) LocalView() IssueView {
	return IssueView{
		Title:   r.Title,
		Content: r.Body,
		Status:  StatusFromRemoteState(r.State, r.StateReason),
	}
}
