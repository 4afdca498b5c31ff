package models

import "time"

// Baseline is the snapshot of an issue's synced fields captured at the last
// successful sync. Exactly one baseline exists per linked issue; it is
// replaced atomically after each successful apply and deleted on unlink,
// never partially merged.
type Baseline struct {
	IssueID    string    `json:"issue_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Status     Status    `json:"status"`
	CapturedAt time.Time `json:"captured_at"`
}

// NewBaseline captures the given issue's comparable fields at time now.
func NewBaseline(issue *Issue, now time.Time) Baseline {
	return Baseline{
		IssueID:    issue.ID,
		Title:      issue.Title,
		Content:    issue.Content,
		Status:     issue.Status,
		CapturedAt: now,
	}
}

// View returns the comparable projection of the baseline.
func (b *Baseline) View() IssueView {
	return IssueView{
		Title:   b.Title,
		Content: b.Content,
		Status:  b.Status,
	}
}
