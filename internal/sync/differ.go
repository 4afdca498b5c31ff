package sync

import (
	"strings"

	"github.com/shanewilkins/roadmap/models"
)

// Diff compares two issue views field by field and returns the ordered
// change set, emitting an entry only where normalized values differ.
// Fields come out in the canonical order (status, title, content). The
// comparison is pure and deterministic.
//
// Status equality is strict: todo and in_progress are different local
// statuses. Use DiffRemote when one side came from the remote tracker.
func Diff(old, new models.IssueView) models.ChangeSet {
	return diffViews(old, new, strictStatusEqual)
}

// DiffRemote compares a local view against a remote-sourced view. Status
// equality is evaluated in the remote tracker's two-state vocabulary:
// a local in_progress issue and a remote open issue are the same status
// remotely, so no phantom status change is emitted. Title and content
// compare the same way as Diff.
func DiffRemote(local, remote models.IssueView) models.ChangeSet {
	return diffViews(local, remote, remoteStatusEqual)
}

func diffViews(old, new models.IssueView, statusEqual func(a, b models.Status) bool) models.ChangeSet {
	var changes models.ChangeSet

	if !statusEqual(old.Status, new.Status) {
		changes = append(changes, models.FieldChange{
			Field: models.FieldStatus,
			Old:   old.Status.String(),
			New:   new.Status.String(),
		})
	}

	if normalizeTitle(old.Title) != normalizeTitle(new.Title) {
		changes = append(changes, models.FieldChange{
			Field: models.FieldTitle,
			Old:   old.Title,
			New:   new.Title,
		})
	}

	if normalizeContent(old.Content) != normalizeContent(new.Content) {
		changes = append(changes, models.FieldChange{
			Field: models.FieldContent,
			Old:   old.Content,
			New:   new.Content,
		})
	}

	return changes
}

func strictStatusEqual(a, b models.Status) bool {
	return a == b
}

// remoteStatusEqual projects both statuses through the status-mapping
// table: the remote tracker only distinguishes open from closed.
func remoteStatusEqual(a, b models.Status) bool {
	return a.RemoteState() == b.RemoteState()
}

func normalizeTitle(s string) string {
	return strings.TrimSpace(s)
}

// normalizeContent levels the differences that survive a round trip through
// the remote tracker's renderer: line-ending flavor and trailing blank
// space never count as a content change.
func normalizeContent(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimRight(s, " \t\n")
}
