package models

import "time"

// SyncState is the four-way classification of a single issue's divergence.
// Exactly one state applies to every (local, remote) change-set pair.
type SyncState int

const (
	// SyncNoChange means neither side diverged from the baseline.
	SyncNoChange SyncState = iota
	// SyncLocalOnly means only the local issue changed; it needs a push.
	SyncLocalOnly
	// SyncRemoteOnly means only the remote issue changed; it needs a pull.
	SyncRemoteOnly
	// SyncConflict means both sides changed since the last known sync.
	SyncConflict
)

// String implements fmt.Stringer.
func (s SyncState) String() string {
	switch s {
	case SyncNoChange:
		return "no_change"
	case SyncLocalOnly:
		return "local_only"
	case SyncRemoteOnly:
		return "remote_only"
	case SyncConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// SyncOutcome is the per-issue result of one detection (and optional apply)
// pass. Per-issue failures live here as data; they are never raised to the
// orchestrator's caller.
type SyncOutcome struct {
	IssueID    string `json:"issue_id"`
	IssueTitle string `json:"issue_title"`

	// BaselineAt is the capture time of the baseline used for the
	// three-way comparison, nil when no baseline existed.
	BaselineAt *time.Time `json:"baseline_at,omitempty"`

	// ThreeWay records whether a baseline-aware comparison was possible.
	// When false only a legacy two-way local-vs-remote comparison ran.
	ThreeWay bool `json:"three_way"`

	LocalChanges  ChangeSet `json:"local_changes,omitempty"`
	RemoteChanges ChangeSet `json:"remote_changes,omitempty"`

	// RemoteDeleted is set when the remote record no longer exists. The
	// deletion is reported as a remote-only change, not as an error.
	RemoteDeleted bool `json:"remote_deleted,omitempty"`

	Conflict bool `json:"conflict"`

	Pushed bool `json:"pushed,omitempty"`
	Pulled bool `json:"pulled,omitempty"`

	// Error is the per-issue failure, empty on success.
	Error string `json:"error,omitempty"`
}

// State classifies the outcome using the pure 2×2 rule over change-set
// emptiness. An outcome with the conflict flag set is always SyncConflict.
func (o *SyncOutcome) State() SyncState {
	switch {
	case o.Conflict:
		return SyncConflict
	case !o.LocalChanges.Empty() && !o.RemoteChanges.Empty():
		// both sides diverged but no known last sync: treated as
		// one-directional per side, never a conflict; remote wins the
		// classification so the caller pulls before pushing blindly
		return SyncRemoteOnly
	case !o.LocalChanges.Empty():
		return SyncLocalOnly
	case !o.RemoteChanges.Empty():
		return SyncRemoteOnly
	default:
		return SyncNoChange
	}
}

// SyncReport aggregates one sync run. All counters derive from the single
// four-way classification of each processed issue; issues that failed
// detection (fetch errors and the like) count toward TotalIssues only.
type SyncReport struct {
	TotalIssues int `json:"total_issues"`
	UpToDate    int `json:"up_to_date"`
	NeedsPush   int `json:"needs_push"`
	NeedsPull   int `json:"needs_pull"`
	Conflicts   int `json:"conflicts"`
	Pushed      int `json:"pushed"`
	Pulled      int `json:"pulled"`

	// Changes lists per-issue outcomes in stable listing order.
	Changes []SyncOutcome `json:"changes"`

	StartedAt time.Time `json:"started_at"`

	// Error is set only when issue enumeration itself failed; every other
	// failure is recorded on the affected outcome.
	Error string `json:"error,omitempty"`
}
