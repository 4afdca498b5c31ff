package sync

import "github.com/shanewilkins/roadmap/models"

// Classify resolves the two change sets of a three-way comparison into
// one of the four sync states. The mapping is exhaustive:
//
//	local empty,  remote empty  -> SyncNoChange
//	local edits,  remote empty  -> SyncLocalOnly
//	local empty,  remote edits  -> SyncRemoteOnly
//	local edits,  remote edits  -> SyncConflict
//
// Classify is a pure table lookup. Whether a both-sides-changed pair is
// actually reported as a conflict also depends on the last-sync guard,
// which the detector applies before recording an outcome.
func Classify(local, remote models.ChangeSet) models.SyncState {
	switch {
	case local.Empty() && remote.Empty():
		return models.SyncNoChange
	case remote.Empty():
		return models.SyncLocalOnly
	case local.Empty():
		return models.SyncRemoteOnly
	default:
		return models.SyncConflict
	}
}
