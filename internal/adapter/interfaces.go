// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating
// with the remote issue tracker.
//
// The primary abstraction is [IssueTracker], which decouples the sync engine
// from the underlying protocol. The package ships a GitHub REST v3
// implementation ([NewGitHubTracker]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401). A missing remote issue is
// not an error: Fetch reports it as a nil snapshot so the engine can treat
// the deletion as a remote change.
package adapter

import (
	"context"

	"github.com/shanewilkins/roadmap/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/issue_tracker_mock.go -package=mock

// IssueTracker defines transport-agnostic communication with the remote
// issue tracker. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type IssueTracker interface {
	// Fetch retrieves the current snapshot of the remote issue identified
	// by owner/repo/number. A (nil, nil) return means the remote issue
	// does not exist (deleted or transferred); any non-nil error is a
	// transport or server failure.
	Fetch(ctx context.Context, owner, repo string, number int) (*models.RemoteIssue, error)

	// Update applies the given field values (remote vocabulary: "title",
	// "body", "state", "state_reason") to the remote issue. Returns an
	// error if the request fails or the server responds with a non-2xx
	// status.
	Update(ctx context.Context, owner, repo string, number int, fields map[string]any) error
}
