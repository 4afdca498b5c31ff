// SPDX-License-Identifier: Apache-2.0

// Package sync implements the three-way synchronization engine that
// reconciles a tracked issue's state across three sources of truth: the
// baseline snapshot captured at the last successful sync, the local state
// as currently stored, and the remote state fetched live from the issue
// tracker.
//
// The engine is built from small, separately testable parts:
//
//   - Diff / DiffRemote compare two issue views field by field and emit an
//     ordered change set.
//   - Detector runs the per-issue pipeline: link check, config check,
//     remote fetch, deletion handling, change-set computation, and the
//     conflict flag.
//   - Classify is the pure 2×2 classification of a (local, remote)
//     change-set pair into one of four states.
//   - Applier writes accepted changes to the local store or the remote
//     tracker, replaces the baseline, and records every attempt in the
//     audit log.
//   - Orchestrator iterates linked issues, aggregates a SyncReport, and
//     optionally drives application.
//
// Error handling is deliberately fail-soft: every per-issue failure is
// recorded as data on that issue's outcome and the batch continues. Only a
// failure to enumerate issues at all aborts a run, and even that surfaces
// as the report's top-level error, never as a panic or a returned Go error.
//
// The reference flow is strictly sequential. One run processes linked
// issues one at a time in stable listing order, which keeps the shared
// baseline store race-free and the report reproducible. Cancellation is
// honored between issues, never mid-issue: an issue's detect and apply
// steps form a best-effort unit. The Orchestrator itself holds only wiring
// and is safely reusable across runs; all per-run state lives in the
// returned report.
package sync
