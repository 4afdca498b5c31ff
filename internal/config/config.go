// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for roadmap.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds credentials and coordinates for the remote issue
	// tracker. Any of the three identity fields may be empty; the sync
	// engine reports "config incomplete" per issue instead of refusing
	// to start.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote holds the remote tracker coordinates used by the sync engine.
type Remote struct {
	// Token is the personal access token used as a bearer credential on
	// every remote API call.
	// Env: REMOTE_TOKEN
	Token string `env:"TOKEN"`

	// Owner is the account or organization that owns the remote
	// repository (e.g. "shanewilkins").
	// Env: REMOTE_OWNER
	Owner string `env:"OWNER"`

	// Repo is the remote repository name issues are linked against.
	// Env: REMOTE_REPO
	Repo string `env:"REPO"`

	// RequestTimeout is the maximum duration for a single outbound
	// request to the remote tracker (e.g. "15s").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite data source name, typically a file path such as
	// ".roadmap/roadmap.db".
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the background sync worker runs.
	// Zero disables the worker.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
