// Package config provides configuration loading, merging, and validation
// facilities for roadmap.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetStructuredConfig].
//
// Remote tracker credentials (token, owner, repo) are deliberately not
// required by validation: a run with incomplete remote configuration
// degrades per issue inside the sync engine instead of failing at startup.
package config
