package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database DSN (path to the local SQLite file)
//	-c/-config json file path with configs
//	-token remote tracker personal access token
//	-owner remote repository owner
//	-repo remote repository name
//	-request-timeout remote request timeout (e.g., "15s", "1m")
//	-sync-interval background sync interval (e.g., "5m"; 0 disables)
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var jsonConfigPath string
	var token string
	var owner string
	var repo string
	var requestTimeout time.Duration
	var syncInterval time.Duration

	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&token, "token", "", "Remote tracker access token")
	flag.StringVar(&owner, "owner", "", "Remote repository owner")
	flag.StringVar(&repo, "repo", "", "Remote repository name")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 15s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		Remote: Remote{
			Token:          token,
			Owner:          owner,
			Repo:           repo,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
