// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"time"
)

// Defaults applied after all sources are merged. Remote credentials have no
// defaults on purpose: a missing token, owner, or repo is handled per issue
// by the sync engine, not at startup.
const (
	defaultDSN            = ".roadmap/roadmap.db"
	defaultRequestTimeout = 15 * time.Second
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultDSN
	}
	if cfg.Remote.RequestTimeout <= 0 {
		cfg.Remote.RequestTimeout = defaultRequestTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Incomplete remote credentials are deliberately not an error here: the
// sync engine degrades per issue with a "config incomplete" outcome so a
// batch run is never rejected wholesale.
func (cfg *StructuredConfig) validate() error {
	if strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
