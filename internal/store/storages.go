package store

import (
	"context"

	"github.com/shanewilkins/roadmap/internal/config"
	"github.com/shanewilkins/roadmap/internal/logger"
)

// Storages bundles the three repositories that share one local database.
type Storages struct {
	Issues    IssueStore
	Baselines BaselineStore
	Audit     SyncAuditLog
}

// NewStorages opens the local SQLite database described by cfg, runs
// migrations, and wires all repositories on top of the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		log.Err(err).Msg("connection to local database failed")
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Msg("local database migration failed")
		return nil, err
	}

	return &Storages{
		Issues:    NewIssueRepository(db, log),
		Baselines: NewBaselineRepository(db, log),
		Audit:     NewAuditRepository(db, log),
	}, nil
}
