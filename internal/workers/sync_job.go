// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/shanewilkins/roadmap/internal/logger"
	engine "github.com/shanewilkins/roadmap/internal/sync"
	"github.com/shanewilkins/roadmap/models"
)

// SyncRunner executes one sync pass and returns its report. The engine's
// Orchestrator satisfies it.
type SyncRunner interface {
	Run(ctx context.Context, opts engine.Options) *models.SyncReport
}

// SyncJob periodically runs a full sync in the background. It is idle until
// Start is called and satisfies Worker so it can be managed by a Workers
// aggregate.
type SyncJob struct {
	runner   SyncRunner
	opts     engine.Options
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob that calls runner.Run on a ticker with the
// given options. interval is the tick period; zero or negative falls back
// to the 5 minute default at Start time.
func NewSyncJob(runner SyncRunner, opts engine.Options, interval time.Duration, log *logger.Logger) *SyncJob {
	return &SyncJob{
		runner:   runner,
		opts:     opts,
		interval: interval,
		log:      log,
	}
}

// Run implements Worker: it starts the job against the background context
// with the interval the job was constructed with.
func (j *SyncJob) Run() {
	j.Start(context.Background(), j.interval)
}

// Start stops any previously running job, then launches a background
// goroutine that runs a sync every interval. If interval is zero or negative
// it defaults to 5 minutes. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *SyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				report := j.runner.Run(jobCtx, j.opts)
				if report.Error != "" {
					j.log.Warn().
						Str("error", report.Error).
						Msg("background sync run failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running
// (no-op in that case).
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
