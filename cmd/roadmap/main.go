package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shanewilkins/roadmap/internal/adapter"
	"github.com/shanewilkins/roadmap/internal/config"
	"github.com/shanewilkins/roadmap/internal/logger"
	"github.com/shanewilkins/roadmap/internal/store"
	"github.com/shanewilkins/roadmap/internal/sync"
	"github.com/shanewilkins/roadmap/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var (
	dryRun      = flag.Bool("dry-run", false, "Detect and report changes without applying them")
	forceLocal  = flag.Bool("force-local", false, "Resolve conflicts by pushing local values")
	forceGitHub = flag.Bool("force-github", false, "Resolve conflicts by pulling remote values")
	watch       = flag.Bool("watch", false, "Keep running and sync on the configured interval")
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("roadmap")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	tracker := adapter.NewGitHubTracker(adapter.GitHubConfig{
		Token:   cfg.Remote.Token,
		Timeout: cfg.Remote.RequestTimeout,
	}, log)

	orchestrator := sync.NewOrchestrator(storages, tracker, sync.RemoteConfig{
		Token: cfg.Remote.Token,
		Owner: cfg.Remote.Owner,
		Repo:  cfg.Remote.Repo,
	}, log)

	opts := sync.Options{
		DryRun:      *dryRun,
		ForceLocal:  *forceLocal,
		ForceGitHub: *forceGitHub,
	}

	if *watch {
		job := workers.NewSyncJob(orchestrator, opts, cfg.Workers.SyncInterval, log)
		workers.NewWorkers(job).Run()

		<-ctx.Done()
		job.Stop()
		log.Info().Msg("shutting down")
		return
	}

	report := orchestrator.Run(ctx, opts)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err = enc.Encode(report); err != nil {
		log.Fatal().Err(err).Msg("error rendering report")
	}

	if report.Error != "" {
		os.Exit(1)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
