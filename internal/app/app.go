// Package app wires configuration, storage backends and services together.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"socialrunner/runner-app/internal/config"
	"socialrunner/runner-app/internal/repository"
	"socialrunner/runner-app/internal/repository/memory"
	"socialrunner/runner-app/internal/repository/mongo"
	"socialrunner/runner-app/internal/service"
	"socialrunner/runner-app/internal/storage"
)

// App holds the services built from one configuration.
type App struct {
	Config   config.Config
	Plans    service.PlanService
	Feedback service.FeedbackService
	Adaptive service.AdaptiveService

	closers []func() error
}

// New connects the configured backends and builds the services.
func New(cfg config.Config) (*App, error) {
	a := &App{Config: cfg}

	repos, err := a.openRepositories(cfg.Database)
	if err != nil {
		return nil, err
	}

	var snapshots storage.ObjectStorage
	if cfg.S3.Enabled() {
		log.Println("Initializing schedule snapshot storage...")
		if snapshots, err = storage.NewS3Storage(cfg.S3); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("initialize S3 storage: %w", err)
		}
	} else {
		log.Println("WARN: S3 bucket not configured, schedule snapshots disabled")
	}

	a.Plans = service.NewPlanService(repos.Plans)
	a.Feedback = service.NewFeedbackService(repos.Feedback, repos.Plans)
	a.Adaptive = service.NewAdaptiveService(repos.Feedback, repos.Adjustments, repos.Plans, snapshots, cfg.Adaptive.AnalysisWindowWeeks)
	return a, nil
}

func (a *App) openRepositories(cfg config.DatabaseConfig) (repository.Repositories, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Println("WARN: Using in-memory storage, data will not survive a restart")
		return memory.NewRepositories(), nil
	case config.DriverMongo, "":
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return repository.Repositories{}, fmt.Errorf("connect to MongoDB: %w", err)
		}
		a.closers = append(a.closers, func() error {
			log.Println("Disconnecting MongoDB...")
			return mongo.DisconnectDB(client)
		})
		db := client.Database(cfg.Name)
		log.Println("Database connection established.")

		// Index creation runs in the background so startup is not blocked.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongo.EnsureIndexes(ctx, db)
		}()
		return mongo.NewRepositories(db), nil
	default:
		return repository.Repositories{}, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Close releases backend connections.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
