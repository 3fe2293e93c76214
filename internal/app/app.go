// Package app wires the configured dataset, estimator, and HTTP server
// together and manages the process lifecycle.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/coldsnap/freezecalc/internal/log"
	"github.com/coldsnap/freezecalc/internal/server"
	"github.com/coldsnap/freezecalc/pkg/config"
	"github.com/coldsnap/freezecalc/pkg/estimator"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	configProvider config.Provider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.Provider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// BuildDataset converts a dataset configuration into an estimator
// dataset, defaulting omitted pieces: no anchors means the built-in
// reference dataset, and omitted thresholds default to the outermost
// anchor temperatures.
func BuildDataset(dc config.DatasetData) estimator.Dataset {
	if len(dc.Anchors) == 0 {
		return estimator.DefaultDataset()
	}

	ds := estimator.Dataset{}
	for _, a := range dc.Anchors {
		ds.Anchors = append(ds.Anchors, estimator.Anchor{
			Temperature: a.Temperature,
			Days:        a.Days,
		})
	}

	lowest, highest := ds.Anchors[0].Temperature, ds.Anchors[0].Temperature
	for _, a := range ds.Anchors {
		if a.Temperature < lowest {
			lowest = a.Temperature
		}
		if a.Temperature > highest {
			highest = a.Temperature
		}
	}

	ds.InstantFreezeBelow = lowest
	if dc.InstantFreezeBelow != nil {
		ds.InstantFreezeBelow = *dc.InstantFreezeBelow
	}
	ds.NoFreezeAbove = highest
	if dc.NoFreezeAbove != nil {
		ds.NoFreezeAbove = *dc.NoFreezeAbove
	}

	return ds
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}

	est, err := estimator.New(BuildDataset(cfg.Dataset))
	if err != nil {
		return fmt.Errorf("could not build estimator: %w", err)
	}
	a.logger.Infof("estimator ready with %d anchors", len(est.Anchors()))

	srv, err := server.NewController(ctx, &wg, est, cfg.HTTP, cfg.Display, a.logger)
	if err != nil {
		return fmt.Errorf("could not create HTTP server: %w", err)
	}
	if err := srv.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
