// Package app wires the simulation service and its controllers together
// and runs them until shutdown.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/jrbassindale1/roomclimate/internal/controllers/restserver"
	"github.com/jrbassindale1/roomclimate/internal/controllers/stream"
	"github.com/jrbassindale1/roomclimate/internal/log"
	"github.com/jrbassindale1/roomclimate/internal/sim"
	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/epw"
)

// Options carries the listener settings the scenario itself does not own.
type Options struct {
	REST   restserver.Config
	Stream stream.Config
}

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	opts           Options
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, opts Options, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		opts:           opts,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scenario, err := a.configProvider.LoadConfig()
	if err != nil {
		return err
	}

	service := sim.NewService(*scenario, loadDataset(scenario))

	rest, err := restserver.NewController(ctx, &wg, service, a.opts.REST, a.logger)
	if err != nil {
		return err
	}
	if err := rest.StartController(); err != nil {
		return err
	}

	ws, err := stream.NewController(ctx, &wg, service, a.opts.Stream, a.logger)
	if err != nil {
		return err
	}
	if err := ws.StartController(); err != nil {
		return err
	}

	// Warm the memo so the first client request is instant.
	go service.Annual()

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	cancel()

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}

// loadDataset reads the scenario's EPW file if one is configured. A
// missing or unreadable file is a warning, not a fatal error: the weather
// provider falls back to the climatology model.
func loadDataset(scenario *config.Scenario) *epw.Dataset {
	if scenario.Weather.Mode != config.WeatherEPW || scenario.Weather.EPWPath == "" {
		return nil
	}

	f, err := os.Open(scenario.Weather.EPWPath)
	if err != nil {
		log.Warnf("opening EPW file %s: %v", scenario.Weather.EPWPath, err)
		return nil
	}
	defer f.Close()

	ds, err := epw.Parse(f)
	if err != nil {
		log.Warnf("parsing EPW file %s: %v", scenario.Weather.EPWPath, err)
		return nil
	}
	log.Infof("loaded EPW dataset for %s, %s", ds.Location.City, ds.Location.Country)
	return ds
}
