package app

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"geocalc.onebusaway.org/internal/config"
	"geocalc.onebusaway.org/internal/geo"
	"geocalc.onebusaway.org/internal/gtfs"
	"geocalc.onebusaway.org/internal/oba"
)

// StopResolver resolves stop IDs the local GTFS index does not know.
type StopResolver interface {
	ResolveAll(ctx context.Context, stopIDs []string) (map[string]geo.Coordinate, []string, error)
}

// Application wires the configuration, the stop sources and the logger
// behind the HTTP handlers. Every request builds its own geo.Engine from the
// current settings, so nothing computed here is shared between requests.
type Application struct {
	ConfigService *config.ConfigService
	GtfsService   *gtfs.GtfsService
	Logger        *slog.Logger
	Version       string

	mu          sync.Mutex
	resolver    StopResolver
	resolverKey string
}

// New creates and wires all dependencies for the Application.
func New(cfg *config.Config, logger *slog.Logger, client *http.Client, cacheDir, version string) *Application {
	configService := config.NewConfigService(logger, client, cfg)
	gtfsService := gtfs.NewGtfsService(gtfs.NewStopIndex(), config.NewBackoffStore(), logger, client, cacheDir)

	return &Application{
		ConfigService: configService,
		GtfsService:   gtfsService,
		Logger:        logger,
		Version:       version,
	}
}

// stopResolver returns a OneBusAway resolver for the configured server, or
// nil when none is configured. The resolver is rebuilt when a config
// refresh changes the server or key.
func (app *Application) stopResolver() StopResolver {
	settings := app.ConfigService.Config.GetSettings()
	if settings.ObaBaseURL == "" {
		return nil
	}

	key := settings.ObaBaseURL + "|" + settings.ObaAPIKey

	app.mu.Lock()
	defer app.mu.Unlock()
	if app.resolver == nil || app.resolverKey != key {
		app.resolver = oba.NewStopResolver(settings.ObaBaseURL, settings.ObaAPIKey, app.ConfigService.Client)
		app.resolverKey = key
	}
	return app.resolver
}
