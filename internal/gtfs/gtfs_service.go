package gtfs

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"geocalc.onebusaway.org/internal/config"
	"geocalc.onebusaway.org/internal/geo"
)

const defaultMaxRetries = 3

type GtfsService struct {
	Index    *StopIndex
	Backoff  *config.BackoffStore
	Logger   *slog.Logger
	Client   *http.Client
	CacheDir string
}

func NewGtfsService(index *StopIndex, backoff *config.BackoffStore, logger *slog.Logger, client *http.Client, cacheDir string) *GtfsService {
	return &GtfsService{
		Index:    index,
		Backoff:  backoff,
		Logger:   logger,
		Client:   client,
		CacheDir: cacheDir,
	}
}

// LoadBundle downloads and indexes the bundle at url once.
func (gs *GtfsService) LoadBundle(ctx context.Context, url string) error {
	return loadGTFSBundle(ctx, gs.Client, url, gs.CacheDir, gs.Index, gs.Logger, defaultMaxRetries)
}

// RefreshBundles blocks, reloading the bundle at url every interval.
func (gs *GtfsService) RefreshBundles(ctx context.Context, url string, interval time.Duration) {
	refreshGTFSBundles(ctx, gs.Client, url, gs.CacheDir, gs.Index, gs.Backoff, gs.Logger, interval, defaultMaxRetries)
}

// Lookup resolves stop IDs against the loaded bundle.
func (gs *GtfsService) Lookup(stopIDs []string) (map[string]geo.Coordinate, []string) {
	return gs.Index.Lookup(stopIDs)
}
