package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"geocalc.onebusaway.org/internal/geo"
	"geocalc.onebusaway.org/internal/metrics"
)

var errUnknownStops = errors.New("unknown stop IDs")

// resolveStops turns stop IDs into coordinates, in request order. The
// loaded GTFS bundle is consulted first and the OneBusAway server only for
// what the bundle does not contain.
func (app *Application) resolveStops(ctx context.Context, stopIDs []string) ([]geo.Coordinate, error) {
	if len(stopIDs) == 0 {
		return nil, nil
	}

	found := make(map[string]geo.Coordinate, len(stopIDs))
	missing := stopIDs

	if app.GtfsService != nil {
		var fromBundle map[string]geo.Coordinate
		fromBundle, missing = app.GtfsService.Lookup(stopIDs)
		for id, c := range fromBundle {
			found[id] = c
		}
		metrics.StopLookups.WithLabelValues("gtfs", metrics.StatusOK).Add(float64(len(fromBundle)))
	}

	if len(missing) > 0 {
		if resolver := app.stopResolver(); resolver != nil {
			fromServer, stillMissing, err := resolver.ResolveAll(ctx, missing)
			if err != nil {
				metrics.StopLookups.WithLabelValues("oba", metrics.StatusError).Add(float64(len(missing)))
				return nil, err
			}
			for id, c := range fromServer {
				found[id] = c
			}
			metrics.StopLookups.WithLabelValues("oba", metrics.StatusOK).Add(float64(len(fromServer)))
			missing = stillMissing
		}
	}

	if len(missing) > 0 {
		metrics.StopLookups.WithLabelValues("none", metrics.StatusClientError).Add(float64(len(missing)))
		return nil, fmt.Errorf("%w: %s", errUnknownStops, strings.Join(missing, ", "))
	}

	points := make([]geo.Coordinate, len(stopIDs))
	for i, id := range stopIDs {
		points[i] = found[id]
	}
	return points, nil
}
