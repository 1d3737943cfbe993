package app

import (
	"net/http"
	"time"

	"github.com/paulmach/orb/geojson"

	"geocalc.onebusaway.org/internal/geo"
	"geocalc.onebusaway.org/internal/metrics"
)

// HealthStatus is the body of GET /v1/healthcheck.
//
// Ready is false while a GTFS feed is configured but no bundle has been
// indexed yet, since stop ID input would fail until then.
type HealthStatus struct {
	Status      string   `json:"status"`
	Environment string   `json:"environment"`
	Version     string   `json:"version"`
	Units       []string `json:"units"`
	Ready       bool     `json:"ready"`
}

func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	settings := app.ConfigService.Config.GetSettings()

	ready := settings.GtfsURL == "" || (app.GtfsService != nil && app.GtfsService.Index.Len() > 0)

	status := HealthStatus{
		Status:      "available",
		Environment: app.ConfigService.Config.Env,
		Version:     app.Version,
		Units:       settings.UnitTable().Symbols(),
		Ready:       ready,
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusInternalServerError
	}
	if err := writeJSON(w, code, status); err != nil {
		app.Logger.Error("Failed to write healthcheck response", "error", err)
	}
}

// operation is the computation behind one geometry endpoint.
type operation func(r *http.Request, engine *geo.Engine, q geo.Query) (any, error)

// serveOperation decodes the request, runs op against an engine built from
// the current settings and records the outcome.
func (app *Application) serveOperation(name string, op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodePointsRequest(r)
		if err != nil {
			status := app.errorResponse(w, r, name, 0, err)
			metrics.OperationsTotal.WithLabelValues(name, status).Inc()
			return
		}

		q, err := app.query(r, req)
		if err != nil {
			status := app.errorResponse(w, r, name, len(req.Points), err)
			metrics.OperationsTotal.WithLabelValues(name, status).Inc()
			return
		}

		points := q.Points()
		if invalid := geo.InvalidPoints(points); len(invalid) > 0 {
			app.Logger.Warn("Request contains out of range coordinates", "operation", name, "indices", invalid)
		}

		engine := app.ConfigService.Config.Engine()
		start := time.Now()
		result, err := op(r, engine, q)
		elapsed := time.Since(start)

		if err != nil {
			status := app.errorResponse(w, r, name, len(points), err)
			metrics.ObserveOperation(name, status, len(points), elapsed)
			return
		}
		metrics.ObserveOperation(name, metrics.StatusOK, len(points), elapsed)

		if err := writeJSON(w, http.StatusOK, result); err != nil {
			app.Logger.Error("Failed to write response", "operation", name, "error", err)
		}
	}
}

func distanceOperation(r *http.Request, engine *geo.Engine, q geo.Query) (any, error) {
	d, err := engine.GetDistance(q)
	if err != nil {
		return nil, err
	}
	return map[string]any{"distance": d}, nil
}

func centerOperation(r *http.Request, engine *geo.Engine, q geo.Query) (any, error) {
	c, err := engine.GetCenter(q)
	if err != nil {
		return nil, err
	}
	return map[string]any{"center": c}, nil
}

func areaOperation(r *http.Request, engine *geo.Engine, q geo.Query) (any, error) {
	inArea, err := engine.IsInArea(q)
	if err != nil {
		return nil, err
	}
	return map[string]any{"in_area": inArea}, nil
}

func closestOperation(r *http.Request, engine *geo.Engine, q geo.Query) (any, error) {
	return engine.GetClosest(q)
}

func farthestOperation(r *http.Request, engine *geo.Engine, q geo.Query) (any, error) {
	return engine.GetFarthest(q)
}

// orderOperation returns the tour as {"order": [...]}, or as a GeoJSON
// FeatureCollection when called with ?format=geojson.
func orderOperation(r *http.Request, engine *geo.Engine, q geo.Query) (any, error) {
	tour, err := engine.GetOrderByNearestNeighbor(q)
	if err != nil {
		return nil, err
	}
	if r.URL.Query().Get("format") == "geojson" {
		return tour.FeatureCollection(), nil
	}
	return map[string]any{"order": tour}, nil
}

func featuresOperation(r *http.Request, engine *geo.Engine, q geo.Query) (any, error) {
	return engine.AllFeatures(q)
}

// boundsOperation returns the bounding box, or with ?format=geojson the
// points as a FeatureCollection carrying the box as its bbox member.
func boundsOperation(r *http.Request, engine *geo.Engine, q geo.Query) (any, error) {
	points := q.Points()
	bbox, err := geo.Bounds(points)
	if err != nil {
		return nil, err
	}
	if r.URL.Query().Get("format") == "geojson" {
		fc := geo.PointsFeatureCollection(points)
		fc.BBox = geojson.BBox{bbox.MinLon, bbox.MinLat, bbox.MaxLon, bbox.MaxLat}
		return fc, nil
	}
	return map[string]any{"bounds": bbox}, nil
}
