package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"geocalc.onebusaway.org/internal/geo"
)

var errBadRequest = errors.New("bad request")

// pointsRequest is the body shared by every geometry endpoint. Points may
// be given directly, as an encoded polyline, as stop IDs, or any mix; they
// are combined in that order.
type pointsRequest struct {
	Points    []geo.Coordinate `json:"points"`
	Polyline  string           `json:"polyline,omitempty"`
	StopIDs   []string         `json:"stop_ids,omitempty"`
	Units     []string         `json:"units,omitempty"`
	MainPoint *geo.Coordinate  `json:"main_point,omitempty"`
	Diameter  float64          `json:"diameter,omitempty"`
}

func decodePointsRequest(r *http.Request) (pointsRequest, error) {
	var req pointsRequest

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return req, err
		case errors.Is(err, io.EOF):
			return req, fmt.Errorf("%w: body must not be empty", errBadRequest)
		default:
			return req, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if dec.More() {
		return req, fmt.Errorf("%w: body must contain a single JSON object", errBadRequest)
	}
	return req, nil
}

// query builds the geo.Query for req, resolving the polyline and stop IDs.
func (app *Application) query(r *http.Request, req pointsRequest) (geo.Query, error) {
	q := geo.NewQuery().WithPoints(req.Points...)

	if req.Polyline != "" {
		decoded, err := geo.DecodePolyline(req.Polyline)
		if err != nil {
			return geo.Query{}, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		q = q.WithPoints(decoded...)
	}

	stops, err := app.resolveStops(r.Context(), req.StopIDs)
	if err != nil {
		return geo.Query{}, err
	}
	q = q.WithPoints(stops...)

	if req.MainPoint != nil {
		q = q.WithMainPoint(*req.MainPoint)
	}
	if req.Diameter != 0 {
		q = q.WithDiameter(req.Diameter)
	}
	if len(req.Units) > 0 {
		q = q.WithUnits(req.Units...)
	}
	return q, nil
}
