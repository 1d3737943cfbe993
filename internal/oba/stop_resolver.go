package oba

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	onebusaway "github.com/OneBusAway/go-sdk"
	"github.com/OneBusAway/go-sdk/option"

	"geocalc.onebusaway.org/internal/geo"
	"geocalc.onebusaway.org/internal/metrics"
)

// ErrStopNotFound is returned when the server has no usable location for a
// stop ID.
var ErrStopNotFound = errors.New("stop not found")

// StopResolver looks up stop locations on a OneBusAway server.
type StopResolver struct {
	client  *onebusaway.Client
	baseURL string
}

// NewStopResolver builds a resolver for the server at baseURL. A nil
// httpClient uses the SDK default.
func NewStopResolver(baseURL, apiKey string, httpClient *http.Client) *StopResolver {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(1),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &StopResolver{
		client:  onebusaway.NewClient(opts...),
		baseURL: baseURL,
	}
}

// Resolve returns the location of stopID.
func (r *StopResolver) Resolve(ctx context.Context, stopID string) (geo.Coordinate, error) {
	response, err := r.client.Stop.Get(ctx, stopID)
	if err != nil {
		var apiErr *onebusaway.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return geo.Coordinate{}, fmt.Errorf("%w: %s", ErrStopNotFound, stopID)
		}
		return geo.Coordinate{}, fmt.Errorf("failed to fetch stop %s from %s: %w", stopID, r.baseURL, err)
	}
	if response == nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %s", ErrStopNotFound, stopID)
	}

	entry := response.Data.Entry
	if !geo.IsValidLatLon(entry.Lat, entry.Lon) {
		return geo.Coordinate{}, fmt.Errorf("%w: %s has no valid location", ErrStopNotFound, stopID)
	}
	return geo.Coordinate{Lat: entry.Lat, Long: entry.Lon}, nil
}

// ResolveAll resolves each ID in turn. IDs the server does not know are
// returned in missing; any other failure aborts the lookup.
func (r *StopResolver) ResolveAll(ctx context.Context, stopIDs []string) (found map[string]geo.Coordinate, missing []string, err error) {
	found = make(map[string]geo.Coordinate, len(stopIDs))
	for _, id := range stopIDs {
		c, err := r.Resolve(ctx, id)
		switch {
		case err == nil:
			found[id] = c
		case errors.Is(err, ErrStopNotFound):
			missing = append(missing, id)
		default:
			return nil, nil, err
		}
	}
	return found, missing, nil
}

// Ping asks the server for its current time and records the result in the
// OBA status gauge.
func (r *StopResolver) Ping(ctx context.Context) error {
	response, err := r.client.CurrentTime.Get(ctx)
	if err != nil {
		metrics.SetObaStatus(r.baseURL, false)
		return fmt.Errorf("failed to ping OBA server %s: %w", r.baseURL, err)
	}

	up := response.Data.Entry.ReadableTime != ""
	metrics.SetObaStatus(r.baseURL, up)
	if !up {
		return fmt.Errorf("OBA server %s returned an empty current time", r.baseURL)
	}
	return nil
}
