package gtfs

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	remoteGtfs "github.com/jamespfennell/gtfs"
)

func ptr(f float64) *float64 { return &f }

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStatic returns a small bundle with a station, a platform that
// inherits the station's location, and a stop with no location at all.
func newTestStatic() *remoteGtfs.Static {
	station := remoteGtfs.Stop{Id: "station", Name: "Pioneer Square", Latitude: ptr(47.6016), Longitude: ptr(-122.3317)}
	stops := []remoteGtfs.Stop{
		station,
		{Id: "1108", Name: "3rd Ave & Pike St", Latitude: ptr(47.6097), Longitude: ptr(-122.3379)},
		{Id: "11060", Name: "University St Station", Latitude: ptr(47.6074), Longitude: ptr(-122.3359)},
		{Id: "platform", Name: "Pioneer Square Bay A", Parent: &station},
		{Id: "nowhere", Name: "Unplaced"},
	}
	return &remoteGtfs.Static{Stops: stops}
}

// setupBundleServer serves body with status for every request.
func setupBundleServer(t *testing.T, body []byte, status int) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}
