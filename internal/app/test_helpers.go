package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	remoteGtfs "github.com/jamespfennell/gtfs"

	"geocalc.onebusaway.org/internal/config"
	"geocalc.onebusaway.org/internal/gtfs"
)

func ptr(f float64) *float64 { return &f }

// newTestApplication returns an application with the given settings and a
// GTFS index holding two Jeddah/Tabuk stops.
func newTestApplication(t *testing.T, settings config.Settings) *Application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.NewConfig(4000, "testing", settings)
	app := New(cfg, logger, &http.Client{}, t.TempDir(), "test-version")

	app.GtfsService.Index.Replace(&remoteGtfs.Static{Stops: []remoteGtfs.Stop{
		{Id: "jeddah", Name: "Jeddah", Latitude: ptr(22), Longitude: ptr(37)},
		{Id: "tabuk", Name: "Tabuk", Latitude: ptr(33), Longitude: ptr(40)},
	}})
	return app
}

// withoutGtfs drops the stop index, as when no feed is configured.
func withoutGtfs(app *Application) *Application {
	app.GtfsService = gtfs.NewGtfsService(gtfs.NewStopIndex(), config.NewBackoffStore(), app.Logger, app.ConfigService.Client, "")
	return app
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rr, req)
	return rr
}
