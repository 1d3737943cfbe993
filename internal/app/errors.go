package app

import (
	"encoding/json"
	"errors"
	"net/http"

	"geocalc.onebusaway.org/internal/geo"
	"geocalc.onebusaway.org/internal/metrics"
	"geocalc.onebusaway.org/internal/report"
)

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// errorStatus maps an error to the HTTP status it is answered with.
func errorStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errUnknownStops):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, geo.ErrUnknownUnit),
		errors.Is(err, geo.ErrEmptyInput),
		errors.Is(err, geo.ErrMissingMainPoint),
		errors.Is(err, geo.ErrIndexOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse answers a failed operation. Client mistakes are returned
// verbatim; anything else is logged, reported to Sentry and hidden behind a
// generic message.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, operation string, points int, err error) string {
	status := errorStatus(err)
	message := err.Error()
	outcome := metrics.StatusClientError

	if status == http.StatusInternalServerError {
		outcome = metrics.StatusError
		message = "the server encountered a problem and could not process your request"
		app.Logger.Error("Geometry operation failed", "operation", operation, "points", points, "method", r.Method, "uri", r.URL.RequestURI(), "error", err)
		report.ReportErrorWithSentryOptions(err, report.OperationReportOptions(operation, points))
	}

	if werr := writeJSON(w, status, errorEnvelope{Error: message}); werr != nil {
		app.Logger.Error("Failed to write error response", "error", werr)
	}
	return outcome
}
