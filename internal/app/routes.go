package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"geocalc.onebusaway.org/internal/middleware"
)

const maxRequestBytes = 1 << 20

// Routes registers every endpoint and wraps the router with the body limit,
// Sentry and security header middlewares.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodPost, "/v1/distance", app.serveOperation("distance", distanceOperation))
	router.HandlerFunc(http.MethodPost, "/v1/center", app.serveOperation("center", centerOperation))
	router.HandlerFunc(http.MethodPost, "/v1/area", app.serveOperation("area", areaOperation))
	router.HandlerFunc(http.MethodPost, "/v1/closest", app.serveOperation("closest", closestOperation))
	router.HandlerFunc(http.MethodPost, "/v1/farthest", app.serveOperation("farthest", farthestOperation))
	router.HandlerFunc(http.MethodPost, "/v1/order", app.serveOperation("order", orderOperation))
	router.HandlerFunc(http.MethodPost, "/v1/features", app.serveOperation("features", featuresOperation))
	router.HandlerFunc(http.MethodPost, "/v1/bounds", app.serveOperation("bounds", boundsOperation))

	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.LimitRequestBody(maxRequestBytes, router)
	handler = middleware.SentryMiddleware(handler)
	return middleware.SecurityHeaders(handler)
}
