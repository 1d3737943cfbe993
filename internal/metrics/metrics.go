package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation status label values.
const (
	StatusOK          = "ok"
	StatusClientError = "client_error"
	StatusError       = "error"
)

var (
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geocalc_operations_total",
		Help: "Number of geometry operations served, by operation and outcome",
	}, []string{"operation", "status"})

	OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geocalc_operation_duration_seconds",
		Help:    "Time spent computing a geometry operation, excluding request decoding",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"operation"})

	PointsPerRequest = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geocalc_points_per_request",
		Help:    "Number of points submitted to a geometry operation",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"operation"})
)

var (
	// StopLookups counts stop ID resolutions by source (gtfs or oba).
	StopLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geocalc_stop_lookups_total",
		Help: "Number of stop ID lookups, by source and outcome",
	}, []string{"source", "status"})

	GtfsStopsIndexed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "geocalc_gtfs_stops_indexed",
		Help: "Number of stops with coordinates in the loaded GTFS bundle",
	})

	// ObaApiStatus API Status (up/down)
	ObaApiStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "geocalc_oba_api_status",
		Help: "Status of the OneBusAway API Server used for stop lookups (0 = not working, 1 = working)",
	}, []string{"server_url"})
)

var (
	OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geocalc_outgoing_request_duration_seconds",
		Help:    "Latency of outgoing HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"url", "method", "status"})
)

// ObserveOperation records one finished geometry operation.
func ObserveOperation(operation, status string, points int, elapsed time.Duration) {
	OperationsTotal.WithLabelValues(operation, status).Inc()
	OperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	PointsPerRequest.WithLabelValues(operation).Observe(float64(points))
}

// SetObaStatus records whether the OneBusAway server at url answered.
func SetObaStatus(url string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	ObaApiStatus.WithLabelValues(url).Set(v)
}
