package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of in-flight HTTP requests",
		},
	)

	documentValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_validations_total",
			Help: "Total number of document and CEP validations by outcome",
		},
		[]string{"kind", "result"},
	)

	cepLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cep_lookups_total",
			Help: "Total number of CEP provider lookups by result",
		},
		[]string{"provider", "result"},
	)
)

// Metrics records request counts and latency per route template, so
// /clientes/:cpf is one series regardless of the CPF requested.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			activeConnections.Inc()
			defer activeConnections.Dec()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(StatusOf(c, err))

			httpRequestsTotal.WithLabelValues(method, path, status).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func RecordValidation(kind, result string) {
	documentValidations.WithLabelValues(kind, result).Inc()
}

func RecordCEPLookup(provider, result string) {
	cepLookups.WithLabelValues(provider, result).Inc()
}
