package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewServerMetrics registers the HTTP collectors on reg. The service name
// is a label value, so any SERVICE_NAME is accepted.
func NewServerMetrics(reg prometheus.Registerer, service string) *ServerMetrics {
	labels := prometheus.Labels{"service": service}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "orders",
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests.",
		ConstLabels: labels,
	}, []string{"handler", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   "orders",
		Subsystem:   "http",
		Name:        "request_duration_ms",
		Help:        "HTTP request latency in milliseconds.",
		ConstLabels: labels,
		Buckets:     []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler", "method"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// Middleware records every request under its route template. Returned
// errors are counted with their HTTPError code.
func (m *ServerMetrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			status = http.StatusInternalServerError
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}

		handler := c.Path()
		method := c.Request().Method
		m.Requests.WithLabelValues(handler, method, strconv.Itoa(status)).Inc()
		m.LatencyMS.WithLabelValues(handler, method).Observe(float64(time.Since(start).Milliseconds()))
		return err
	}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
