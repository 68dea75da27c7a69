// Package middleware contains HTTP middleware for the API server
package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration in seconds partitioned by method, route, and status code
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Form submissions partitioned by kind (signup, education_inquiry,
	// partner_application) and outcome
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of public form submissions",
		},
		[]string{"kind", "outcome"},
	)
)

// Metrics returns a Fiber v3 middleware that records basic Prometheus
// metrics. The matched route template is used as the route label to keep
// cardinality low.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}

		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  route,
			"status": strconv.Itoa(c.Response().StatusCode()),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())

		if c.Method() == fiber.MethodPost {
			recordSubmission(route, c.Response().StatusCode())
		}

		return err
	}
}

func recordSubmission(route string, status int) {
	// Grouped routes keep a trailing slash in their template
	// ("/education-inquiries/"); normalize before matching.
	var kind string
	switch strings.TrimRight(route, "/") {
	case "/auth/signup":
		kind = "signup"
	case "/education-inquiries":
		kind = "education_inquiry"
	case "/partner-applications":
		kind = "partner_application"
	default:
		return
	}

	outcome := "rejected"
	if status < 400 {
		outcome = "accepted"
	}

	submissionsTotal.With(prometheus.Labels{"kind": kind, "outcome": outcome}).Inc()
}
