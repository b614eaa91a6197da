package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "catalog"

var (
	// RequestDuration tracks HTTP latency by method, route pattern and status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// ReconciledColors counts color mutations applied by product reconciliation.
	ReconciledColors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "product",
			Name:      "colors_reconciled_total",
			Help:      "Color rows created, updated or deleted by product reconciliation.",
		},
		[]string{"action"},
	)

	// ReconciledVariants counts variant mutations applied by product reconciliation.
	ReconciledVariants = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "product",
			Name:      "variants_reconciled_total",
			Help:      "Variant rows created, updated or deleted by product reconciliation.",
		},
		[]string{"action"},
	)

	// ImageCleanupFailures counts stored files that could not be removed after commit.
	ImageCleanupFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "product",
		Name:      "image_cleanup_failures_total",
		Help:      "Image files left behind because deletion failed.",
	})

	// TokenRefreshes counts refresh attempts by outcome (success, rejected).
	TokenRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "token_refreshes_total",
			Help:      "Refresh token rotations by outcome.",
		},
		[]string{"outcome"},
	)
)

// Registry is the registry exposed on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		ReconciledColors,
		ReconciledVariants,
		ImageCleanupFailures,
		TokenRefreshes,
	)
}

// Middleware records request latency. The route pattern, not the raw path,
// is used as label to keep cardinality bounded.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		RequestDuration.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the Prometheus exposition page.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
