package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gms_http_requests_total",
		Help: "Total HTTP requests handled.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gms_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// DispatchesTotal counts notification dispatch attempts by outcome.
	DispatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gms_notification_dispatches_total",
		Help: "Notification dispatch attempts by outcome.",
	}, []string{"outcome"})

	// NotificationsSentTotal counts per-token delivery results.
	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gms_notifications_sent_total",
		Help: "Per-token notification delivery results.",
	}, []string{"result"})

	// TokensDeactivatedTotal counts tokens scrubbed after the provider
	// reported them permanently invalid.
	TokensDeactivatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gms_tokens_deactivated_total",
		Help: "Device tokens deactivated after provider-reported invalidity.",
	})
)

// Handler returns the Prometheus exposition endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
