package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.DefaultRegisterer

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path/method/code.",
		},
		[]string{"path", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by path/method/code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "code"},
	)

	pairings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "standup_pairings_total",
			Help: "Pairing computations by roster source and result.",
		},
		[]string{"source", "result"},
	)

	presentMembers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "standup_present_members",
			Help: "Present members in the most recent stored-roster pairing.",
		},
	)

	repoDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "standup_repo_operation_duration_seconds",
			Help:    "Duration of repository operations by op and result.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "result"},
	)
)

// GinMiddleware records request counts and latencies
func GinMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	code := strconv.Itoa(c.Writer.Status())
	path := c.FullPath()

	// unmatched routes have no FullPath
	if path == "" {
		path = c.Request.URL.Path
	}

	if path == "/metrics" {
		return
	}

	method := c.Request.Method

	httpRequests.WithLabelValues(path, method, code).Inc()
	httpDuration.WithLabelValues(path, method, code).Observe(time.Since(start).Seconds())
}

// Handler exposes the default registry
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// ObservePairing counts a pairing computation. source is "stored" or "inline".
func ObservePairing(source string, present int, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	pairings.WithLabelValues(source, result).Inc()
	if err == nil && source == "stored" {
		presentMembers.Set(float64(present))
	}
}

func ObserveRepoOp(op string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	repoDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}

func init() {
	collectors := []prometheus.Collector{
		httpRequests,
		httpDuration,
		pairings,
		presentMembers,
		repoDuration,
	}

	for _, c := range collectors {
		_ = registry.Register(c)
	}
}
