package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal     prometheus.CounterVec
	HTTPRequestDuration   prometheus.HistogramVec
	HTTPActiveConnections prometheus.GaugeVec

	// Rate limiting metrics
	RateLimitExceededTotal prometheus.CounterVec

	// Auth metrics
	LoginsTotal             prometheus.CounterVec
	TokenRotationsTotal     prometheus.CounterVec
	TokenReuseDetectedTotal prometheus.CounterVec

	// Domain metrics
	VideosPublishedTotal prometheus.CounterVec
	VideoViewsTotal      prometheus.CounterVec
	TogglesTotal         prometheus.CounterVec
	UploadsTotal         prometheus.CounterVec
	UploadDuration       prometheus.HistogramVec

	// Error metrics
	ErrorsTotal prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			HTTPActiveConnections: *promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "http_active_connections",
					Help: "Number of currently active HTTP connections",
				},
				[]string{"method", "path"},
			),

			RateLimitExceededTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_exceeded_total",
					Help: "Total number of rate limited requests",
				},
				[]string{"path"},
			),

			LoginsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "logins_total",
					Help: "Total number of login attempts",
				},
				[]string{"outcome"},
			),
			TokenRotationsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "token_rotations_total",
					Help: "Total number of refresh token rotations",
				},
				[]string{"outcome"},
			),
			TokenReuseDetectedTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "token_reuse_detected_total",
					Help: "Total number of rejected reused refresh tokens",
				},
				[]string{},
			),

			VideosPublishedTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "videos_published_total",
					Help: "Total number of videos published",
				},
				[]string{},
			),
			VideoViewsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "video_views_total",
					Help: "Total number of recorded video views",
				},
				[]string{},
			),
			TogglesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "toggles_total",
					Help: "Total number of like/subscription toggles",
				},
				[]string{"kind", "state"},
			),
			UploadsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "media_uploads_total",
					Help: "Total number of media uploads to object storage",
				},
				[]string{"kind", "outcome"},
			),
			UploadDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "media_upload_duration_seconds",
					Help:    "Media upload latency in seconds",
					Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
				},
				[]string{"kind"},
			),

			ErrorsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "errors_total",
					Help: "Total number of API errors by code",
				},
				[]string{"code"},
			),
		}
	})
	return instance
}

// Get returns the metrics instance, initializing it if needed
func Get() *Metrics {
	return Initialize()
}
