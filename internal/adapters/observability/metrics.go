package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "yisu", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yisu", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	SearchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "yisu", Name: "search_requests_total", Help: "Hotel searches by visibility scope."},
		[]string{"scope"}, // scope: public|merchant|admin
	)
	SnapshotEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "yisu", Name: "snapshot_events_total", Help: "Snapshot store loads/saves/misses."},
		[]string{"store", "event"}, // event: load|save|miss
	)
	ModerationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "yisu", Name: "moderation_events_total", Help: "Moderation transitions by action and outcome."},
		[]string{"action", "outcome"},
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, SearchRequests, SnapshotEvents, ModerationEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveSearch(scope string) { // scope: public|merchant|admin
	SearchRequests.WithLabelValues(scope).Inc()
}

func ObserveSnapshot(store, event string) { // event: load|save|miss
	SnapshotEvents.WithLabelValues(store, event).Inc()
}

func ObserveModeration(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ModerationEvents.WithLabelValues(action, outcome).Inc()
}
