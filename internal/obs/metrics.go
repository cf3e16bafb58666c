package obs

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lux2ube/Customer-service-sub002/internal/record"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	entriesPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_entries_posted_total",
		Help: "Journal entries written, including reversing entries.",
	})

	recordsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_ingested_total",
			Help: "Records created by message ingestion.",
		},
		[]string{"kind"},
	)

	recordsAssigned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "records_assigned_total",
		Help: "Records attributed to a client.",
	})

	recordsUnassigned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "records_unassigned_total",
		Help: "Assignments reversed back to the suspense account.",
	})

	parseFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sms_parse_failures_total",
		Help: "Messages no parsing rule recognized.",
	})
)

// Init registers all metrics with the default registry. Call once at startup.
func Init() {
	prometheus.MustRegister(
		httpInFlight,
		httpRequestsTotal,
		httpRequestDuration,
		entriesPosted,
		recordsIngested,
		recordsAssigned,
		recordsUnassigned,
		parseFailures,
	)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func EntryPosted() {
	entriesPosted.Inc()
}

func RecordIngested(kind string) {
	recordsIngested.WithLabelValues(kind).Inc()
}

func ParseFailure() {
	parseFailures.Inc()
}

// RecordNotifier counts terminal reconciliation outcomes. It satisfies the
// reconcile notifier hook.
type RecordNotifier struct{}

func (RecordNotifier) RecordAssigned(_ context.Context, _ *record.Record) {
	recordsAssigned.Inc()
}

func (RecordNotifier) RecordUnassigned(_ context.Context, _ *record.Record) {
	recordsUnassigned.Inc()
}

// Instrument measures request rate, latency and in-flight count for every
// route it wraps.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpInFlight.Dec()
	})
}

// statusWriter captures the response code for labeling.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
