package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry propio (no el global) para que los tests no choquen.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_marketplace",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pet_marketplace",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	workflowTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_marketplace",
			Subsystem: "workflow",
			Name:      "transitions_total",
			Help:      "Status transitions applied by the workflow engine.",
		},
		[]string{"workflow", "to"},
	)

	broadcasts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_marketplace",
			Subsystem: "chat",
			Name:      "broadcasts_total",
			Help:      "Chat messages fanned out to websocket subscribers.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		workflowTransitions,
		broadcasts,
	)
}

// Handler expone el registry en formato Prometheus.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordTransition cuenta una transición ya persistida. to="DELETED" cuando el reject borra la fila.
func RecordTransition(workflow, to string) {
	workflowTransitions.WithLabelValues(workflow, to).Inc()
}

func RecordBroadcast(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	broadcasts.WithLabelValues(result).Inc()
}
