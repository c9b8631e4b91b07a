package controlplane

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors that report daemon activity.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	moves    *prometheus.CounterVec
	searches *prometheus.CounterVec
}

// MustNewMetrics constructs a Metrics instance using the provided registerer.
// Collectors already registered under the same name are reused.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "missionctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served by the daemon.",
		},
		[]string{"method", "route", "status"},
	)
	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "missionctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests served by the daemon.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	moves := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "missionctl",
			Subsystem: "board",
			Name:      "moves_total",
			Help:      "Board move requests by outcome.",
		},
		[]string{"outcome"},
	)
	searches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "missionctl",
			Subsystem: "search",
			Name:      "queries_total",
			Help:      "Search queries by result kind.",
		},
		[]string{"result"},
	)

	collectors := []prometheus.Collector{requests, latency, moves, searches}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			already, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				panic(err)
			}
			switch collector {
			case requests:
				requests = already.ExistingCollector.(*prometheus.CounterVec)
			case latency:
				latency = already.ExistingCollector.(*prometheus.HistogramVec)
			case moves:
				moves = already.ExistingCollector.(*prometheus.CounterVec)
			case searches:
				searches = already.ExistingCollector.(*prometheus.CounterVec)
			}
		}
	}

	return &Metrics{
		requests: requests,
		latency:  latency,
		moves:    moves,
		searches: searches,
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncMove counts a board move request.
func (m *Metrics) IncMove(moved bool) {
	if m == nil {
		return
	}
	outcome := "noop"
	if moved {
		outcome = "moved"
	}
	m.moves.WithLabelValues(outcome).Inc()
}

// IncSearch counts a search query.
func (m *Metrics) IncSearch(res SearchResponse) {
	if m == nil {
		return
	}
	result := "hit"
	switch {
	case res.NoQuery:
		result = "no_query"
	case res.Total == 0:
		result = "miss"
	}
	m.searches.WithLabelValues(result).Inc()
}
