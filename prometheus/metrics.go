// Package prometheus records export metrics with the Prometheus client and
// writes them in the node exporter textfile format.
package prometheus

import (
	"github.com/fwojciec/c2cgpx"
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "c2cgpx"

// Request outcomes and cache results used as label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds the collectors of one export run.
type Metrics struct {
	Registry *prom.Registry

	requests        *prom.CounterVec
	requestDuration *prom.HistogramVec
	cacheLookups    *prom.CounterVec
	skipped         *prom.CounterVec
	waypoints       prom.Gauge
}

// NewMetrics constructs the collectors and registers them with reg.
// A nil reg gets a fresh registry.
func NewMetrics(reg *prom.Registry) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		Registry: reg,
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of API calls, including cache lookups and delays.",
			Buckets:   prom.DefBuckets,
		}, []string{"endpoint"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
		skipped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_documents_total",
			Help:      "Documents left out of the export by reason.",
		}, []string{"reason"}),
		waypoints: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "exported_waypoints",
			Help:      "Waypoints written by the last export.",
		}),
	}
	reg.MustRegister(m.requests, m.requestDuration, m.cacheLookups, m.skipped, m.waypoints)
	return m
}

// ObserveSkipped counts skipped documents by error code.
func (m *Metrics) ObserveSkipped(skipped []c2cgpx.Skipped) {
	for _, s := range skipped {
		m.skipped.WithLabelValues(c2cgpx.ErrorCode(s.Err)).Inc()
	}
}

// SetWaypoints records the number of exported waypoints.
func (m *Metrics) SetWaypoints(n int) {
	m.waypoints.Set(float64(n))
}

// WriteTextfile writes every registered metric to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, m.Registry)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
