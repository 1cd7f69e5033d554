package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

// Metrics exports query cache events as Prometheus counters labelled by
// resource
type Metrics struct {
	lookups     *prometheus.CounterVec
	fetches     *prometheus.CounterVec
	fetchErrors *prometheus.CounterVec
	invalidated *prometheus.CounterVec
}

// Lookup results
const (
	resultHit   = "hit"
	resultStale = "stale"
	resultMiss  = "miss"
)

// Fetch outcomes
const (
	fetchStarted = "started"
	fetchJoined  = "joined"
)

// NewMetrics creates the counters and registers them on reg
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "query_cache",
				Name:      "lookups_total",
				Help:      "Cache lookups by resource and result (hit, stale, miss).",
			},
			[]string{"resource", "result"},
		),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "query_cache",
				Name:      "fetches_total",
				Help:      "Backend fetches started, and reads that joined an in-flight fetch.",
			},
			[]string{"resource", "outcome"},
		),
		fetchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "query_cache",
				Name:      "fetch_errors_total",
				Help:      "Failed fetches by resource and error kind.",
			},
			[]string{"resource", "kind"},
		),
		invalidated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "query_cache",
				Name:      "invalidated_entries_total",
				Help:      "Cache entries marked stale by invalidation.",
			},
			[]string{"resource"},
		),
	}

	for _, c := range []prometheus.Collector{m.lookups, m.fetches, m.fetchErrors, m.invalidated} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hit records a fresh cache hit
func (m *Metrics) Hit(resource string) {
	m.lookups.WithLabelValues(resource, resultHit).Inc()
}

// StaleHit records a hit on a stale entry
func (m *Metrics) StaleHit(resource string) {
	m.lookups.WithLabelValues(resource, resultStale).Inc()
}

// Miss records a cold miss
func (m *Metrics) Miss(resource string) {
	m.lookups.WithLabelValues(resource, resultMiss).Inc()
}

// FetchStarted records a backend fetch
func (m *Metrics) FetchStarted(resource string) {
	m.fetches.WithLabelValues(resource, fetchStarted).Inc()
}

// FetchJoined records a read served by an in-flight fetch
func (m *Metrics) FetchJoined(resource string) {
	m.fetches.WithLabelValues(resource, fetchJoined).Inc()
}

// FetchFailed records a failed fetch
func (m *Metrics) FetchFailed(resource string, kind shared.ErrorKind) {
	m.fetchErrors.WithLabelValues(resource, string(kind)).Inc()
}

// Invalidated records entries marked stale
func (m *Metrics) Invalidated(resource string, entries int) {
	if entries > 0 {
		m.invalidated.WithLabelValues(resource).Add(float64(entries))
	}
}

var _ query.Recorder = (*Metrics)(nil)
