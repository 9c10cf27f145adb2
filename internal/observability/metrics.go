package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

// Metrics holds the service's collectors on a private registry so tests can
// build as many instances as they like.
type Metrics struct {
	registry       *prometheus.Registry
	decisions      *prometheus.CounterVec
	matchesFormed  prometheus.Counter
	matchesRevoked prometheus.Counter
	rankDuration   *prometheus.HistogramVec
	tagsCreated    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collabin",
			Name:      "swipe_decisions_total",
			Help:      "Swipe decisions recorded, by side and decision.",
		}, []string{"side", "decision"}),
		matchesFormed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collabin",
			Name:      "matches_formed_total",
			Help:      "Swipes that became a mutual match.",
		}),
		matchesRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collabin",
			Name:      "matches_revoked_total",
			Help:      "Mutual matches revoked by either side.",
		}),
		rankDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "collabin",
			Name:      "ranking_duration_seconds",
			Help:      "Time spent ranking candidates.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"ranker"}),
		tagsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collabin",
			Name:      "tags_created_total",
			Help:      "Tags created by the reconciler, by kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.decisions, m.matchesFormed, m.matchesRevoked, m.rankDuration, m.tagsCreated)
	return m
}

// ObserveDecision records one swipe write and any match transition it caused.
func (m *Metrics) ObserveDecision(side domain.Side, d domain.Decision, before, after bool) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(side.String(), d.String()).Inc()
	switch {
	case !before && after:
		m.matchesFormed.Inc()
	case before && !after:
		m.matchesRevoked.Inc()
	}
}

func (m *Metrics) ObserveRanking(ranker string, started time.Time) {
	if m == nil {
		return
	}
	m.rankDuration.WithLabelValues(ranker).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveTagCreated(kind domain.TagKind) {
	if m == nil {
		return
	}
	m.tagsCreated.WithLabelValues(kind.String()).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
