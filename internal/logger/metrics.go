package logger

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes recorded by Metrics.ObserveFetch
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the Prometheus collectors of one pipeline run. Each Metrics owns its
// registry so runs and tests never share state.
type Metrics struct {
	registry *prometheus.Registry

	fetches       *prometheus.CounterVec
	fetchRetries  prometheus.Counter
	fetchDuration prometheus.Histogram
	roundsParsed  *prometheus.CounterVec
	players       prometheus.Gauge
}

// NewMetrics creates and registers the pipeline collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wurstliga_fetch_total",
			Help: "Round page fetches by outcome.",
		}, []string{"outcome"}),
		fetchRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wurstliga_fetch_retries_total",
			Help: "Retried round page requests.",
		}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wurstliga_fetch_duration_seconds",
			Help:    "Time spent fetching a round page, retries included.",
			Buckets: prometheus.DefBuckets,
		}),
		roundsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wurstliga_rounds_parsed_total",
			Help: "Assembled rounds by status.",
		}, []string{"status"}),
		players: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wurstliga_standings_players",
			Help: "Players in the last computed standings.",
		}),
	}

	m.registry.MustRegister(m.fetches, m.fetchRetries, m.fetchDuration, m.roundsParsed, m.players)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch records one round fetch
func (m *Metrics) ObserveFetch(d time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(d.Seconds())
}

// IncRetries counts a retried request
func (m *Metrics) IncRetries() {
	m.fetchRetries.Inc()
}

// IncRoundsParsed counts an assembled round
func (m *Metrics) IncRoundsParsed(status string) {
	m.roundsParsed.WithLabelValues(status).Inc()
}

// SetStandingsPlayers records the size of the standings table
func (m *Metrics) SetStandingsPlayers(n int) {
	m.players.Set(float64(n))
}

// WriteTextfile writes all metrics in the node-exporter textfile format. The file is
// replaced atomically.
func (m *Metrics) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, m.registry); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}
