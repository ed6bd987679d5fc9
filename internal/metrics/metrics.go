package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes Prometheus metrics for advisory pipeline runs.
type Collector struct {
	registry      *prometheus.Registry
	runsTotal     *prometheus.CounterVec
	fetchFailures prometheus.Counter
	windowsFound  *prometheus.HistogramVec
	bestScore     *prometheus.GaugeVec
}

// NewCollector constructs a collector with a dedicated registry.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "humidsentinel",
		Subsystem: "advisory",
		Name:      "runs_total",
		Help:      "Advisory pipeline runs, partitioned by scenario and outcome.",
	}, []string{"scenario", "outcome"})

	fetchFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "humidsentinel",
		Subsystem: "forecast",
		Name:      "fetch_failures_total",
		Help:      "Failed forecast provider fetches.",
	})

	windowsFound := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "humidsentinel",
		Subsystem: "advisory",
		Name:      "candidate_windows",
		Help:      "Candidate windows returned per scenario run.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20},
	}, []string{"scenario"})

	bestScore := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "humidsentinel",
		Subsystem: "advisory",
		Name:      "best_window_score",
		Help:      "Score of the top-ranked window from the latest run.",
	}, []string{"scenario"})

	for _, c := range []prometheus.Collector{runsTotal, fetchFailures, windowsFound, bestScore} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:      registry,
		runsTotal:     runsTotal,
		fetchFailures: fetchFailures,
		windowsFound:  windowsFound,
		bestScore:     bestScore,
	}, nil
}

// Handler returns an HTTP handler exposing the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRun records the outcome of one scenario run.
func (c *Collector) ObserveRun(scenario, outcome string, windows int) {
	c.runsTotal.WithLabelValues(scenario, outcome).Inc()
	c.windowsFound.WithLabelValues(scenario).Observe(float64(windows))
}

// SetBestScore publishes the latest top window score for a scenario.
func (c *Collector) SetBestScore(scenario string, score float64) {
	c.bestScore.WithLabelValues(scenario).Set(score)
}

// ObserveFetchFailure counts a failed provider fetch.
func (c *Collector) ObserveFetchFailure() {
	c.fetchFailures.Inc()
}
