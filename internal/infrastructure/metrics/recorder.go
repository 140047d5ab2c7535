// Package metrics provides a Prometheus-backed implementation of
// coordinator.Recorder, registered against a caller-supplied
// prometheus.Registerer rather than the global default so a host can embed
// this alongside its own metrics without collisions (DOMAIN STACK wiring).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements coordinator.Recorder.
type PrometheusRecorder struct {
	cycleDuration  prometheus.Histogram
	filtersStale   prometheus.Counter
	filtersUpdated prometheus.Counter
	filtersFailed  prometheus.Counter
}

// NewPrometheusRecorder builds and registers the coordinator's metrics
// against reg.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "flm_update_duration_seconds",
			Help:    "Duration of one filter list update cycle.",
			Buckets: prometheus.DefBuckets,
		}),
		filtersStale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flm_filters_stale_total",
			Help: "Number of filters found stale across all cycles.",
		}),
		filtersUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flm_filters_updated_total",
			Help: "Number of filters successfully updated across all cycles.",
		}),
		filtersFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flm_filters_failed_total",
			Help: "Number of per-filter update failures across all cycles.",
		}),
	}

	for _, c := range []prometheus.Collector{r.cycleDuration, r.filtersStale, r.filtersUpdated, r.filtersFailed} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) ObserveCycleDuration(d time.Duration) { r.cycleDuration.Observe(d.Seconds()) }
func (r *PrometheusRecorder) IncFiltersStale(n int)                { r.filtersStale.Add(float64(n)) }
func (r *PrometheusRecorder) IncFiltersUpdated(n int)              { r.filtersUpdated.Add(float64(n)) }
func (r *PrometheusRecorder) IncFiltersFailed(n int)               { r.filtersFailed.Add(float64(n)) }
