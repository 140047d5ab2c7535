package coordinator

import "time"

// Recorder is the metrics port the coordinator reports cycle outcomes
// through. It is deliberately narrow so this package never imports
// prometheus/client_golang directly — a host wires a Prometheus-backed
// implementation (or a no-op) at the composition root (DOMAIN STACK: C12
// wiring).
type Recorder interface {
	ObserveCycleDuration(d time.Duration)
	IncFiltersStale(n int)
	IncFiltersUpdated(n int)
	IncFiltersFailed(n int)
}

// NopRecorder discards everything; the default when no Recorder is wired.
type NopRecorder struct{}

func (NopRecorder) ObserveCycleDuration(time.Duration) {}
func (NopRecorder) IncFiltersStale(int)                {}
func (NopRecorder) IncFiltersUpdated(int)              {}
func (NopRecorder) IncFiltersFailed(int)               {}
