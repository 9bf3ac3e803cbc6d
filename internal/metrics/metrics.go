// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the pipeline.
//
// A global, pluggable backend defaults to a no-op implementation, so metric
// calls are always safe even when no real backend is configured. Concrete
// systems (Prometheus Pushgateway) live in subpackages; the pipeline code
// depends only on this package.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a value in a duration-style metric.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes metrics if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics stay optional.
type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)      {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error                            { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency and success/failure of one pipeline step
// (convert, migrate).
func RecordStep(step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"step": step, "status": status}
	backend.IncCounter("pipeline_step_total", 1, lbls)
	backend.ObserveDuration("pipeline_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a record-level counter for the given kind.
// Typical kinds: "parsed", "written", "inserted".
func RecordRows(kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("pipeline_records_total", float64(delta), Labels{"kind": kind})
}

// RecordBatches increments the committed-batch counter.
func RecordBatches(delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("pipeline_batches_total", float64(delta), nil)
}
