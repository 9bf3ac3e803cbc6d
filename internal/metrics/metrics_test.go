package metrics

import (
	"errors"
	"testing"
	"time"
)

type capturedMetric struct {
	name   string
	value  float64
	labels Labels
}

type captureBackend struct {
	counters  []capturedMetric
	durations []capturedMetric
	flushed   int
}

func (c *captureBackend) IncCounter(name string, delta float64, labels Labels) {
	c.counters = append(c.counters, capturedMetric{name: name, value: delta, labels: labels})
}

func (c *captureBackend) ObserveDuration(name string, value float64, labels Labels) {
	c.durations = append(c.durations, capturedMetric{name: name, value: value, labels: labels})
}

func (c *captureBackend) Flush() error {
	c.flushed++
	return nil
}

func withBackend(t *testing.T, b Backend) {
	t.Helper()
	prev := backend
	SetBackend(b)
	t.Cleanup(func() { backend = prev })
}

func TestRecordStep(t *testing.T) {
	cb := &captureBackend{}
	withBackend(t, cb)

	RecordStep("convert", nil, 2*time.Second)
	RecordStep("migrate", errors.New("boom"), time.Second)

	if len(cb.counters) != 2 {
		t.Fatalf("got %d counters, want 2", len(cb.counters))
	}
	if cb.counters[0].name != "pipeline_step_total" || cb.counters[0].labels["status"] != "success" {
		t.Errorf("first counter: %+v", cb.counters[0])
	}
	if cb.counters[1].labels["step"] != "migrate" || cb.counters[1].labels["status"] != "failure" {
		t.Errorf("second counter: %+v", cb.counters[1])
	}

	if len(cb.durations) != 2 {
		t.Fatalf("got %d durations, want 2", len(cb.durations))
	}
	if cb.durations[0].name != "pipeline_step_duration_seconds" || cb.durations[0].value != 2 {
		t.Errorf("first duration: %+v", cb.durations[0])
	}
}

func TestRecordRows(t *testing.T) {
	cb := &captureBackend{}
	withBackend(t, cb)

	RecordRows("parsed", 1398)
	RecordRows("inserted", 0)
	RecordRows("inserted", -3)

	if len(cb.counters) != 1 {
		t.Fatalf("got %d counters, want 1 (non-positive deltas dropped)", len(cb.counters))
	}
	m := cb.counters[0]
	if m.name != "pipeline_records_total" || m.value != 1398 || m.labels["kind"] != "parsed" {
		t.Errorf("counter: %+v", m)
	}
}

func TestRecordBatches(t *testing.T) {
	cb := &captureBackend{}
	withBackend(t, cb)

	RecordBatches(1)
	RecordBatches(1)
	RecordBatches(0)

	if len(cb.counters) != 2 {
		t.Fatalf("got %d counters, want 2", len(cb.counters))
	}
	if cb.counters[0].name != "pipeline_batches_total" {
		t.Errorf("counter name: %q", cb.counters[0].name)
	}
}

func TestSetBackendNilKeepsCurrent(t *testing.T) {
	cb := &captureBackend{}
	withBackend(t, cb)

	SetBackend(nil)
	RecordBatches(1)

	if len(cb.counters) != 1 {
		t.Fatalf("nil SetBackend must not replace the backend")
	}
}

func TestFlush(t *testing.T) {
	cb := &captureBackend{}
	withBackend(t, cb)

	if err := Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if cb.flushed != 1 {
		t.Fatalf("flushed %d times, want 1", cb.flushed)
	}
}
