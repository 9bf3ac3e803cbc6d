// Package report decouples operator-facing progress output from the
// pipeline logic. Both components emit events through a Sink instead of
// printing directly, so tests assert on emitted events and the CLI installs
// a log-backed sink.
package report

import (
	"fmt"
	"log"
	"time"

	"medetl/pkg/records"
)

// Sink receives progress and summary events during a run. Implementations
// must tolerate being called from a single goroutine only; the pipeline is
// synchronous.
type Sink interface {
	// DocumentWritten fires once after the normalizer writes the
	// intermediate document. checksum is the xxh3 hash of the document
	// bytes.
	DocumentWritten(path string, count int, checksum uint64)

	// SampleRecord fires with the first emitted record, when one exists.
	SampleRecord(rec records.Record)

	// SchemaDrift fires when the source header names diverge from the
	// field contract: unknown lists headers outside the contract, missing
	// lists contract fields with no source header. Drift is reported, not
	// fatal; the run continues.
	SchemaDrift(unknown, missing []string)

	// BatchCommitted fires after each committed batch. batch is 1-based,
	// rows is the batch size, total is the running insert count.
	BatchCommitted(batch int, rows int64, total int64)

	// LoadCompleted fires once after the loader finishes.
	LoadCompleted(s LoadSummary)
}

// LoadSummary is the final accounting of a loader run.
type LoadSummary struct {
	Rows          int64
	DocumentPath  string
	DocumentBytes int64
	DocChecksum   uint64
	StorePath     string
	StoreBytes    int64
	Elapsed       time.Duration
}

// Nop discards all events.
type Nop struct{}

func (Nop) DocumentWritten(string, int, uint64) {}
func (Nop) SampleRecord(records.Record)         {}
func (Nop) SchemaDrift([]string, []string)      {}
func (Nop) BatchCommitted(int, int64, int64)    {}
func (Nop) LoadCompleted(LoadSummary)           {}

// Log writes events as log lines. The zero value logs via the standard
// logger.
type Log struct{}

func (Log) DocumentWritten(path string, count int, checksum uint64) {
	log.Printf("wrote %d records to %s checksum=%016x", count, path, checksum)
}

func (Log) SampleRecord(rec records.Record) {
	log.Printf("sample (first record): %v", rec)
}

func (Log) SchemaDrift(unknown, missing []string) {
	if len(unknown) > 0 {
		log.Printf("warning: source headers outside the field contract: %v", unknown)
	}
	if len(missing) > 0 {
		log.Printf("warning: contract fields absent from source: %v", missing)
	}
}

func (Log) BatchCommitted(batch int, rows int64, total int64) {
	log.Printf("batch #%d: inserted=%d total_inserted=%d", batch, rows, total)
}

func (l Log) LoadCompleted(s LoadSummary) {
	log.Printf("migration complete: rows=%d elapsed=%s", s.Rows, s.Elapsed.Truncate(time.Millisecond))
	log.Printf("  document: %s (%s) checksum=%016x", s.DocumentPath, humanBytes(s.DocumentBytes), s.DocChecksum)
	log.Printf("  database: %s (%s)", s.StorePath, humanBytes(s.StoreBytes))
}

// Recorder captures events for test assertions.
type Recorder struct {
	Documents []DocumentEvent
	Samples   []records.Record
	Drifts    []DriftEvent
	Batches   []BatchEvent
	Summaries []LoadSummary
}

type DocumentEvent struct {
	Path     string
	Count    int
	Checksum uint64
}

type DriftEvent struct {
	Unknown []string
	Missing []string
}

type BatchEvent struct {
	Batch int
	Rows  int64
	Total int64
}

func (r *Recorder) DocumentWritten(path string, count int, checksum uint64) {
	r.Documents = append(r.Documents, DocumentEvent{Path: path, Count: count, Checksum: checksum})
}

func (r *Recorder) SampleRecord(rec records.Record) {
	r.Samples = append(r.Samples, rec)
}

func (r *Recorder) SchemaDrift(unknown, missing []string) {
	r.Drifts = append(r.Drifts, DriftEvent{Unknown: unknown, Missing: missing})
}

func (r *Recorder) BatchCommitted(batch int, rows int64, total int64) {
	r.Batches = append(r.Batches, BatchEvent{Batch: batch, Rows: rows, Total: total})
}

func (r *Recorder) LoadCompleted(s LoadSummary) {
	r.Summaries = append(r.Summaries, s)
}

func humanBytes(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)
	switch {
	case n >= mb:
		return fmt.Sprintf("%.2f MiB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KiB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
