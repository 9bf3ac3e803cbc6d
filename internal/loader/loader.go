// Package loader implements the second pipeline stage: it reads the
// normalizer's JSON document, bootstraps the medicines schema in the
// destination SQLite store, and inserts every record in fixed-size batches
// with one transaction commit per batch.
//
// Row assembly is driven by the shared schema contract: values are bound by
// field name in contract order, so the insert column order can never drift
// from the table definition.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zeebo/xxh3"

	"medetl/internal/config"
	"medetl/internal/datasource/file"
	"medetl/internal/metrics"
	jsonparser "medetl/internal/parser/json"
	"medetl/internal/report"
	"medetl/internal/schema"
	"medetl/internal/storage/sqlite/ddl"
	"medetl/pkg/records"
)

// ErrMissingDocument is returned when the intermediate document does not
// exist. The run fails before the destination store is opened or created.
var ErrMissingDocument = errors.New("document not found")

// Store is the destination capability the loader needs. It is satisfied by
// *sqlite.Repository; tests substitute counting fakes.
type Store interface {
	// Exec runs a DDL statement.
	Exec(ctx context.Context, stmt string) error
	// InsertRows inserts rows in a single transaction committed once.
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
}

// OpenStoreFunc opens the destination store. It is invoked only after the
// input document has been found, so a missing document never creates a
// store file. The returned func closes the store; it may be nil.
type OpenStoreFunc func(ctx context.Context) (Store, func(), error)

// Run loads the document at cfg.DocumentPath() into the store opened by
// openStore. It returns the number of rows inserted.
func Run(ctx context.Context, cfg config.Config, openStore OpenStoreFunc, sink report.Sink) (int64, error) {
	start := time.Now()

	docPath := cfg.DocumentPath()
	rc, err := file.NewLocal(docPath).Open(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrMissingDocument, docPath)
		}
		return 0, err
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", docPath, err)
	}
	checksum := xxh3.Hash(data)

	recs, err := jsonparser.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", docPath, err)
	}
	metrics.RecordRows("parsed", int64(len(recs)))

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return 0, fmt.Errorf("open store: %w", err)
	}
	if closeStore != nil {
		defer closeStore()
	}

	if err := EnsureSchema(ctx, store); err != nil {
		return 0, err
	}

	total, err := insertBatches(ctx, store, recs, cfg.BatchSize, sink)
	if err != nil {
		return total, err
	}

	summary := report.LoadSummary{
		Rows:          total,
		DocumentPath:  docPath,
		DocumentBytes: int64(len(data)),
		DocChecksum:   checksum,
		StorePath:     cfg.DatabasePath(),
		Elapsed:       time.Since(start),
	}
	if fi, err := os.Stat(cfg.DatabasePath()); err == nil {
		summary.StoreBytes = fi.Size()
	}
	sink.LoadCompleted(summary)
	return total, nil
}

// EnsureSchema creates the medicines table and its secondary indexes if
// they do not already exist. Running it against a bootstrapped store is a
// no-op.
func EnsureSchema(ctx context.Context, store Store) error {
	stmts, err := ddl.BuildBootstrapSQL(ddl.FromContract())
	if err != nil {
		return fmt.Errorf("build schema ddl: %w", err)
	}
	for _, stmt := range stmts {
		if err := store.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

// insertBatches groups recs into batches of batchSize and inserts each
// batch with a single InsertRows call, i.e. one commit per batch. An error
// aborts the run; prior batches stay committed.
func insertBatches(ctx context.Context, store Store, recs []records.Record, batchSize int, sink report.Sink) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batch size must be > 0, got %d", batchSize)
	}

	cols := schema.Columns()
	var (
		total int64
		batch int
	)
	for startIdx := 0; startIdx < len(recs); startIdx += batchSize {
		end := startIdx + batchSize
		if end > len(recs) {
			end = len(recs)
		}

		rows := make([][]any, 0, end-startIdx)
		for _, rec := range recs[startIdx:end] {
			rows = append(rows, buildRow(rec, cols))
		}

		n, err := store.InsertRows(ctx, schema.Table, cols, rows)
		total += n
		if err != nil {
			return total, fmt.Errorf("insert batch %d: %w", batch+1, err)
		}

		batch++
		sink.BatchCommitted(batch, n, total)
		metrics.RecordBatches(1)
		metrics.RecordRows("inserted", n)
	}
	return total, nil
}

// buildRow binds rec's values in cols order. Absent or null fields become
// empty strings; fields not in the contract are ignored.
func buildRow(rec records.Record, cols []string) []any {
	row := make([]any, len(cols))
	for i, name := range cols {
		row[i] = rec.StringOr(name, "")
	}
	return row
}
