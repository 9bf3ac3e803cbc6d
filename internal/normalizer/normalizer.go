// Package normalizer implements the first pipeline stage: it reads the
// pipe-delimited source table, normalizes every row into a record with
// lowercase field names and trimmed values, and writes the ordered record
// sequence as a single JSON document for the loader to consume later.
package normalizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/zeebo/xxh3"

	"medetl/internal/config"
	"medetl/internal/datasource/file"
	"medetl/internal/metrics"
	csvparser "medetl/internal/parser/csv"
	"medetl/internal/report"
	"medetl/internal/schema"
	"medetl/internal/transformer"
	"medetl/internal/transformer/builtin"
	"medetl/pkg/records"
)

// ErrMissingInput is returned when the source table does not exist. The run
// fails before any output is written.
var ErrMissingInput = errors.New("source table not found")

// Run converts the source table at cfg.MetadataPath() into the document at
// cfg.DocumentPath(). It returns the number of records written.
//
// The emitted document is a JSON array with one object per source row, in
// source order, 2-space indented, with non-ASCII characters written
// literally. Present-but-empty values serialize as "", absent values as
// null.
func Run(ctx context.Context, cfg config.Config, sink report.Sink) (int, error) {
	src := cfg.MetadataPath()
	rc, err := file.NewLocal(src).Open(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrMissingInput, src)
		}
		return 0, err
	}
	defer rc.Close()

	parser := csvparser.NewParser(csvparser.Options{Comma: cfg.DelimiterRune()})
	recs, err := parser.Parse(rc)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", src, err)
	}

	metrics.RecordRows("parsed", int64(len(recs)))

	if unknown, missing := schema.Drift(parser.Headers()); len(unknown) > 0 || len(missing) > 0 {
		sink.SchemaDrift(unknown, missing)
	}

	chain := transformer.Chain{builtin.Normalize{}}
	recs = chain.Apply(recs)

	doc, err := MarshalDocument(recs)
	if err != nil {
		return 0, err
	}

	out := cfg.DocumentPath()
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", out, err)
	}

	metrics.RecordRows("written", int64(len(recs)))
	sink.DocumentWritten(out, len(recs), xxh3.Hash(doc))
	if len(recs) > 0 {
		sink.SampleRecord(recs[0])
	}
	return len(recs), nil
}

// MarshalDocument serializes recs with the document's canonical formatting:
// 2-space indentation, literal non-ASCII, object keys in sorted order, a
// trailing newline. Deserializing and re-marshaling a document yields
// byte-identical output.
func MarshalDocument(recs []records.Record) ([]byte, error) {
	if recs == nil {
		recs = []records.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(recs); err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return buf.Bytes(), nil
}
