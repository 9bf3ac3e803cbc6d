// Package csv implements a streaming parser for delimiter-separated text
// tables whose first row names the fields. It produces records keyed by the
// lowercased header names and preserves the distinction between an empty
// cell (empty string) and an absent cell (nil) when a row is shorter than
// the header.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"medetl/internal/parser"
	"medetl/pkg/records"
)

// Options configures the parser. Values pass through untrimmed; whitespace
// normalization is a transformer concern.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune
}

// Parser parses delimited input according to Options. It is safe to reuse
// across inputs but is not concurrency-safe.
type Parser struct {
	opt     Options
	headers []string
}

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

var _ parser.Parser = (*Parser)(nil)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// lower performs Unicode-correct lowercasing of header names. ASCII headers
// behave exactly like strings.ToLower; headers carrying diacritics or
// non-Latin scripts are folded per the Unicode case tables.
var lower = cases.Lower(language.Und)

// Parse consumes the table from r and returns one record per data row, in
// source order. The first row is the header and is consumed, not emitted.
//
// Per-cell rules:
//   - header names are trimmed and lowercased
//   - present values pass through verbatim; an empty cell stays an empty
//     string
//   - cells missing because the row is shorter than the header are nil
//   - cells beyond the header width are dropped
func (p *Parser) Parse(r io.Reader) ([]records.Record, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	h, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("csv: input has no header row")
		}
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	headers := normalizeHeaders(h)
	p.headers = headers

	out := make([]records.Record, 0, 1024)
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", line, err)
		}

		rec := make(records.Record, len(headers))
		for i, key := range headers {
			if i >= len(row) {
				rec[key] = nil
				continue
			}
			rec[key] = row[i]
		}
		out = append(out, rec)
	}
	return out, nil
}

// Headers returns the normalized header names of the most recently parsed
// input, in source order. It is nil before the first Parse.
func (p *Parser) Headers() []string { return p.headers }

// normalizeHeaders lowercases and trims header names and strips a UTF-8 BOM
// from the first cell if present.
func normalizeHeaders(h []string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		res[i] = lower.String(c)
	}
	return res
}
