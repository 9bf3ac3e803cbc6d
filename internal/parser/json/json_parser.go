// Package json parses the intermediate document produced by the normalizer:
// a single top-level JSON array of objects, one object per record.
//
// Decoding is conservative: the top-level value must be an array, and every
// element must be an object. Null field values decode to nil, preserving
// the present-but-empty vs. absent distinction from the document.
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"medetl/internal/parser"
	"medetl/pkg/records"
)

// Parser decodes a record-array document. The zero value is ready to use.
type Parser struct{}

// NewParser constructs a Parser.
func NewParser() *Parser { return &Parser{} }

var _ parser.Parser = (*Parser)(nil)

// Parse reads the full document from r and returns its records in document
// order. An empty array yields an empty, non-nil slice.
func (p *Parser) Parse(r io.Reader) ([]records.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("json: document is empty")
		}
		return nil, fmt.Errorf("json: decode document: %w", err)
	}

	arr, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("json: unsupported top-level JSON type %T, want array", root)
	}

	out := make([]records.Record, 0, len(arr))
	for i, elem := range arr {
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("json: element %d is not an object", i)
		}
		out = append(out, records.Record(obj))
	}
	return out, nil
}
