// Package builtin contains the stock transformers used by the pipeline.
package builtin

import (
	"strings"

	"medetl/pkg/records"
)

// Normalize strips leading and trailing whitespace from every string value
// in place. Nil values (absent fields) and non-string values are left
// untouched; an empty string stays an empty string rather than becoming
// absent.
type Normalize struct{}

func (Normalize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for k, v := range r {
			if s, ok := v.(string); ok {
				r[k] = strings.TrimSpace(s)
			}
		}
	}
	return in
}
