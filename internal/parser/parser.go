// Package parser defines the contract shared by the format-specific
// parsers: turn a byte stream into an ordered slice of records.
package parser

import (
	"io"

	"medetl/pkg/records"
)

type Parser interface {
	Parse(r io.Reader) ([]records.Record, error)
}
