// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"

	"medetl/internal/datasource"
)

// Local is a data source that opens a single file from the local disk.
type Local struct{ path string }

// NewLocal returns a Local data source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

var _ datasource.Source = (*Local)(nil)

// Open opens the configured path for reading. A context that is already
// canceled short-circuits before the filesystem is touched. Filesystem
// errors are wrapped with the path and stay checkable with errors.Is, e.g.
// errors.Is(err, os.ErrNotExist) for a missing file.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
