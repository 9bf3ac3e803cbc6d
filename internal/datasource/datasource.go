// Package datasource abstracts where pipeline input bytes come from. Both
// stages read their input through a Source, so the components never touch
// the filesystem directly.
package datasource

import (
	"context"
	"io"
)

type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
