package ports

import (
	"context"

	"occustats/domain/occupation"
)

// DatasetSource produces the occupation dataset once at startup
type DatasetSource interface {
	Load(ctx context.Context) (*occupation.Dataset, error)
}

// DatasetSink stores a loaded dataset, replacing what was there
type DatasetSink interface {
	Import(ctx context.Context, ds *occupation.Dataset) error
}
