package domain

import (
	"context"
	"time"
)

// ModuleName is the registry name the query log ports are published under
const ModuleName = "querylog"

// RecorderPort stores searches for later aggregation
type RecorderPort interface {
	Record(ctx context.Context, e Entry) error
}

// PopularPort aggregates recorded searches since a point in time
type PopularPort interface {
	Popular(ctx context.Context, since time.Time, limit int) ([]Popular, error)
}
