package domain

import "context"

// IngestPort loads transcripts into the segment store
type IngestPort interface {
	Ingest(ctx context.Context, req Request) (Result, error)
}

// SchemaPort creates the segment store tables
type SchemaPort interface {
	EnsureSchema(ctx context.Context) error
}
