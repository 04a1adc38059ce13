// Package repo reads index size figures from postgres
package repo

import (
	"context"

	"scribe/internal/modkit/repokit"
	perr "scribe/internal/platform/errors"
)

// Size summarizes how much transcript data is indexed
type Size struct {
	SegmentsSize string `json:"segments_size" example:"412 MB"`
	Videos       int64  `json:"videos"        example:"1380"`
	Segments     int64  `json:"segments"      example:"2210455"`
}

// Repo is the meta store contract
type Repo interface {
	Size(ctx context.Context) (Size, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Size(ctx context.Context) (Size, error) {
	const sql = `
select pg_size_pretty(pg_relation_size('segments')),
       (select count(*) from videos),
       (select count(*) from segments)
`
	var s Size
	if err := r.q.QueryRow(ctx, sql).Scan(&s.SegmentsSize, &s.Videos, &s.Segments); err != nil {
		return Size{}, perr.FromPostgres(err, "index size")
	}
	return s, nil
}
