// Package repo provides postgres access for segments and videos
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"scribe/internal/core/search"
	"scribe/internal/modkit/repokit"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/store"
)

// Repo is the store contract the search engine runs against
type Repo interface {
	search.SegmentFinder
	search.VideoGetter
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// LikePatterns turns terms into escaped %term% patterns so ILIKE matches literal substrings
func LikePatterns(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		out = append(out, "%"+search.EscapeLike(t)+"%")
	}
	return out
}

func (r *queries) FindSegments(ctx context.Context, terms []string) ([]search.Segment, error) {
	patterns := LikePatterns(terms)
	if len(patterns) == 0 {
		return nil, nil
	}
	const sql = `
select id::text, video_id, text, start_time, end_time
from segments
where text ilike any($1)
order by id
`
	out, err := store.Many(ctx, r.q, scanSegment, sql, patterns)
	if err != nil {
		return nil, perr.FromPostgres(err, "find segments")
	}
	return out, nil
}

func scanSegment(row store.Row) (search.Segment, error) {
	var s search.Segment
	err := row.Scan(&s.ID, &s.VideoID, &s.Text, &s.StartTime, &s.EndTime)
	return s, err
}

func (r *queries) GetVideo(ctx context.Context, ytID string) (search.Video, bool, error) {
	const sql = `
select yt_id, coalesce(title, ''), coalesce(thumbnail, ''), coalesce(channel_name, ''), upload_date
from videos
where yt_id = $1
`
	var (
		v        search.Video
		uploaded *time.Time
	)
	err := r.q.QueryRow(ctx, sql, ytID).Scan(&v.YTID, &v.Title, &v.Thumbnail, &v.Channel, &uploaded)
	if errors.Is(err, pgx.ErrNoRows) {
		return search.Video{}, false, nil
	}
	if err != nil {
		return search.Video{}, false, perr.FromPostgresf(err, "get video %s", ytID)
	}
	if uploaded != nil {
		v.UploadDate = uploaded.UTC()
	}
	return v, true, nil
}
