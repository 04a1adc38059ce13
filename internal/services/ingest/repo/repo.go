// Package repo provides postgres access for videos and transcript segments
package repo

import (
	"context"
	"time"

	"scribe/internal/modkit/repokit"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/store"
	str "scribe/internal/platform/strings"
	ptime "scribe/internal/platform/time"
	"scribe/internal/services/ingest/domain"
)

// Schema holds the statements that create the segment store, run in order
var Schema = []string{
	`create table if not exists videos (
	yt_id          text primary key,
	title          text,
	upload_date    timestamptz,
	channel_name   text,
	duration       integer,
	thumbnail      text,
	status         smallint not null default 0,
	processed_date timestamptz
)`,
	`create table if not exists segments (
	id         bigserial primary key,
	video_id   text not null references videos (yt_id) on delete cascade,
	start_time integer not null,
	end_time   integer not null,
	text       text not null
)`,
	`create index if not exists segments_video_id_idx on segments (video_id, start_time)`,
}

// Repo is the ingest store contract
type Repo interface {
	EnsureSchema(ctx context.Context) error
	VideoExists(ctx context.Context, ytID string) (bool, error)
	UpsertVideo(ctx context.Context, v domain.Video, status domain.Status) error
	ReplaceSegments(ctx context.Context, ytID string, segs []domain.Segment) (int64, error)
	MarkProcessed(ctx context.Context, ytID string, at time.Time) error
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

func (r *queries) EnsureSchema(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return perr.FromPostgres(err, "ensure segment schema")
		}
	}
	return nil
}

func (r *queries) VideoExists(ctx context.Context, ytID string) (bool, error) {
	ok, err := store.Scalar[bool](ctx, r.q, `select exists (select 1 from videos where yt_id = $1)`, ytID)
	if err != nil {
		return false, perr.FromPostgresf(err, "video exists %s", ytID)
	}
	return ok, nil
}

func (r *queries) UpsertVideo(ctx context.Context, v domain.Video, status domain.Status) error {
	const sql = `
insert into videos (yt_id, title, upload_date, channel_name, duration, thumbnail, status)
values ($1, $2, $3, $4, $5, $6, $7)
on conflict (yt_id) do update set
	title        = excluded.title,
	upload_date  = excluded.upload_date,
	channel_name = excluded.channel_name,
	duration     = excluded.duration,
	thumbnail    = excluded.thumbnail,
	status       = excluded.status
`
	_, err := r.q.Exec(ctx, sql, v.YTID, str.SQLNull(v.Title), ptime.Ptr(v.UploadDate), str.SQLNull(v.Channel), v.Duration, str.SQLNull(v.Thumbnail), int16(status))
	if err != nil {
		return perr.FromPostgresf(err, "upsert video %s", v.YTID)
	}
	return nil
}

// ReplaceSegments drops every stored segment of the video and bulk loads segs
// run it inside a transaction so readers never see a half-loaded transcript
func (r *queries) ReplaceSegments(ctx context.Context, ytID string, segs []domain.Segment) (int64, error) {
	if _, err := r.q.Exec(ctx, `delete from segments where video_id = $1`, ytID); err != nil {
		return 0, perr.FromPostgresf(err, "clear segments %s", ytID)
	}
	if len(segs) == 0 {
		return 0, nil
	}

	starts := make([]int32, len(segs))
	ends := make([]int32, len(segs))
	texts := make([]string, len(segs))
	for i, s := range segs {
		starts[i], ends[i], texts[i] = int32(s.StartTime), int32(s.EndTime), s.Text
	}

	tag, err := r.q.Exec(ctx, `
insert into segments (video_id, start_time, end_time, text)
select $1, t.s, t.e, t.x
from unnest($2::int[], $3::int[], $4::text[]) as t(s, e, x)
`, ytID, starts, ends, texts)
	if err != nil {
		return 0, perr.FromPostgresf(err, "load segments %s", ytID)
	}
	return tag.RowsAffected(), nil
}

func (r *queries) MarkProcessed(ctx context.Context, ytID string, at time.Time) error {
	err := store.ExecOne(ctx, r.q,
		`update videos set status = $2, processed_date = $3 where yt_id = $1`,
		ytID, int16(domain.StatusProcessed), at)
	if err != nil {
		return perr.FromPostgresf(err, "mark processed %s", ytID)
	}
	return nil
}
