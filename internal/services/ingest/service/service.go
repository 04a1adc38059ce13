// Package service loads subtitle transcripts into the segment store
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"scribe/internal/core/normalize"
	"scribe/internal/core/srt"
	"scribe/internal/modkit/repokit"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/logger"
	"scribe/internal/services/ingest/domain"
	"scribe/internal/services/ingest/repo"
)

// Service defines the ingest service contract
type Service interface {
	domain.IngestPort
	domain.SchemaPort
}

// Svc implements Service over Postgres
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	now    func() time.Time
	newID  func() uuid.UUID
}

// New creates an ingest service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("ingest.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ingest.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, now: time.Now, newID: uuid.New}
}

// EnsureSchema creates the videos and segments tables when missing
func (s *Svc) EnsureSchema(ctx context.Context) error {
	return repokit.MustBind(s.binder, s.db).EnsureSchema(ctx)
}

// Segments converts parsed cues to storable segments
// times are rounded to whole seconds and an end before its start is clamped to the start
func Segments(cues []srt.Cue) []domain.Segment {
	out := make([]domain.Segment, 0, len(cues))
	for _, c := range cues {
		text := normalize.Line(c.Text)
		if text == "" {
			continue
		}
		start, end := srt.Seconds(c.Start), srt.Seconds(c.End)
		if end < start {
			end = start
		}
		out = append(out, domain.Segment{StartTime: start, EndTime: end, Text: text})
	}
	return out
}

// Ingest registers the video and loads its transcript in one transaction
// an already indexed video is left untouched unless req.Replace is set
func (s *Svc) Ingest(ctx context.Context, req domain.Request) (domain.Result, error) {
	v := req.Video
	v.YTID = strings.TrimSpace(v.YTID)
	if v.YTID == "" {
		return domain.Result{}, perr.WithField(perr.InvalidArgf("video id is required"), "yt_id")
	}
	if req.Transcript == nil {
		return domain.Result{}, perr.WithField(perr.InvalidArgf("transcript is required"), "transcript")
	}
	v.Title = normalize.Line(v.Title)
	v.Channel = normalize.Line(v.Channel)
	if !v.UploadDate.IsZero() {
		v.UploadDate = v.UploadDate.UTC()
	}

	cues, err := srt.Parse(req.Transcript)
	if err != nil {
		return domain.Result{}, perr.WithOp(err, "ingest.Parse")
	}
	segs := Segments(cues)

	res := domain.Result{RunID: s.newID(), YTID: v.YTID}
	log := logger.C(ctx).With().Str("run_id", res.RunID.String()).Str("yt_id", v.YTID).Logger()

	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)

		exists, err := r.VideoExists(ctx, v.YTID)
		if err != nil {
			return err
		}
		if exists && !req.Replace {
			res.Skipped = true
			return nil
		}
		res.Replaced = exists

		if err := r.UpsertVideo(ctx, v, domain.StatusDownloaded); err != nil {
			return err
		}
		n, err := r.ReplaceSegments(ctx, v.YTID, segs)
		if err != nil {
			return err
		}
		res.Segments = int(n)
		return r.MarkProcessed(ctx, v.YTID, s.now().UTC())
	})
	if err != nil {
		log.Error().Err(err).Msg("ingest failed")
		return domain.Result{}, perr.WithOp(err, "ingest.Ingest")
	}

	if res.Skipped {
		log.Info().Msg("video already indexed, skipped")
	} else {
		log.Info().Int("segments", res.Segments).Int("cues", len(cues)).Bool("replaced", res.Replaced).Msg("transcript loaded")
	}
	return res, nil
}
