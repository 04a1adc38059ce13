// Package service runs searches and shapes results for display
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"scribe/internal/core/search"
	"scribe/internal/modkit/repokit"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/logger"
	ptime "scribe/internal/platform/time"
	"scribe/internal/services/api/search/domain"
	"scribe/internal/services/api/search/repo"
	qdom "scribe/internal/services/querylog/domain"
)

// DefaultWatchBase prefixes video ids in segment links
const DefaultWatchBase = "https://youtu.be/"

// Service defines the service contract for search
type Service interface{ domain.ServicePort }

// Config tunes presentation and recording
type Config struct {
	Highlighter search.Highlighter
	WatchBase   string
	// Record sends every non-empty search to the query log
	Record bool
	// Concurrency bounds parallel video lookups per request, 0 keeps the engine default
	Concurrency int
}

// Svc implements the Service interface
type Svc struct {
	engine *search.Engine
	rec    qdom.RecorderPort
	cfg    Config
}

// New creates a search service over the Postgres segment and video store
// rec may be nil when searches should not be recorded
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], rec qdom.RecorderPort, cfg Config) *Svc {
	if db == nil {
		panic("search.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("search.Service requires a non nil Repo binder")
	}
	r := repokit.MustBind(binder, db)
	return NewWithStores(r, r, rec, cfg)
}

// NewWithStores wires the engine to explicit stores
func NewWithStores(segments search.SegmentFinder, videos search.VideoGetter, rec qdom.RecorderPort, cfg Config) *Svc {
	if cfg.WatchBase == "" {
		cfg.WatchBase = DefaultWatchBase
	}
	if cfg.Highlighter.Open == "" && cfg.Highlighter.Close == "" {
		cfg.Highlighter = search.NewHighlighter()
	}
	return &Svc{
		engine: search.NewEngine(segments, videos, search.WithConcurrency(cfg.Concurrency)),
		rec:    rec,
		cfg:    cfg,
	}
}

// Search runs the query and maps the ranked result to display DTOs
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.SearchResult, error) {
	if utf8.RuneCountInString(in.Q) > domain.MaxQueryLen {
		return domain.SearchResult{}, perr.WithField(perr.InvalidArgf("query longer than %d characters", domain.MaxQueryLen), "q")
	}

	res, err := s.engine.Search(ctx, in.Q, in.Strict)
	if err != nil {
		return domain.SearchResult{}, err
	}

	out := s.toResult(res)
	if !res.Empty {
		s.record(ctx, res, out)
	}
	return out, nil
}

func (s *Svc) toResult(res search.Result) domain.SearchResult {
	terms := res.Query.Terms
	if terms == nil {
		terms = []string{}
	}
	out := domain.SearchResult{
		Query:         strings.TrimSpace(res.Query.Raw),
		Terms:         terms,
		Strict:        res.Query.Strict,
		Empty:         res.Empty,
		TotalVideos:   len(res.Videos),
		TotalSegments: res.Segments(),
		Videos:        make([]domain.Video, 0, len(res.Videos)),
	}

	marks := search.HighlightTerms(res.Query)
	for _, rv := range res.Videos {
		v := domain.Video{
			YTID:       rv.Video.YTID,
			Title:      rv.Video.Title,
			Thumbnail:  rv.Video.Thumbnail,
			Channel:    rv.Video.Channel,
			UploadDate: rv.Video.UploadDate,
			MatchCount: rv.MatchCount,
			Segments:   make([]domain.Segment, 0, len(rv.Segments)),
		}
		for _, seg := range rv.Segments {
			v.Segments = append(v.Segments, domain.Segment{
				ID:          seg.ID,
				Text:        seg.Text,
				Highlighted: s.cfg.Highlighter.Highlight(seg.Text, marks),
				StartTime:   seg.StartTime,
				EndTime:     seg.EndTime,
				StartLabel:  ptime.FormatClock(seg.StartTime),
				EndLabel:    ptime.FormatClock(seg.EndTime),
				URL:         s.watchURL(rv.Video.YTID, seg.StartTime),
			})
		}
		out.Videos = append(out.Videos, v)
	}
	return out
}

func (s *Svc) watchURL(ytID string, start int) string {
	return s.cfg.WatchBase + ytID + "?t=" + ptime.FormatOffset(start)
}

// record is best effort: a query log failure never fails the search
func (s *Svc) record(ctx context.Context, res search.Result, out domain.SearchResult) {
	if !s.cfg.Record || s.rec == nil {
		return
	}
	err := s.rec.Record(ctx, qdom.Entry{
		Content:  out.Query,
		Strict:   res.Query.Strict,
		Terms:    res.Query.Terms,
		Videos:   out.TotalVideos,
		Segments: out.TotalSegments,
	})
	if err != nil {
		log := logger.C(ctx)
		log.Warn().Err(err).Str("query", out.Query).Msg("query log write failed")
	}
}
