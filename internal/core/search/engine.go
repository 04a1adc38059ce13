package search

import (
	"context"
	"errors"

	"scribe/internal/platform/logger"
)

// Engine runs the search pipeline against a segment store and a video store
// it holds no per-request state and is safe for concurrent use
type Engine struct {
	segments    SegmentFinder
	videos      VideoGetter
	concurrency int
}

// Option configures an Engine
type Option func(*Engine)

// WithConcurrency bounds parallel video lookups per request
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEngine wires the two stores into an Engine
func NewEngine(segments SegmentFinder, videos VideoGetter, opts ...Option) *Engine {
	if segments == nil {
		panic("search.Engine requires a non nil SegmentFinder")
	}
	if videos == nil {
		panic("search.Engine requires a non nil VideoGetter")
	}
	e := &Engine{segments: segments, videos: videos, concurrency: DefaultConcurrency}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ErrNilEngine is returned when Search is called on a nil Engine
var ErrNilEngine = errors.New("search: nil engine")

// Search tokenizes raw and returns ranked videos with their matching segments
// a query without terms short-circuits to an Empty result without touching the stores
func (e *Engine) Search(ctx context.Context, raw string, strict bool) (Result, error) {
	if e == nil {
		return Result{}, ErrNilEngine
	}
	q := NewQuery(raw, strict)
	if q.IsEmpty() {
		return Result{Query: q, Empty: true, Videos: []RankedVideo{}}, nil
	}

	matched, err := e.segments.FindSegments(ctx, q.Terms)
	if err != nil {
		return Result{}, retrievalError(err, "search.FindSegments", "segment lookup failed")
	}
	// stores fold case their own way; keep only what the in-process matcher agrees with
	matched = MatchSegments(matched, q.Terms)

	if q.Strict && len(q.Terms) > 1 {
		matched = FilterStrict(matched, q.Terms)
	}
	unique := Dedup(matched)

	ranked, err := Rank(ctx, unique, e.videos, e.concurrency)
	if err != nil {
		return Result{}, err
	}

	log := logger.C(ctx)
	log.Debug().
		Strs("terms", q.Terms).
		Bool("strict", q.Strict).
		Int("matched", len(matched)).
		Int("unique", len(unique)).
		Int("videos", len(ranked.Videos)).
		Strs("missing_videos", ranked.Missing).
		Msg("search done")

	return Result{Query: q, Videos: ranked.Videos}, nil
}
