// Package service serves the most frequent recent searches
package service

import (
	"context"
	"strings"
	"time"

	"scribe/internal/platform/logger"
	"scribe/internal/services/api/popular/domain"
	qdom "scribe/internal/services/querylog/domain"
)

// Service defines the service contract for popular queries
type Service interface{ domain.ServicePort }

// Options tunes the window and fallbacks
type Options struct {
	Window   time.Duration
	Limit    int
	Defaults []string
}

// Svc implements the Service interface
type Svc struct {
	queries qdom.PopularPort
	opts    Options
	now     func() time.Time
}

// New creates a popular queries service; queries may be nil when no query log is configured
func New(queries qdom.PopularPort, opts Options) *Svc {
	if opts.Window <= 0 {
		opts.Window = 24 * time.Hour
	}
	if opts.Limit <= 0 {
		opts.Limit = 5
	}
	return &Svc{queries: queries, opts: opts, now: time.Now}
}

// Popular returns recent searches ordered by count, or the defaults when nothing was recorded
// a failing query log degrades to the defaults
func (s *Svc) Popular(ctx context.Context, in domain.PopularInput) (domain.PopularResult, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = s.opts.Limit
	}
	since := s.now().Add(-s.opts.Window).UTC()

	if s.queries != nil {
		rows, err := s.queries.Popular(ctx, since, limit)
		if err != nil {
			log := logger.C(ctx)
			log.Warn().Err(err).Msg("popular queries unavailable, serving defaults")
		}
		if err == nil && len(rows) > 0 {
			out := domain.PopularResult{Since: since, Queries: make([]domain.Query, 0, len(rows))}
			for _, r := range rows {
				out.Queries = append(out.Queries, domain.Query{Content: r.Content, Strict: r.Strict, Count: r.Count})
			}
			return out, nil
		}
	}
	return s.defaults(since, limit), nil
}

func (s *Svc) defaults(since time.Time, limit int) domain.PopularResult {
	out := domain.PopularResult{Since: since, Fallback: true, Queries: []domain.Query{}}
	for _, d := range s.opts.Defaults {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if len(out.Queries) == limit {
			break
		}
		out.Queries = append(out.Queries, domain.Query{Content: d})
	}
	return out
}
