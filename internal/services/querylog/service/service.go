// Package service records searches and aggregates popular queries
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	perr "scribe/internal/platform/errors"
	"scribe/internal/services/querylog/domain"
	"scribe/internal/services/querylog/repo"
)

// MaxPopular caps how many popular rows one call may return
const MaxPopular = 50

// Service defines the service contract for the query log
type Service interface {
	domain.RecorderPort
	domain.PopularPort
}

// Svc implements Service over a clickhouse repo
type Svc struct {
	repo  repo.Repo
	now   func() time.Time
	newID func() uuid.UUID
}

// New creates a query log service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("querylog.Service requires a non nil Repo")
	}
	return &Svc{repo: r, now: time.Now, newID: uuid.New}
}

// Record stores e, filling ID and At when they are zero
func (s *Svc) Record(ctx context.Context, e domain.Entry) error {
	e.Content = strings.TrimSpace(e.Content)
	if e.Content == "" {
		return perr.WithField(perr.InvalidArgf("empty query content"), "content")
	}
	if e.ID == uuid.Nil {
		e.ID = s.newID()
	}
	if e.At.IsZero() {
		e.At = s.now()
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "query log insert failed"), "querylog.Record")
	}
	return nil
}

// Popular returns the most searched (content, strict) pairs since the given time
// limit is clamped to [1, MaxPopular]
func (s *Svc) Popular(ctx context.Context, since time.Time, limit int) ([]domain.Popular, error) {
	limit = min(max(limit, 1), MaxPopular)
	rows, err := s.repo.Popular(ctx, since, limit)
	if err != nil {
		return nil, perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "query log read failed"), "querylog.Popular")
	}
	out := make([]domain.Popular, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Popular{Content: r.Content, Strict: r.Strict, Count: int(r.Count)})
	}
	return out, nil
}

// Nop is used when no clickhouse is configured
// Record drops entries and Popular always reports nothing
type Nop struct{}

// Record implements domain.RecorderPort
func (Nop) Record(context.Context, domain.Entry) error { return nil }

// Popular implements domain.PopularPort
func (Nop) Popular(context.Context, time.Time, int) ([]domain.Popular, error) { return nil, nil }
