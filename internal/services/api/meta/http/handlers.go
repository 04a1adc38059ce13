// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"scribe/internal/core/version"
	"scribe/internal/modkit/httpkit"
	perr "scribe/internal/platform/errors"
	"scribe/internal/services/api/meta/repo"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Sizer reports index size figures
type Sizer interface {
	Size(stdctx.Context) (repo.Size, error)
}

// Deps are the handler dependencies
// PG and CH are checked for Pinger; nil means the backend is not configured
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	PG           any
	CH           any
	Sizer        Sizer
	ReadyTimeout time.Duration
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/size", h.size)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Now:     stamp(time.Now()),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	pg := checkBackend(ctx, "pg", h.deps.PG)
	ch := checkBackend(ctx, "ch", h.deps.CH)

	overall := "ok"
	switch {
	case pg.Status == "fail" || ch.Status == "fail":
		overall = "fail"
	case pg.Status != "ok" || ch.Status == "unknown":
		overall = "degraded"
	}
	return ReadyResponse{Status: overall, Checks: []ReadyCheck{pg, ch}, Now: stamp(time.Now())}, nil
}

// checkBackend pings b when it can; a nil b was never configured
func checkBackend(ctx stdctx.Context, name string, b any) ReadyCheck {
	if b == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := b.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: "unknown"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.For(h.deps.ServiceName), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// swagger:route GET /meta/size Meta metaSize
// @Summary Indexed transcript volume
// @Tags Meta
// @Produce json
// @Success 200 type repo.Size ok
// @Failure 503 "store not configured"
// @Router /meta/size [get]
func (h *handlers) size(r *http.Request) (any, error) {
	if h.deps.Sizer == nil {
		return nil, perr.Unavailablef("segment store not configured")
	}
	return h.deps.Sizer.Size(r.Context())
}
