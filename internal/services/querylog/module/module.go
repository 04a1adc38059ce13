// Package module implements the query log service module
package module

import (
	"context"

	"scribe/internal/modkit"
	"scribe/internal/modkit/httpkit"
	"scribe/internal/services/querylog/domain"
	"scribe/internal/services/querylog/repo"
	"scribe/internal/services/querylog/service"
)

// Ports exposed by the query log module
type Ports struct {
	Recorder domain.RecorderPort
	Popular  domain.PopularPort
}

// Module implements the query log service module
// it mounts no routes; other modules consume its ports
type Module struct {
	deps    modkit.Deps
	ports   Ports
	enabled bool
	repo    repo.Repo
}

// New constructs the module; without a clickhouse seam both ports are no-ops
func New(deps modkit.Deps) *Module {
	m := &Module{deps: deps}
	if deps.CH == nil {
		m.ports = Ports{Recorder: service.Nop{}, Popular: service.Nop{}}
		return m
	}
	m.repo = repo.NewCH(deps.CH)
	svc := service.New(m.repo)
	m.ports = Ports{Recorder: svc, Popular: svc}
	m.enabled = true
	return m
}

// Enabled reports whether searches are actually persisted
func (m *Module) Enabled() bool { return m.enabled }

// EnsureSchema creates the query log table when clickhouse is configured
func (m *Module) EnsureSchema(ctx context.Context) error {
	if !m.enabled {
		return nil
	}
	return m.repo.EnsureSchema(ctx)
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return domain.ModuleName }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
