// Package module provides the ingest module
package module

import (
	"net/http"

	"scribe/internal/modkit"
	"scribe/internal/modkit/httpkit"
	"scribe/internal/modkit/repokit"
	"scribe/internal/services/ingest/domain"
	"scribe/internal/services/ingest/repo"
	"scribe/internal/services/ingest/service"
)

// Ports exposed by the ingest module
type Ports struct {
	Ingest domain.IngestPort
	Schema domain.SchemaPort
}

// Module implements modkit.Module
// ingest runs from the CLI, so it mounts no routes
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the ingest module over the Postgres seam
func New(deps modkit.Deps) *Module {
	svc := service.New(repokit.TxRunner(deps.PG), repo.NewPG())
	return &Module{deps: deps, ports: Ports{Ingest: svc, Schema: svc}}
}

// Name implements modkit.Module
func (m *Module) Name() string { return "ingest" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
