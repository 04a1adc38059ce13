// Package module wires search into the API using modkit
package module

import (
	"net/http"

	modkit "scribe/internal/modkit"
	"scribe/internal/modkit/httpkit"
	modreg "scribe/internal/modkit/module"
	str "scribe/internal/platform/strings"

	searchhttp "scribe/internal/services/api/search/http"
	searchrepo "scribe/internal/services/api/search/repo"
	searchsvc "scribe/internal/services/api/search/service"
	qdom "scribe/internal/services/querylog/domain"
)

// Ports declares the optional injected query log port for this module
type Ports struct {
	Recorder qdom.RecorderPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc searchsvc.Service
}

// New constructs a search module
// the query log recorder comes from modkit.WithPorts(Ports{...}) or else from the
// query log ports registered under qdom.ModuleName; with neither, searches are not recorded
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("search"),
		modkit.WithPrefix("/search"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var rec qdom.RecorderPort
	if p, ok := b.Ports.(Ports); ok {
		rec = p.Recorder
	}
	if rec == nil {
		rec, _ = modreg.Resolve[qdom.RecorderPort](qdom.ModuleName)
	}

	svc := searchsvc.New(deps.PG, searchrepo.NewPG(), rec, cfg.serviceConfig())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = svc

	external := b.Register
	m.register = func(r httpkit.Router) {
		searchhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports exposes the search service port for cross wiring
func (m *Module) Ports() any { return m.ports }
