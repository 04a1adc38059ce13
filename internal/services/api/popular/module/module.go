// Package module wires popular queries into the API using modkit
package module

import (
	"net/http"

	modkit "scribe/internal/modkit"
	"scribe/internal/modkit/httpkit"
	modreg "scribe/internal/modkit/module"
	str "scribe/internal/platform/strings"

	pophttp "scribe/internal/services/api/popular/http"
	popsvc "scribe/internal/services/api/popular/service"
	qdom "scribe/internal/services/querylog/domain"
)

// Ports declares the query log read port this module consumes
type Ports struct {
	Popular qdom.PopularPort
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

	svc popsvc.Service
}

// New constructs the popular module
// the query log comes from injected Ports or the registry; without one it always serves the defaults
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("popular"),
		modkit.WithPrefix("/popular"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Popular == nil {
		injected.Popular, _ = modreg.Resolve[qdom.PopularPort](qdom.ModuleName)
	}

	svc := popsvc.New(injected.Popular, cfg.serviceOptions())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
		ports:     svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		pophttp.Register(r, m.svc)
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

// Ports exposes the popular service port
func (m *Module) Ports() any { return m.ports }
