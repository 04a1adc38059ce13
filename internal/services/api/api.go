// Package api provides the HTTP API for the application
package api

import (
	"time"

	"scribe/internal/platform/config"
	"scribe/internal/platform/logger"
	phttp "scribe/internal/platform/net/http"
	"scribe/internal/platform/store"

	"scribe/internal/modkit"
	"scribe/internal/modkit/httpkit"
	"scribe/internal/modkit/module"
	"scribe/internal/modkit/swaggerkit"

	metamod "scribe/internal/services/api/meta/module"
	popularmod "scribe/internal/services/api/popular/module"
	searchmod "scribe/internal/services/api/search/module"
	querylogmod "scribe/internal/services/querylog/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// StackFromConfig reads the shared middleware settings from CORE_API_*
func StackFromConfig(cfg config.Conf) httpkit.StackOptions {
	return httpkit.StackOptions{
		AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
		Timeout:        cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowLog:        cfg.MayDuration("SLOW_REQUEST", time.Second),
		MaxInFlight:    cfg.MayInt("MAX_IN_FLIGHT", 0),
	}
}

// Mount mounts the API service onto the given router
// it returns the query log module so the caller can prepare its schema
func Mount(r phttp.Router, opt Options) *querylogmod.Module {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: config.New(),
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	// the query log owns the clickhouse seam; it is registered first so search
	// (writes) and popular (reads) resolve its ports from the registry
	qlog := querylogmod.New(deps)
	module.RegisterModule(qlog)

	mods := []module.Module{
		metamod.New(deps),
		searchmod.New(deps),
		popularmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(StackFromConfig(opt.Config)), func(api httpkit.Router) {
		for _, m := range mods {
			module.RegisterModule(m)
			m.MountRoutes(api)
		}
	})

	// Swagger + profiler stay outside the versioned stack
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	return qlog
}
