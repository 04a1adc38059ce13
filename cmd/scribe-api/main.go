// @title         Scribe API
// @version       0.1.0
// @description   Transcript search over indexed videos

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scribe/internal/core/version"
	"scribe/internal/modkit/repokit"
	"scribe/internal/platform/config"
	"scribe/internal/platform/logger"
	phttp "scribe/internal/platform/net/http"
	"scribe/internal/platform/store"

	"scribe/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the query log is optional; without clickhouse searches are simply not recorded
	chOn := chCfg.MayBool("ENABLED", false)
	chURL := ""
	if chOn {
		chURL = chCfg.MustString("DBURL")
	}

	st, err := store.Open(ctx, store.Config{
		AppName: "scribe-api",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 8)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled: chOn,
			URL:     chURL,
			LogSQL:  chCfg.MayBool("LOG_SQL", false),
			Role:    "api",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_API_PORT / CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	qlog := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// backends must answer before we serve; then the query log table is created
	pctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	repokit.MustGuard(pctx, st)
	err = qlog.EnsureSchema(pctx)
	cancel()
	if err != nil {
		l.Panic().Err(err).Msg("query log schema failed")
	}

	b := version.Info()
	l.Info().
		Str("version", b.Version).
		Str("commit", b.Commit).
		Bool("query_log", qlog.Enabled()).
		Msg("scribe api starting")

	// run until SIGINT/SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
