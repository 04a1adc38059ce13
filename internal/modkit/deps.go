// Package modkit provides module wiring and core deps
package modkit

import (
	"scribe/internal/modkit/repokit"
	"scribe/internal/platform/config"
	"scribe/internal/platform/logger"
	"scribe/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
