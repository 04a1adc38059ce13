// Package repokit provides the seams repositories are written against
// repos see Queryer (Postgres) or Columnar (ClickHouse), never a driver
package repokit

import (
	"context"

	"scribe/internal/platform/store"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

// Columnar is the ClickHouse seam repos write query logs through
type Columnar = store.Clickhouse

// WithTx runs fn inside one transaction on db; fn's error rolls it back
func WithTx(ctx context.Context, db TxRunner, fn func(q Queryer) error) error {
	return db.Tx(ctx, fn)
}
