// Package ch provides a clickhouse client built on clickhouse-go
package ch

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"scribe/internal/platform/logger"
)

// Config configures clickhouse client
type Config struct {
	URL string
	// Role and Tag end up in system.query_log client info
	Role string
	Tag  string
	// LogSQL prints every statement through Log
	LogSQL bool
	Log    logger.Logger
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// Batch is one pending INSERT
type Batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

// conn is the slice of driver.Conn this package uses
type conn interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, query string, args ...any) error
	PrepareBatch(ctx context.Context, query string) (Batch, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Close() error
}

// CH is a clickhouse client
type CH struct {
	c      conn
	log    logger.Logger
	logSQL bool
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// seam for tests
var dial = func(opts *clickhouse.Options) (conn, error) {
	c, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return driverConn{c: c}, nil
}

// Open parses the DSN, dials and pings clickhouse
func Open(ctx context.Context, cfg Config) (*CH, error) {
	if cfg.URL == "" {
		return nil, errors.New("ch: empty url")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)

	c, err := dial(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ch: ping: %w", err)
	}
	return &CH{c: c, log: cfg.Log, logSQL: cfg.LogSQL}, nil
}

// Ping checks connectivity
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.c == nil {
		return errors.New("ch: nil client")
	}
	return c.c.Ping(ctx)
}

// Insert appends rows to table in a single batch
// each row must list values in the table's column order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) (err error) {
	if !tableName.MatchString(table) {
		return fmt.Errorf("ch: invalid table name %q", table)
	}
	if len(rows) == 0 {
		return nil
	}
	start := time.Now()
	defer func() { c.trace("INSERT INTO "+table, len(rows), start, err) }()

	b, err := c.c.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err = b.Append(r...); err != nil {
			_ = b.Abort()
			return err
		}
	}
	return b.Send()
}

// Exec runs a statement that returns no rows, such as DDL
func (c *CH) Exec(ctx context.Context, sql string, args ...any) (err error) {
	start := time.Now()
	defer func() { c.trace(sql, len(args), start, err) }()
	return c.c.Exec(ctx, sql, args...)
}

// Query runs a statement and returns its rows; the caller closes them
func (c *CH) Query(ctx context.Context, sql string, args ...any) (rows Rows, err error) {
	start := time.Now()
	defer func() { c.trace(sql, len(args), start, err) }()
	return c.c.Query(ctx, sql, args...)
}

// Close closes the connection pool
func (c *CH) Close() error {
	if c == nil || c.c == nil {
		return nil
	}
	return c.c.Close()
}

func (c *CH) trace(sql string, n int, start time.Time, err error) {
	if !c.logSQL {
		return
	}
	c.log.Info().
		Str("component", "ch").
		Str("sql", sql).
		Int("n", n).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("ch query")
}

// driverConn narrows driver.Conn to conn
type driverConn struct{ c driver.Conn }

func (d driverConn) Ping(ctx context.Context) error { return d.c.Ping(ctx) }

func (d driverConn) Exec(ctx context.Context, query string, args ...any) error {
	return d.c.Exec(ctx, query, args...)
}

func (d driverConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	return d.c.PrepareBatch(ctx, query)
}

func (d driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return d.c.Query(ctx, query, args...)
}

func (d driverConn) Close() error { return d.c.Close() }
