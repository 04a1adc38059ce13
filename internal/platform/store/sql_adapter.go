package store

import (
	"context"
	"errors"
	"time"

	"scribe/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxRunner is the statement surface shared by *pgxpool.Pool and pgx.Tx
type pgxRunner interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgAdapter serves RowQuerier and TxRunner over a pool
// statements run inside Tx are traced the same way as pool statements
type pgAdapter struct {
	p *pg.PG
	querier
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{p: p, querier: querier{db: p.Pool, trace: tracing{tracer: p.Tracer, slowUS: int64(p.SlowMs) * 1000}}}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "select 1").Scan(&one)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	return runTx(ctx, tx, a.trace, fn)
}

// pgxTx is the part of pgx.Tx that runTx drives
type pgxTx interface {
	pgxRunner
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// runTx commits when fn succeeds and rolls back otherwise
func runTx(ctx context.Context, tx pgxTx, trace tracing, fn func(q RowQuerier) error) error {
	if err := fn(querier{db: tx, trace: trace}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// querier adapts a pgxRunner to RowQuerier and reports every statement to trace
type querier struct {
	db    pgxRunner
	trace tracing
}

func (q querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.db.Exec(ctx, sql, args...)
	q.trace.emit(ctx, sql, args, start, err)
	return tag{ct}, err
}

// Query is timed until the result set opens, not until it is drained
func (q querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.db.Query(ctx, sql, args...)
	q.trace.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

// QueryRow is traced once Scan returns so the scan error is reported too
func (q querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return row{
		r:     q.db.QueryRow(ctx, sql, args...),
		after: func(err error) { q.trace.emit(ctx, sql, args, start, err) },
	}
}

// tracing forwards statement timings to a pg.QueryTracer
// a negative slowUS never flags a statement as slow
type tracing struct {
	tracer pg.QueryTracer
	slowUS int64
}

func (t tracing) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	us := time.Since(start).Microseconds()
	t.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: us,
		Err:       err,
		Slow:      t.slowUS >= 0 && us >= t.slowUS,
	})
}

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct{ r pgx.Rows }

func (x rows) Next() bool            { return x.r.Next() }
func (x rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rows) Err() error            { return x.r.Err() }
func (x rows) Close()                { x.r.Close() }
func (x rows) Columns() []string {
	fds := x.r.FieldDescriptions()
	out := make([]string, 0, len(fds))
	for _, fd := range fds {
		out = append(out, fd.Name)
	}
	return out
}

type tag struct{ t pgconn.CommandTag }

func (t tag) String() string      { return t.t.String() }
func (t tag) RowsAffected() int64 { return t.t.RowsAffected() }
