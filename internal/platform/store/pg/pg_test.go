package pg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"scribe/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPoolConfig(t *testing.T) {
	t.Parallel()

	pcfg, err := poolConfig(Config{
		URL:      "postgres://scribe:secret@db:5432/scribe?sslmode=disable",
		AppName:  "scribe-ingest",
		MaxConns: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if pcfg.MaxConns != 2 {
		t.Fatalf("MaxConns = %d", pcfg.MaxConns)
	}
	if got := pcfg.ConnConfig.RuntimeParams["application_name"]; got != "scribe-ingest" {
		t.Fatalf("application_name = %q", got)
	}

	// zero values keep the pgx defaults
	pcfg, err = poolConfig(Config{URL: "postgres://db/scribe"})
	if err != nil || pcfg.MaxConns <= 0 {
		t.Fatalf("default pool: %v, %v", pcfg, err)
	}
	if _, err := poolConfig(Config{URL: "://bad"}); err == nil || !strings.HasPrefix(err.Error(), "pg: parse url") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	fake := &pgxpool.Pool{} // never used, never closed
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return fake, nil
	})

	p, err := Open(context.Background(), Config{URL: "postgres://db/scribe", SlowMs: 250}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Pool != fake || p.SlowMs != 250 || seen == nil {
		t.Fatalf("unexpected client %+v", p)
	}
}

func TestOpen_PoolError(t *testing.T) {
	testkit.Serial(t)

	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("dial refused")
	})
	if _, err := Open(context.Background(), Config{URL: "postgres://db/scribe"}, nil); err == nil || !strings.Contains(err.Error(), "dial refused") {
		t.Fatalf("expected pool error, got %v", err)
	}
}

func TestClose_Nil(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()
	(&PG{}).Close()
}
