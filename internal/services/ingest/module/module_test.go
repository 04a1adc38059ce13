package module

import (
	"context"
	"testing"

	"scribe/internal/modkit"
	"scribe/internal/modkit/module"
	"scribe/internal/platform/store"
	"scribe/internal/platform/testkit"
)

type stubPG struct{ store.RowQuerier }

func (stubPG) Tx(context.Context, func(store.RowQuerier) error) error { return nil }

func TestNew_ExposesPorts(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{PG: stubPG{}})
	p := module.MustPortsOf[Ports](m)
	if p.Ingest == nil || p.Schema == nil {
		t.Fatalf("ports not wired: %+v", p)
	}
	if m.Name() != "ingest" || m.Prefix() != "" || m.Middlewares() != nil {
		t.Fatalf("unexpected module identity %q %q", m.Name(), m.Prefix())
	}
}

func TestNew_RequiresPG(t *testing.T) {
	t.Parallel()

	testkit.MustPanic(t, func() { New(modkit.Deps{}) })
}
