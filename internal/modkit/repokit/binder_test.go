package repokit

import (
	"context"
	"testing"

	"scribe/internal/platform/store"
	"scribe/internal/platform/testkit"
)

type fakeQ struct{}

func (*fakeQ) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (*fakeQ) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (*fakeQ) QueryRow(context.Context, string, ...any) store.Row              { return nil }

// videoRepo stands in for a domain repo bound to a queryer
type videoRepo struct{ q Queryer }

var bindVideos = BindFunc[videoRepo](func(q Queryer) videoRepo { return videoRepo{q: q} })

func TestMustBind(t *testing.T) {
	t.Parallel()

	q := &fakeQ{}
	r := MustBind[videoRepo](bindVideos, q)
	if r.q != Queryer(q) {
		t.Fatal("repo must be bound to the given queryer")
	}
	if RequireQueryer(q) != Queryer(q) {
		t.Fatal("RequireQueryer must return its input")
	}
}

func TestMustBind_NilQueryer(t *testing.T) {
	t.Parallel()

	var q Queryer
	testkit.MustPanic(t, func() { MustBind[videoRepo](bindVideos, q) })
	testkit.MustPanic(t, func() { RequireQueryer(nil) })
}
