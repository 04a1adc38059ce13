package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Retrievalf("segments down"), http.StatusServiceUnavailable},
		{Unavailablef("pg starting"), http.StatusServiceUnavailable},
		{InvalidArgf("bad yt id"), http.StatusUnprocessableEntity},
		{New(ErrorCodeValidation, "q too long"), http.StatusBadRequest},
		{JSONErrf("bad body"), http.StatusBadRequest},
		{NotFoundf("video"), http.StatusNotFound},
		{New(ErrorCodeDuplicateKey, "dup"), http.StatusConflict},
		{New(ErrorCodeDB, "db"), http.StatusInternalServerError},
		{PanicErrf("panic"), http.StatusInternalServerError},
		{stderrs.New("foreign"), http.StatusInternalServerError},
		{New(ErrorCode(999), "future code"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestError_WrapAndInspect(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	cause := stderrs.New("conn reset")
	err := Wrapf(cause, ErrorCodeRetrieval, "lookup %s", "videos")
	if err.Error() != "lookup videos: conn reset" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) || Root(fmt.Errorf("outer: %w", err)) != cause {
		t.Fatal("cause not reachable")
	}

	e, ok := As(fmt.Errorf("engine: %w", err))
	if !ok || e.Code() != ErrorCodeRetrieval {
		t.Fatalf("As through fmt wrap failed: %v", e)
	}
	if _, ok := As(cause); ok {
		t.Fatal("As must reject foreign errors")
	}
	if CodeOf(cause) != ErrorCodeUnknown || !IsCode(err, ErrorCodeRetrieval) {
		t.Fatal("CodeOf mismatch")
	}
}

func TestError_CopyOnWriteMutators(t *testing.T) {
	base := InvalidArgf("yt_id required")
	withField := WithField(base, "yt_id")
	withOp := WithOp(withField, "ingest.Ingest")

	e, _ := As(withOp)
	if e.Field() != "yt_id" || e.Op() != "ingest.Ingest" {
		t.Fatalf("field=%q op=%q", e.Field(), e.Op())
	}
	if b, _ := As(base); b.Field() != "" || b.Op() != "" {
		t.Fatal("mutators changed the original")
	}

	foreign := stderrs.New("x")
	if WithField(foreign, "q") != foreign || WithOp(foreign, "op") != foreign {
		t.Fatal("foreign errors must pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if WireFrom(nil) != (Wire{}) {
		t.Fatal("nil must give zero Wire")
	}
	w := WireFrom(WithField(Wrap(stderrs.New("inner"), ErrorCodeValidation, "q too long"), "q"))
	if w != (Wire{Code: ErrorCodeValidation, Message: "q too long", Field: "q"}) {
		t.Fatalf("wire = %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatal("ErrNotFound code")
	}
}
