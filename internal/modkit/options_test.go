package modkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scribe/internal/modkit/httpkit"
	phttp "scribe/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type searchPorts struct{ recorder string }

func tagHeader(v string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", v)
			next.ServeHTTP(w, r)
		})
	}
}

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || b.SwaggerOn || len(b.Mw) != 0 {
		t.Fatalf("unexpected zero build %+v", b)
	}
	r := phttp.AdaptChi(chi.NewRouter())
	if b.Subrouter(r) != r {
		t.Fatal("default subrouter should be identity")
	}
	b.Register(r) // no-op
}

func TestBuild_CallerOptionsOverrideModuleDefaults(t *testing.T) {
	t.Parallel()

	// modules pass their defaults first and caller options after them
	b := Build(
		WithName("search"), WithPrefix("/search"),
		WithName("search-v2"), WithPrefix("/v2/search"),
		WithSwagger(true),
		WithPorts(searchPorts{recorder: "querylog"}),
	)
	if b.Name != "search-v2" || b.Prefix != "/v2/search" || !b.SwaggerOn {
		t.Fatalf("got %+v", b)
	}
	p, ok := b.Ports.(searchPorts)
	if !ok || p.recorder != "querylog" {
		t.Fatalf("ports lost their concrete type: %T", b.Ports)
	}
}

func TestBuild_MiddlewareOrderAndCopy(t *testing.T) {
	t.Parallel()

	opts := []Option{WithMiddlewares(tagHeader("a"), tagHeader("b")), WithMiddlewares(tagHeader("c"))}
	b := Build(opts...)
	if len(b.Mw) != 3 {
		t.Fatalf("expected 3 middlewares, got %d", len(b.Mw))
	}

	var h http.Handler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for i := len(b.Mw) - 1; i >= 0; i-- {
		h = b.Mw[i](h)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := strings.Join(rr.Header().Values("X-Chain"), ""); got != "abc" {
		t.Fatalf("chain order = %q", got)
	}

	b.Mw[0] = nil
	if Build(opts...).Mw[0] == nil {
		t.Fatal("Build must hand out its own middleware slice")
	}
}

func TestBuild_RouterHooks(t *testing.T) {
	t.Parallel()

	var mounted []string
	b := Build(
		WithSubrouter(func(r httpkit.Router) httpkit.Router {
			mounted = append(mounted, "sub")
			return r
		}),
		WithRegister(func(r httpkit.Router) {
			mounted = append(mounted, "register")
			httpkit.Get(r, "/extra", func(*http.Request) (any, error) { return "ok", nil })
		}),
	)

	mux := chi.NewRouter()
	b.Register(b.Subrouter(phttp.AdaptChi(mux)))
	if strings.Join(mounted, ",") != "sub,register" {
		t.Fatalf("hooks ran as %v", mounted)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/extra", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("registered route status %d", rr.Code)
	}
}
