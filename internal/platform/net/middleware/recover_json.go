package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/logger"
	pnet "scribe/internal/platform/net"
	phttp "scribe/internal/platform/net/http"
)

var panicResponse = phttp.Handle(func(*http.Request) phttp.Response {
	return phttp.Error(perr.PanicErrf("panic recovered"))
})

// RecoverJSON turns a handler panic into the standard error envelope with a 500
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("stack", string(debug.Stack())).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			if id := pnet.RequestID(r.Context()); id != "" {
				w.Header().Set("X-Request-ID", id)
			}
			panicResponse(w, r)
		}()
		next.ServeHTTP(w, r)
	})
}
