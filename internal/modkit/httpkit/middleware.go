package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"scribe/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// AllowedOrigins for CORS, empty allows any origin
	AllowedOrigins []string
	// Timeout per request, 0 uses 30s
	Timeout time.Duration
	// SlowLog marks slower requests as warn in the access log, 0 disables
	SlowLog time.Duration
	// MaxInFlight caps concurrent requests, 0 disables throttling
	MaxInFlight int
}

// CommonStack returns a baseline per module middleware slice
// RequestID must stay ahead of the access log so the request logger carries the id
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowLog}),

		// safety
		middleware.RecoverJSON,
		middleware.Throttle(o.MaxInFlight),

		// cache / freshness
		middleware.NoCache(),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.AllowedOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(timeout),
	}
}
