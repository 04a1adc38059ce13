package http

import (
	"net/http"

	"scribe/internal/platform/net/http/bind"
)

// JSONHandler decodes the request body into T before calling fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return bound(bind.ParseJSON[T], fn)
}

// QueryHandler fills T from the URL query string before calling fn
func QueryHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return bound(bind.ParseQuery[T], fn)
}

// bound answers with the envelope; input errors never reach fn
func bound[T any](parse func(*http.Request) (T, error), fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := parse(r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
