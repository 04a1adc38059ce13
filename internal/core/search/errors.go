package search

import (
	perr "scribe/internal/platform/errors"
)

// retrievalError wraps a store failure so callers can tell it apart from bad input
func retrievalError(err error, op, format string, a ...any) error {
	return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeRetrieval, format, a...), op)
}

// IsRetrieval reports whether err came from an unavailable or failing store
func IsRetrieval(err error) bool { return perr.IsCode(err, perr.ErrorCodeRetrieval) }
