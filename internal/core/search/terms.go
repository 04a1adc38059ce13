package search

import (
	"strings"

	"scribe/internal/core/normalize"
)

// Tokenize splits a raw query into whitespace-delimited terms
// each term is normalized after the split; terms that normalize to nothing are dropped
// order and duplicates are kept; blank input yields a zero-length slice
func Tokenize(raw string) []string {
	fields := strings.Fields(raw)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, strings.Fields(normalize.Query(f))...)
	}
	return out
}

// NewQuery tokenizes raw and records the mode flag
func NewQuery(raw string, strict bool) Query {
	return Query{Raw: raw, Terms: Tokenize(raw), Strict: strict}
}

// IsEmpty reports whether the query produced no terms
func (q Query) IsEmpty() bool { return len(q.Terms) == 0 }

// HighlightTerms returns the terms a highlighter should mark
// a single-term query highlights the whole trimmed query
func HighlightTerms(q Query) []string {
	if len(q.Terms) == 1 {
		return []string{strings.TrimSpace(normalize.Query(q.Raw))}
	}
	return q.Terms
}
