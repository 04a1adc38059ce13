package search

import (
	"html"
	"strings"
)

// Default emphasis markers
const (
	DefaultOpen  = `<strong class="text-primary">`
	DefaultClose = `</strong>`
)

// private use runes stand in for markers while terms are applied so that a later
// term never matches inside marker text, and so escaping can run on the final buffer
const (
	markOpen  = '\uE000'
	markClose = '\uE001'
)

// Highlighter wraps case-insensitive occurrences of terms in emphasis markers
type Highlighter struct {
	Open  string
	Close string
	// EscapeHTML escapes markup-significant characters of the source text
	// the markers themselves are never escaped
	EscapeHTML bool
}

// NewHighlighter returns a highlighter using the default markers with escaping on
func NewHighlighter() Highlighter {
	return Highlighter{Open: DefaultOpen, Close: DefaultClose, EscapeHTML: true}
}

// Highlight applies each term in sequence to the same buffer
// overlapping terms can produce nested markers
func (h Highlighter) Highlight(text string, terms []string) string {
	buf := strings.Map(func(r rune) rune {
		if r == markOpen || r == markClose {
			return -1
		}
		return r
	}, text)

	for _, m := range compileTerms(terms) {
		buf = m.re.ReplaceAllStringFunc(buf, func(s string) string {
			return string(markOpen) + s + string(markClose)
		})
	}

	if h.EscapeHTML {
		buf = html.EscapeString(buf)
	}
	open, closing := h.Open, h.Close
	if open == "" && closing == "" {
		open, closing = DefaultOpen, DefaultClose
	}
	r := strings.NewReplacer(string(markOpen), open, string(markClose), closing)
	return r.Replace(buf)
}
