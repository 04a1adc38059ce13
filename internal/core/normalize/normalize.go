// Package normalize cleans query and transcript text before it is matched or stored
// Pipeline order
// 1 Sanitize drops NUL, controls and invalid UTF-8
// 2 Unicode NFC so composed and decomposed forms compare equal
// 3 Remove format characters (zero-width space, ZWJ, BOM)
// 4 Line only: collapse whitespace runs to one space and trim
// Case is preserved; matching folds case itself
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

func fold(s string) string {
	s = Sanitize(s)
	if s == "" {
		return s
	}
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// Query prepares raw user input for tokenizing
// whitespace is left in place so the tokenizer sees the original boundaries
func Query(raw string) string {
	if raw == "" {
		return ""
	}
	return fold(raw)
}

// Line prepares one transcript cue for storage: newlines inside a cue become
// spaces and the result is trimmed
func Line(text string) string {
	if text == "" {
		return ""
	}
	return collapseSpaces(fold(text))
}

// collapseSpaces converts every whitespace run to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
