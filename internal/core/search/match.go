package search

import (
	"regexp"
	"strings"
)

// matcher is a compiled case-insensitive literal matcher for one term
type matcher struct {
	term string
	re   *regexp.Regexp
}

// compileTerm escapes every pattern metacharacter in term so it matches literally
func compileTerm(term string) matcher {
	return matcher{term: term, re: regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))}
}

func compileTerms(terms []string) []matcher {
	out := make([]matcher, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		out = append(out, compileTerm(t))
	}
	return out
}

func (m matcher) in(text string) bool { return m.re.MatchString(text) }

// ContainsFold reports whether text contains term, ignoring case
// term is literal, so "a.b" never matches "axb"
func ContainsFold(text, term string) bool {
	if term == "" {
		return false
	}
	return compileTerm(term).in(text)
}

// ContainsAny reports whether text contains at least one of terms, ignoring case
func ContainsAny(text string, terms []string) bool {
	for _, m := range compileTerms(terms) {
		if m.in(text) {
			return true
		}
	}
	return false
}

// MatchSegments applies the store predicate in memory and keeps input order
// it backs in-memory stores and tests; production stores push it down to SQL
func MatchSegments(all []Segment, terms []string) []Segment {
	ms := compileTerms(terms)
	if len(ms) == 0 {
		return nil
	}
	var out []Segment
	for _, s := range all {
		for _, m := range ms {
			if m.in(s.Text) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// EscapeLike escapes LIKE wildcards so term can be embedded in a %term% pattern
// the escape character is a backslash, the Postgres default
func EscapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
