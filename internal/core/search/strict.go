package search

// FilterStrict keeps only segments whose video contains every term
// a term may be satisfied by any segment of the video, not necessarily the same one
// the relative order of surviving segments is preserved
func FilterStrict(segments []Segment, terms []string) []Segment {
	ms := compileTerms(terms)
	if len(ms) == 0 || len(segments) == 0 {
		return []Segment{}
	}

	byVideo := make(map[string][]string, len(segments))
	for _, s := range segments {
		byVideo[s.VideoID] = append(byVideo[s.VideoID], s.Text)
	}

	keep := make(map[string]bool, len(byVideo))
	for id, texts := range byVideo {
		keep[id] = coversAll(texts, ms)
	}

	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if keep[s.VideoID] {
			out = append(out, s)
		}
	}
	return out
}

// coversAll reports whether every matcher hits at least one text
func coversAll(texts []string, ms []matcher) bool {
	if len(texts) == 0 {
		return false
	}
	for _, m := range ms {
		hit := false
		for _, t := range texts {
			if m.in(t) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}
