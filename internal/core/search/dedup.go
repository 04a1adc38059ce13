package search

type dedupKey struct {
	videoID string
	text    string
}

// Dedup drops segments repeating an earlier (video, text) pair
// the first occurrence wins and order is preserved
func Dedup(segments []Segment) []Segment {
	seen := make(map[dedupKey]struct{}, len(segments))
	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		k := dedupKey{videoID: s.VideoID, text: s.Text}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
