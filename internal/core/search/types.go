// Package search implements transcript search over indexed videos
// A raw query is tokenized into terms, matching segments are pulled from a
// SegmentFinder, optionally narrowed to videos containing every term, deduplicated,
// grouped per video and ranked by how many segments matched
package search

import (
	"context"
	"time"
)

// Segment is one timestamped transcript line
type Segment struct {
	ID        string
	VideoID   string
	Text      string
	StartTime int // seconds
	EndTime   int // seconds
}

// Video is the display record for an indexed video
type Video struct {
	YTID       string
	Title      string
	Thumbnail  string
	Channel    string
	UploadDate time.Time
}

// Query is a tokenized search request
type Query struct {
	Raw    string
	Terms  []string
	Strict bool
}

// RankedVideo is a video with the segments that matched it
// MatchCount always equals len(Segments)
type RankedVideo struct {
	Video      Video
	MatchCount int
	Segments   []Segment
}

// Result is the outcome of one search
// Empty is set when the query had no terms; a query with terms but no hits
// has Empty=false and no videos
type Result struct {
	Query  Query
	Empty  bool
	Videos []RankedVideo
}

// Segments returns the number of segments across all ranked videos
func (r Result) Segments() int {
	n := 0
	for _, v := range r.Videos {
		n += v.MatchCount
	}
	return n
}

// SegmentFinder returns every segment whose text contains at least one of terms,
// compared case-insensitively as a literal substring
type SegmentFinder interface {
	FindSegments(ctx context.Context, terms []string) ([]Segment, error)
}

// VideoGetter fetches a video by its platform id
// found=false with a nil error means the video does not exist
type VideoGetter interface {
	GetVideo(ctx context.Context, ytID string) (v Video, found bool, err error)
}
