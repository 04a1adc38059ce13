// Package domain holds DTOs for search http and service contracts
package domain

import "time"

// MaxQueryLen bounds the raw query accepted from clients
const MaxQueryLen = 512

// SearchInput is the search request, bound from the query string on GET and the body on POST
type SearchInput struct {
	Q      string `json:"q"                query:"q"      validate:"max=512"  example:"is the"`
	Strict bool   `json:"strict,omitempty" query:"strict"                     example:"false"`
}

// SearchResult is the ranked outcome of one search
// Empty is true only when the query had no terms
type SearchResult struct {
	Query         string   `json:"query"`
	Terms         []string `json:"terms"`
	Strict        bool     `json:"strict"`
	Empty         bool     `json:"empty"`
	TotalVideos   int      `json:"total_videos"`
	TotalSegments int      `json:"total_segments"`
	Videos        []Video  `json:"videos"`
}

// Video is one matched video with its matching segments
type Video struct {
	YTID       string    `json:"yt_id"       example:"dQw4w9WgXcQ"`
	Title      string    `json:"title"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
	Channel    string    `json:"channel"`
	UploadDate time.Time `json:"upload_date"`
	MatchCount int       `json:"match_count" example:"3"`
	Segments   []Segment `json:"segments"`
}

// Segment is one matching transcript line ready for display
type Segment struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Highlighted string `json:"highlighted"`
	StartTime   int    `json:"start_time"  example:"62"`
	EndTime     int    `json:"end_time"    example:"65"`
	StartLabel  string `json:"start_label" example:"01:02"`
	EndLabel    string `json:"end_label"   example:"01:05"`
	URL         string `json:"url"         example:"https://youtu.be/dQw4w9WgXcQ?t=1m2s"`
}
