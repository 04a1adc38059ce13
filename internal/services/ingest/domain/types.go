// Package domain defines ingest inputs, outcomes and ports
package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Status is the processing state of a video row
type Status int16

// Video lifecycle
const (
	StatusPending    Status = 0 // registered, media not fetched
	StatusDownloaded Status = 1 // metadata stored, transcript pending
	StatusProcessed  Status = 2 // segments loaded and searchable
)

// Video is the metadata registered for one platform video
type Video struct {
	YTID       string
	Title      string
	UploadDate time.Time
	Channel    string
	Duration   int // seconds
	Thumbnail  string
}

// Segment is one transcript line ready for storage
type Segment struct {
	StartTime int
	EndTime   int
	Text      string
}

// Request loads one transcript for one video
// Replace reloads a video that is already indexed; otherwise it is skipped
type Request struct {
	Video      Video
	Transcript io.Reader
	Replace    bool
}

// Result reports what one ingest run did
type Result struct {
	RunID    uuid.UUID
	YTID     string
	Segments int
	Skipped  bool
	Replaced bool
}
