// Package searchtest provides an in-memory segment and video store for tests
package searchtest

import (
	"context"
	"sync"
	"sync/atomic"

	"scribe/internal/core/search"
)

// MemStore implements search.SegmentFinder and search.VideoGetter over slices
// segments are returned in insertion order
type MemStore struct {
	mu       sync.RWMutex
	segments []search.Segment
	videos   map[string]search.Video

	// FindErr and GetErr are returned by the respective calls when set
	FindErr error
	GetErr  error

	FindCalls atomic.Int32
	GetCalls  atomic.Int32
}

// New returns an empty MemStore
func New() *MemStore {
	return &MemStore{videos: map[string]search.Video{}}
}

// AddVideo stores v keyed by its YTID
func (m *MemStore) AddVideo(v search.Video) *MemStore {
	m.mu.Lock()
	m.videos[v.YTID] = v
	m.mu.Unlock()
	return m
}

// AddSegment appends a segment; the video is not required to exist
func (m *MemStore) AddSegment(s search.Segment) *MemStore {
	m.mu.Lock()
	m.segments = append(m.segments, s)
	m.mu.Unlock()
	return m
}

// FindSegments implements search.SegmentFinder
func (m *MemStore) FindSegments(ctx context.Context, terms []string) ([]search.Segment, error) {
	m.FindCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return search.MatchSegments(m.segments, terms), nil
}

// GetVideo implements search.VideoGetter
func (m *MemStore) GetVideo(ctx context.Context, ytID string) (search.Video, bool, error) {
	m.GetCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return search.Video{}, false, err
	}
	if m.GetErr != nil {
		return search.Video{}, false, m.GetErr
	}
	m.mu.RLock()
	v, ok := m.videos[ytID]
	m.mu.RUnlock()
	return v, ok, nil
}
