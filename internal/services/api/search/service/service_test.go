package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"scribe/internal/core/search"
	"scribe/internal/core/search/searchtest"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/testkit"
	"scribe/internal/services/api/search/domain"
	qdom "scribe/internal/services/querylog/domain"
)

type fakeRecorder struct {
	mu      sync.Mutex
	entries []qdom.Entry
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, e qdom.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return f.err
}

func fixture() *searchtest.MemStore {
	up := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	return searchtest.New().
		AddVideo(search.Video{YTID: "A", Title: "Alpha", Channel: "CMS", UploadDate: up}).
		AddVideo(search.Video{YTID: "B", Title: "Beta", Channel: "CMS"}).
		AddSegment(search.Segment{ID: "1", VideoID: "A", Text: "The Cat sat", StartTime: 62, EndTime: 65}).
		AddSegment(search.Segment{ID: "2", VideoID: "B", Text: "a cat <b>", StartTime: 3725, EndTime: 3730}).
		AddSegment(search.Segment{ID: "3", VideoID: "B", Text: "cat again", StartTime: 5, EndTime: 7}).
		AddSegment(search.Segment{ID: "4", VideoID: "A", Text: "no match here", StartTime: 9, EndTime: 10})
}

func TestNew_PanicsOnNil(t *testing.T) {
	t.Parallel()

	testkit.MustPanic(t, func() { New(nil, nil, nil, Config{}) })
}

func TestSearch_ShapesResult(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	s := NewWithStores(fixture(), fixture(), rec, Config{Record: true})

	got, err := s.Search(context.Background(), domain.SearchInput{Q: "  cat "})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got.Query != "cat" || got.Empty || got.TotalVideos != 2 || got.TotalSegments != 3 {
		t.Fatalf("unexpected summary %+v", got)
	}
	if got.Videos[0].YTID != "B" || got.Videos[0].MatchCount != 2 {
		t.Fatalf("video with most matches should rank first, got %+v", got.Videos[0])
	}

	seg := got.Videos[0].Segments[0]
	if seg.URL != "https://youtu.be/B?t=1h2m5s" {
		t.Fatalf("url = %q", seg.URL)
	}
	if seg.StartLabel != "1:02:05" || seg.EndLabel != "1:02:10" {
		t.Fatalf("labels = %q %q", seg.StartLabel, seg.EndLabel)
	}
	if seg.Highlighted != `a <strong class="text-primary">cat</strong> &lt;b&gt;` {
		t.Fatalf("highlighted = %q", seg.Highlighted)
	}
	if seg.Text != "a cat <b>" {
		t.Fatalf("raw text must stay untouched, got %q", seg.Text)
	}

	a := got.Videos[1]
	if a.Title != "Alpha" || a.Segments[0].StartLabel != "01:02" || a.Segments[0].URL != "https://youtu.be/A?t=1m2s" {
		t.Fatalf("unexpected second video %+v", a)
	}

	if len(rec.entries) != 1 {
		t.Fatalf("expected one recorded search, got %d", len(rec.entries))
	}
	e := rec.entries[0]
	if e.Content != "cat" || e.Videos != 2 || e.Segments != 3 || e.Strict {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestSearch_CustomMarkersAndBase(t *testing.T) {
	t.Parallel()

	s := NewWithStores(fixture(), fixture(), nil, Config{
		Highlighter: search.Highlighter{Open: "[", Close: "]"},
		WatchBase:   "https://www.youtube.com/watch?v=",
	})
	got, err := s.Search(context.Background(), domain.SearchInput{Q: "cat"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	seg := got.Videos[0].Segments[0]
	if seg.Highlighted != "a [cat] <b>" {
		t.Fatalf("highlighted = %q", seg.Highlighted)
	}
	if !strings.HasPrefix(seg.URL, "https://www.youtube.com/watch?v=B?t=") {
		t.Fatalf("url = %q", seg.URL)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	t.Parallel()

	store := fixture()
	rec := &fakeRecorder{}
	s := NewWithStores(store, store, rec, Config{Record: true})

	got, err := s.Search(context.Background(), domain.SearchInput{Q: "   "})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !got.Empty || got.TotalVideos != 0 || got.Videos == nil || got.Terms == nil {
		t.Fatalf("unexpected empty result %+v", got)
	}
	if store.FindCalls.Load() != 0 {
		t.Fatal("empty query must not hit the store")
	}
	if len(rec.entries) != 0 {
		t.Fatal("empty query must not be recorded")
	}
}

func TestSearch_NoHitsIsNotEmpty(t *testing.T) {
	t.Parallel()

	s := NewWithStores(fixture(), fixture(), nil, Config{})
	got, err := s.Search(context.Background(), domain.SearchInput{Q: "zebra"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got.Empty || len(got.Videos) != 0 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestSearch_Strict(t *testing.T) {
	t.Parallel()

	s := NewWithStores(fixture(), fixture(), nil, Config{})
	got, err := s.Search(context.Background(), domain.SearchInput{Q: "cat match", Strict: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got.Videos) != 1 || got.Videos[0].YTID != "A" || got.Videos[0].MatchCount != 2 {
		t.Fatalf("strict should keep only video A, got %+v", got.Videos)
	}
}

func TestSearch_RecorderFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{err: errors.New("clickhouse down")}
	s := NewWithStores(fixture(), fixture(), rec, Config{Record: true})
	if _, err := s.Search(context.Background(), domain.SearchInput{Q: "cat"}); err != nil {
		t.Fatalf("recorder failure leaked: %v", err)
	}
	if len(rec.entries) != 1 {
		t.Fatal("recorder should still have been called")
	}
}

func TestSearch_RecordDisabled(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	s := NewWithStores(fixture(), fixture(), rec, Config{})
	if _, err := s.Search(context.Background(), domain.SearchInput{Q: "cat"}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rec.entries) != 0 {
		t.Fatal("recording disabled but entry written")
	}
}

func TestSearch_TooLong(t *testing.T) {
	t.Parallel()

	s := NewWithStores(fixture(), fixture(), nil, Config{})
	_, err := s.Search(context.Background(), domain.SearchInput{Q: strings.Repeat("é", domain.MaxQueryLen+1)})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "q" {
		t.Fatalf("expected field q, got %v", err)
	}

	if _, err := s.Search(context.Background(), domain.SearchInput{Q: strings.Repeat("é", domain.MaxQueryLen)}); err != nil {
		t.Fatalf("query at the limit rejected: %v", err)
	}
}

func TestSearch_StoreFailure(t *testing.T) {
	t.Parallel()

	store := fixture()
	store.FindErr = errors.New("pg gone")
	s := NewWithStores(store, store, nil, Config{})

	_, err := s.Search(context.Background(), domain.SearchInput{Q: "cat"})
	if !search.IsRetrieval(err) {
		t.Fatalf("expected retrieval error, got %v", err)
	}
}
