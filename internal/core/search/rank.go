package search

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel video lookups when none is configured
const DefaultConcurrency = 8

// Ranked is the output of Rank
type Ranked struct {
	Videos  []RankedVideo
	Missing []string // video ids referenced by segments but absent from the video store
}

// Rank groups segments by video, drops videos the store does not know and orders the
// rest by match count descending; ties keep first-discovery order
// lookups run concurrently, at most limit at a time
func Rank(ctx context.Context, segments []Segment, videos VideoGetter, limit int) (Ranked, error) {
	if len(segments) == 0 {
		return Ranked{Videos: []RankedVideo{}}, nil
	}
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	// distinct ids in first-occurrence order, with each video's segments in input order
	var order []string
	groups := make(map[string][]Segment)
	for _, s := range segments {
		if _, ok := groups[s.VideoID]; !ok {
			order = append(order, s.VideoID)
		}
		groups[s.VideoID] = append(groups[s.VideoID], s)
	}

	type lookup struct {
		video Video
		found bool
	}
	found := make([]lookup, len(order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range order {
		g.Go(func() error {
			v, ok, err := videos.GetVideo(gctx, id)
			if err != nil {
				return retrievalError(err, "search.GetVideo", "video lookup failed for %s", id)
			}
			found[i] = lookup{video: v, found: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Ranked{}, err
	}

	out := Ranked{Videos: make([]RankedVideo, 0, len(order))}
	for i, id := range order {
		if !found[i].found {
			out.Missing = append(out.Missing, id)
			continue
		}
		segs := groups[id]
		out.Videos = append(out.Videos, RankedVideo{
			Video:      found[i].video,
			MatchCount: len(segs),
			Segments:   segs,
		})
	}

	slices.SortStableFunc(out.Videos, func(a, b RankedVideo) int {
		return cmp.Compare(b.MatchCount, a.MatchCount)
	})
	return out, nil
}
