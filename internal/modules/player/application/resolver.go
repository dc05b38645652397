package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

// TrackResolver turns a direct reference or a free-text query into a single
// track via the metadata and search collaborators.
type TrackResolver struct {
	metadata ports.MetadataProvider
	search   ports.Searcher
	cache    *TrackInfoCache
}

// NewTrackResolver creates a new TrackResolver.
func NewTrackResolver(
	metadata ports.MetadataProvider,
	search ports.Searcher,
	cache *TrackInfoCache,
) *TrackResolver {
	return &TrackResolver{
		metadata: metadata,
		search:   search,
		cache:    cache,
	}
}

// ResolveDirect resolves a direct item reference to a track. Results are
// cached by the exact reference string for the process lifetime.
func (r *TrackResolver) ResolveDirect(ctx context.Context, ref string) (domain.Track, error) {
	if track, ok := r.cache.Get(ref); ok {
		return track, nil
	}

	videoID, ok := domain.ExtractVideoID(ref)
	if !ok {
		return domain.Track{}, fmt.Errorf("%w: unrecognized reference %q", ErrNoResults, ref)
	}

	info, err := r.metadata.Video(ctx, videoID)
	if err != nil {
		return domain.Track{}, fmt.Errorf("failed to look up %q: %w", videoID, err)
	}

	track := trackFromInfo(*info)
	r.cache.Put(ref, track)
	return track, nil
}

// ResolveByQuery issues a single top-1 keyword search and returns the first
// result as a track, or ErrNoResults if the search yields nothing. Query
// results are never cached: upstream ranking is volatile.
func (r *TrackResolver) ResolveByQuery(ctx context.Context, text string) (domain.Track, error) {
	results, err := r.search.Search(ctx, text, 1)
	if err != nil {
		return domain.Track{}, fmt.Errorf("search for %q failed: %w", text, err)
	}
	if len(results) == 0 {
		return domain.Track{}, ErrNoResults
	}

	hit := results[0]

	// Fill in duration and thumbnail when the metadata lookup succeeds;
	// the search hit alone is still a playable track.
	info, err := r.metadata.Video(ctx, hit.VideoID)
	if err != nil {
		slog.Warn("metadata lookup for search result failed, using search fields",
			"video", hit.VideoID,
			"error", err,
		)
		return trackFromSearch(hit), nil
	}

	return trackFromInfo(*info), nil
}

func trackFromInfo(info ports.VideoInfo) domain.Track {
	thumbnail := info.ThumbnailURL
	if thumbnail == "" {
		thumbnail = domain.ThumbnailURL(info.ID)
	}
	return domain.NewTrack(
		info.Title,
		domain.WatchURL(info.ID),
		domain.FormatDuration(info.Duration),
		thumbnail,
	)
}

func trackFromSearch(hit ports.SearchResult) domain.Track {
	return domain.NewTrack(
		hit.Title,
		domain.WatchURL(hit.VideoID),
		"",
		domain.ThumbnailURL(hit.VideoID),
	)
}
