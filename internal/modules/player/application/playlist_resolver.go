package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

// Resolution caps per strategy.
const (
	// regularSearchCap bounds the keyword fallback for curated playlists.
	regularSearchCap = 50
	// mixCap bounds mix-style resolution: one seed item plus related items.
	mixCap = 20
)

// PlaylistResolver expands a playlist reference into an ordered track list.
// Each playlist kind has its own strategy with a keyword-search fallback;
// partial results are tolerated, only a fully empty result is an error.
type PlaylistResolver struct {
	metadata ports.MetadataProvider
	search   ports.Searcher
	tracks   *TrackResolver
}

// NewPlaylistResolver creates a new PlaylistResolver.
func NewPlaylistResolver(
	metadata ports.MetadataProvider,
	search ports.Searcher,
	tracks *TrackResolver,
) *PlaylistResolver {
	return &PlaylistResolver{
		metadata: metadata,
		search:   search,
		tracks:   tracks,
	}
}

// Resolve expands the reference into tracks in source order. No re-sorting
// and no de-duplication: a track may legitimately repeat. Returns
// ErrPlaylistEmpty when every strategy yields zero tracks.
func (r *PlaylistResolver) Resolve(ctx context.Context, ref domain.PlaylistRef) ([]domain.Track, error) {
	if ref.Kind == domain.PlaylistNone {
		return nil, fmt.Errorf("%w: reference carries no playlist marker", ErrPlaylistEmpty)
	}

	var tracks []domain.Track
	if ref.Kind == domain.PlaylistRegular {
		tracks = r.resolveRegular(ctx, ref)
	} else {
		tracks = r.resolveGenerated(ctx, ref)
	}

	if len(tracks) == 0 {
		return nil, ErrPlaylistEmpty
	}
	return tracks, nil
}

// resolveRegular queries the playlist lookup for member items in order and
// falls back to a keyword search on the list identifier.
func (r *PlaylistResolver) resolveRegular(ctx context.Context, ref domain.PlaylistRef) []domain.Track {
	items, err := r.metadata.PlaylistItems(ctx, ref.ListID)
	if err != nil {
		slog.Warn("playlist lookup failed, falling back to search",
			"list", ref.ListID,
			"error", err,
		)
	}
	if len(items) > 0 {
		tracks := make([]domain.Track, 0, len(items))
		for _, item := range items {
			tracks = append(tracks, trackFromInfo(item))
		}
		return tracks
	}

	return r.fallbackSearch(ctx, ref.ListID, regularSearchCap)
}

// resolveGenerated handles mix/radio, watch-later, and liked collections.
// These are not served by the playlist lookup: when the reference carries a
// seed item, that item comes first and related items fill up to the cap;
// otherwise a keyword search on the list identifier is the only strategy.
func (r *PlaylistResolver) resolveGenerated(ctx context.Context, ref domain.PlaylistRef) []domain.Track {
	if ref.VideoID == "" {
		return r.fallbackSearch(ctx, ref.ListID, mixCap)
	}

	tracks := make([]domain.Track, 0, mixCap)

	seed, err := r.tracks.ResolveDirect(ctx, domain.WatchURL(ref.VideoID))
	if err != nil {
		slog.Warn("seed item resolution failed",
			"video", ref.VideoID,
			"list", ref.ListID,
			"error", err,
		)
	} else {
		tracks = append(tracks, seed)
	}

	related, err := r.metadata.RelatedItems(ctx, ref.VideoID, ref.ListID, mixCap-len(tracks))
	if err != nil {
		slog.Warn("related item lookup failed",
			"video", ref.VideoID,
			"list", ref.ListID,
			"error", err,
		)
	}
	for _, id := range related {
		if len(tracks) >= mixCap {
			break
		}
		track, err := r.tracks.ResolveDirect(ctx, domain.WatchURL(id))
		if err != nil {
			// Tolerated: resolution returns whatever was gathered.
			slog.Warn("related item resolution failed", "video", id, "error", err)
			continue
		}
		tracks = append(tracks, track)
	}

	return tracks
}

// fallbackSearch runs a keyword search using the list identifier as the
// query, capped at limit results.
func (r *PlaylistResolver) fallbackSearch(ctx context.Context, listID string, limit int) []domain.Track {
	results, err := r.search.Search(ctx, listID, limit)
	if err != nil {
		slog.Warn("fallback search failed", "query", listID, "error", err)
		return nil
	}

	tracks := make([]domain.Track, 0, len(results))
	for _, hit := range results {
		tracks = append(tracks, trackFromSearch(hit))
	}
	return tracks
}
