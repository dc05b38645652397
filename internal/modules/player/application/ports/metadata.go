package ports

import (
	"context"
	"time"
)

// VideoInfo contains metadata for a single playable item.
type VideoInfo struct {
	ID           string
	Title        string
	Author       string
	Duration     time.Duration
	ThumbnailURL string
}

// MetadataProvider looks up item and playlist metadata from the media source.
type MetadataProvider interface {
	// Video returns metadata for a single item.
	Video(ctx context.Context, videoID string) (*VideoInfo, error)

	// PlaylistItems returns the member items of a curated playlist in
	// source order.
	PlaylistItems(ctx context.Context, listID string) ([]VideoInfo, error)

	// RelatedItems returns up to limit item identifiers related to the
	// seed item within an auto-generated list, excluding the seed itself.
	RelatedItems(ctx context.Context, videoID, listID string, limit int) ([]string, error)
}
