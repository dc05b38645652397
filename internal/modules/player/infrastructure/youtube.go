package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

// watchLinkPattern matches watch links embedded in a YouTube watch page.
// Used to harvest the autoplay sidebar of a mix.
var watchLinkPattern = regexp.MustCompile(`"url":"/watch\?v=([a-zA-Z0-9_-]{11})`)

// YouTubeProvider fetches item and playlist metadata from YouTube.
type YouTubeProvider struct {
	client    *youtube.Client
	http      *http.Client
	baseURL   string
	userAgent string
}

// NewYouTubeProvider creates a provider. userAgent is sent on watch-page
// requests; pass "" to use the Go default.
func NewYouTubeProvider(userAgent string) *YouTubeProvider {
	return &YouTubeProvider{
		client:    &youtube.Client{},
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   "https://www.youtube.com",
		userAgent: userAgent,
	}
}

// Video returns metadata for a single item.
func (p *YouTubeProvider) Video(ctx context.Context, videoID string) (*ports.VideoInfo, error) {
	video, err := p.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video %q: %w", videoID, err)
	}

	info := &ports.VideoInfo{
		ID:       video.ID,
		Title:    video.Title,
		Author:   video.Author,
		Duration: video.Duration,
	}
	if len(video.Thumbnails) > 0 {
		info.ThumbnailURL = video.Thumbnails[len(video.Thumbnails)-1].URL
	}
	return info, nil
}

// PlaylistItems returns the members of a curated playlist in source order.
func (p *YouTubeProvider) PlaylistItems(ctx context.Context, listID string) ([]ports.VideoInfo, error) {
	playlist, err := p.client.GetPlaylistContext(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %q: %w", listID, err)
	}

	items := make([]ports.VideoInfo, 0, len(playlist.Videos))
	for _, entry := range playlist.Videos {
		if entry == nil || entry.ID == "" {
			continue
		}
		items = append(items, ports.VideoInfo{
			ID:           entry.ID,
			Title:        entry.Title,
			Author:       entry.Author,
			Duration:     entry.Duration,
			ThumbnailURL: domain.ThumbnailURL(entry.ID),
		})
	}
	return items, nil
}

// RelatedItems scrapes the watch page of the seed item inside its generated
// list and returns up to limit related item IDs. YouTube exposes no API for
// mix membership, so the autoplay sidebar is the only durable source.
func (p *YouTubeProvider) RelatedItems(ctx context.Context, videoID, listID string, limit int) ([]string, error) {
	watchURL := fmt.Sprintf("%s/watch?v=%s&list=%s",
		p.baseURL, url.QueryEscape(videoID), url.QueryEscape(listID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build watch page request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page fetch failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch page: %w", err)
	}

	matches := watchLinkPattern.FindAllStringSubmatch(string(body), -1)
	seen := map[string]struct{}{videoID: {}}
	var ids []string
	for _, m := range matches {
		id := m[1]
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		if len(ids) >= limit {
			break
		}
	}
	return ids, nil
}

var _ ports.MetadataProvider = (*YouTubeProvider)(nil)
