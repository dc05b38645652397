package infrastructure

import (
	"context"
	"fmt"

	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/ppalone/ytsearch"
)

// YouTubeSearcher performs keyword searches against YouTube.
type YouTubeSearcher struct {
	client *ytsearch.Client
}

// NewYouTubeSearcher creates a searcher using the default HTTP client.
func NewYouTubeSearcher() *YouTubeSearcher {
	return &YouTubeSearcher{client: ytsearch.NewClient(nil)}
}

// Search returns up to limit results for the query, best match first.
func (s *YouTubeSearcher) Search(ctx context.Context, query string, limit int) ([]ports.SearchResult, error) {
	res, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search for %q failed: %w", query, err)
	}

	results := make([]ports.SearchResult, 0, limit)
	for _, v := range res.Results {
		if v.VideoID == "" {
			continue
		}
		results = append(results, ports.SearchResult{
			VideoID: v.VideoID,
			Title:   v.Title,
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

var _ ports.Searcher = (*YouTubeSearcher)(nil)
