package ports

import "context"

// SearchResult is a single hit from a keyword search.
type SearchResult struct {
	VideoID string
	Title   string
}

// Searcher runs keyword searches against the media source. Result order is
// upstream ranking order and may change between calls.
type Searcher interface {
	// Search returns up to limit results for the query.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}
