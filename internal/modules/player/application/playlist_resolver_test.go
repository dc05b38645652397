package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

func newPlaylistResolver(metadata *mockMetadata, search *mockSearcher) *PlaylistResolver {
	tracks := NewTrackResolver(metadata, search, NewTrackInfoCache())
	return NewPlaylistResolver(metadata, search, tracks)
}

// videoID builds a valid 11-character identifier: v000000001a, v000000002a, ...
func videoID(n int) string {
	return fmt.Sprintf("v%09da", n)
}

func TestPlaylistResolver_Regular_PreservesOrder(t *testing.T) {
	metadata := newMockMetadata()
	metadata.playlists["PLabc"] = []ports.VideoInfo{
		mockInfo(videoID(1)),
		mockInfo(videoID(2)),
		mockInfo(videoID(3)),
	}
	resolver := newPlaylistResolver(metadata, &mockSearcher{})

	tracks, err := resolver.Resolve(context.Background(), domain.PlaylistRef{
		ListID: "PLabc",
		Kind:   domain.PlaylistRegular,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	for i, track := range tracks {
		if want := domain.WatchURL(videoID(i + 1)); track.SourceRef != want {
			t.Errorf("track %d: expected %q, got %q", i, want, track.SourceRef)
		}
	}
}

func TestPlaylistResolver_Regular_FallsBackToSearch(t *testing.T) {
	metadata := newMockMetadata()
	metadata.playlistErr = errors.New("lookup unavailable")
	search := &mockSearcher{
		results: []ports.SearchResult{
			{VideoID: videoID(1), Title: "Hit 1"},
			{VideoID: videoID(2), Title: "Hit 2"},
		},
	}
	resolver := newPlaylistResolver(metadata, search)

	tracks, err := resolver.Resolve(context.Background(), domain.PlaylistRef{
		ListID: "PLabc",
		Kind:   domain.PlaylistRegular,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if search.lastLimit != 50 {
		t.Errorf("expected fallback search capped at 50, got %d", search.lastLimit)
	}
	if search.queries[0] != "PLabc" {
		t.Errorf("expected list ID as search query, got %q", search.queries[0])
	}
}

func TestPlaylistResolver_Mix_SeedFirstCapped(t *testing.T) {
	metadata := newMockMetadata()
	seed := videoID(0)
	metadata.addVideo(seed)

	var relatedIDs []string
	for i := 1; i <= 30; i++ {
		id := videoID(i)
		metadata.addVideo(id)
		relatedIDs = append(relatedIDs, id)
	}
	metadata.related[seed] = relatedIDs

	resolver := newPlaylistResolver(metadata, &mockSearcher{})

	tracks, err := resolver.Resolve(context.Background(), domain.PlaylistRef{
		ListID:  "RD" + seed,
		VideoID: seed,
		Kind:    domain.PlaylistMix,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tracks) != 20 {
		t.Fatalf("expected 20 tracks (seed + 19 related), got %d", len(tracks))
	}
	if tracks[0].SourceRef != domain.WatchURL(seed) {
		t.Errorf("expected seed track first, got %q", tracks[0].SourceRef)
	}
	if metadata.relatedLimit != 19 {
		t.Errorf("expected related lookup capped at 19, got %d", metadata.relatedLimit)
	}
}

func TestPlaylistResolver_Mix_ToleratesRelatedFailures(t *testing.T) {
	metadata := newMockMetadata()
	seed := videoID(0)
	metadata.addVideo(seed)
	metadata.addVideo(videoID(1))
	// videoID(2) is missing from metadata: its resolution fails.
	metadata.related[seed] = []string{videoID(1), videoID(2)}

	resolver := newPlaylistResolver(metadata, &mockSearcher{})

	tracks, err := resolver.Resolve(context.Background(), domain.PlaylistRef{
		ListID:  "RD" + seed,
		VideoID: seed,
		Kind:    domain.PlaylistMix,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tracks) != 2 {
		t.Fatalf("expected seed plus 1 resolvable related track, got %d", len(tracks))
	}
}

func TestPlaylistResolver_Mix_NoSeedFallsBackToSearch(t *testing.T) {
	metadata := newMockMetadata()
	search := &mockSearcher{
		results: []ports.SearchResult{{VideoID: videoID(1), Title: "Hit"}},
	}
	resolver := newPlaylistResolver(metadata, search)

	tracks, err := resolver.Resolve(context.Background(), domain.PlaylistRef{
		ListID: "RDsomething",
		Kind:   domain.PlaylistMix,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
	if search.lastLimit != 20 {
		t.Errorf("expected fallback search capped at 20, got %d", search.lastLimit)
	}
}

func TestPlaylistResolver_WatchLater_UsesGeneratedStrategy(t *testing.T) {
	metadata := newMockMetadata()
	seed := videoID(0)
	metadata.addVideo(seed)

	resolver := newPlaylistResolver(metadata, &mockSearcher{})

	tracks, err := resolver.Resolve(context.Background(), domain.PlaylistRef{
		ListID:  "WL",
		VideoID: seed,
		Kind:    domain.PlaylistWatchLater,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tracks) != 1 || tracks[0].SourceRef != domain.WatchURL(seed) {
		t.Errorf("expected only the seed track, got %v", tracks)
	}
}

func TestPlaylistResolver_EmptyEverywhere(t *testing.T) {
	resolver := newPlaylistResolver(newMockMetadata(), &mockSearcher{})

	_, err := resolver.Resolve(context.Background(), domain.PlaylistRef{
		ListID: "PLabc",
		Kind:   domain.PlaylistRegular,
	})
	if !errors.Is(err, ErrPlaylistEmpty) {
		t.Errorf("expected ErrPlaylistEmpty, got %v", err)
	}
}

func TestPlaylistResolver_NoneKindRejected(t *testing.T) {
	resolver := newPlaylistResolver(newMockMetadata(), &mockSearcher{})

	_, err := resolver.Resolve(context.Background(), domain.PlaylistRef{Kind: domain.PlaylistNone})
	if !errors.Is(err, ErrPlaylistEmpty) {
		t.Errorf("expected ErrPlaylistEmpty, got %v", err)
	}
}
