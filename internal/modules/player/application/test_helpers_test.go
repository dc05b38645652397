package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

var errUnknownVideo = errors.New("unknown video")

func mockInfo(id string) ports.VideoInfo {
	return ports.VideoInfo{
		ID:       id,
		Title:    "Track " + id,
		Author:   "Artist",
		Duration: 3 * time.Minute,
	}
}

type mockGateway struct {
	mu        sync.Mutex
	joins     []domain.ChannelRef
	leaves    []snowflake.ID
	joinErr   error
	leaveErr  error
	joinDelay time.Duration // simulates a slow voice handshake
}

func (m *mockGateway) Join(_ context.Context, ref domain.ChannelRef) error {
	m.mu.Lock()
	delay := m.joinDelay
	if m.joinErr != nil {
		m.mu.Unlock()
		return m.joinErr
	}
	m.joins = append(m.joins, ref)
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return nil
}

func (m *mockGateway) Leave(_ context.Context, guildID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves = append(m.leaves, guildID)
	return m.leaveErr
}

func (m *mockGateway) joinCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.joins)
}

func (m *mockGateway) leaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.leaves)
}

type mockAudio struct {
	mu        sync.Mutex
	played    []string
	stops     int
	playErrOn map[string]error // per-ref stream failures
	pauseErr  error
	resumeErr error
}

func (m *mockAudio) Play(_ context.Context, _ snowflake.ID, sourceRef string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.playErrOn[sourceRef]; ok {
		return err
	}
	m.played = append(m.played, sourceRef)
	return nil
}

func (m *mockAudio) Stop(_ context.Context, _ snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
	return nil
}

func (m *mockAudio) Pause(_ context.Context, _ snowflake.ID) error {
	return m.pauseErr
}

func (m *mockAudio) Resume(_ context.Context, _ snowflake.ID) error {
	return m.resumeErr
}

func (m *mockAudio) playedRefs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.played...)
}

func (m *mockAudio) stopCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops
}

type mockMetadata struct {
	mu           sync.Mutex
	videos       map[string]ports.VideoInfo
	videoCalls   int
	videoErr     error
	playlists    map[string][]ports.VideoInfo
	playlistErr  error
	related      map[string][]string
	relatedErr   error
	relatedLimit int
}

func newMockMetadata() *mockMetadata {
	return &mockMetadata{
		videos:    make(map[string]ports.VideoInfo),
		playlists: make(map[string][]ports.VideoInfo),
		related:   make(map[string][]string),
	}
}

func (m *mockMetadata) addVideo(id string) {
	m.videos[id] = mockInfo(id)
}

func (m *mockMetadata) Video(_ context.Context, videoID string) (*ports.VideoInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.videoCalls++
	if m.videoErr != nil {
		return nil, m.videoErr
	}
	info, ok := m.videos[videoID]
	if !ok {
		return nil, errUnknownVideo
	}
	return &info, nil
}

func (m *mockMetadata) PlaylistItems(_ context.Context, listID string) ([]ports.VideoInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playlistErr != nil {
		return nil, m.playlistErr
	}
	return m.playlists[listID], nil
}

func (m *mockMetadata) RelatedItems(_ context.Context, videoID, _ string, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relatedLimit = limit
	if m.relatedErr != nil {
		return nil, m.relatedErr
	}
	ids := m.related[videoID]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type mockSearcher struct {
	mu        sync.Mutex
	results   []ports.SearchResult
	err       error
	queries   []string
	lastLimit int
}

func (m *mockSearcher) Search(_ context.Context, query string, limit int) ([]ports.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	results := m.results
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// testEngine bundles an Engine with its mock collaborators.
type testEngine struct {
	engine   *Engine
	gateway  *mockGateway
	audio    *mockAudio
	metadata *mockMetadata
	search   *mockSearcher
}

func newTestEngine(cfg EngineConfig) *testEngine {
	gateway := &mockGateway{}
	audio := &mockAudio{playErrOn: make(map[string]error)}
	metadata := newMockMetadata()
	search := &mockSearcher{}

	return &testEngine{
		engine:   NewEngine(cfg, gateway, audio, metadata, search),
		gateway:  gateway,
		audio:    audio,
		metadata: metadata,
		search:   search,
	}
}
