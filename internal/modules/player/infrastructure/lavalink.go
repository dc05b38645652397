package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

// voiceReadyTimeout is the maximum wait for the Discord voice handshake.
const voiceReadyTimeout = 10 * time.Second

// LavalinkConfig contains Lavalink connection configuration.
type LavalinkConfig struct {
	Address  string
	Password string
}

// voiceHandshake buffers the two Discord voice events (state + server) that
// must both arrive before Lavalink can take over the connection. Events can
// arrive in either order; the handshake completes when both are present.
type voiceHandshake struct {
	mu sync.Mutex

	hasState  bool
	channelID *snowflake.ID
	sessionID string

	hasServer bool
	token     string
	endpoint  string

	ready chan struct{}
}

func newVoiceHandshake() *voiceHandshake {
	return &voiceHandshake{ready: make(chan struct{})}
}

// setState records the voice state half and returns true when complete.
func (h *voiceHandshake) setState(channelID *snowflake.ID, sessionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hasState = true
	h.channelID = channelID
	h.sessionID = sessionID
	return h.completeLocked()
}

// setServer records the voice server half and returns true when complete.
func (h *voiceHandshake) setServer(token, endpoint string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hasServer = true
	h.token = token
	h.endpoint = endpoint
	return h.completeLocked()
}

func (h *voiceHandshake) completeLocked() bool {
	if h.hasState && h.hasServer {
		select {
		case <-h.ready:
		default:
			close(h.ready)
		}
		return true
	}
	return false
}

func (h *voiceHandshake) data() (channelID *snowflake.ID, sessionID, token, endpoint string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.channelID, h.sessionID, h.token, h.endpoint
}

// LavalinkAdapter bridges discordgo voice signalling and a Lavalink node to
// the VoiceGateway and AudioOutput ports.
type LavalinkAdapter struct {
	link    disgolink.Client
	session *discordgo.Session
	botID   snowflake.ID

	handshakeMu sync.Mutex
	handshakes  map[snowflake.ID]*voiceHandshake

	onTrackEnd func(reason ports.TrackEndReason)
}

// NewLavalinkAdapter creates the adapter and connects it to the node.
func NewLavalinkAdapter(session *discordgo.Session, config LavalinkConfig) (*LavalinkAdapter, error) {
	botID, err := snowflake.Parse(session.State.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bot ID: %w", err)
	}

	adapter := &LavalinkAdapter{
		session:    session,
		botID:      botID,
		handshakes: make(map[snowflake.ID]*voiceHandshake),
	}

	link := disgolink.New(botID,
		disgolink.WithListenerFunc(adapter.handleTrackStart),
		disgolink.WithListenerFunc(adapter.handleTrackEnd),
		disgolink.WithListenerFunc(adapter.handleTrackException),
		disgolink.WithListenerFunc(adapter.handleTrackStuck),
	)
	adapter.link = link

	node, err := link.AddNode(context.Background(), disgolink.NodeConfig{
		Name:     "main",
		Address:  config.Address,
		Password: config.Password,
		Secure:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add Lavalink node: %w", err)
	}

	slog.Info("connected to Lavalink", "node", node.Config().Name, "address", config.Address)
	return adapter, nil
}

// SetTrackEndHandler registers the callback invoked when the backend
// reports a track end.
func (a *LavalinkAdapter) SetTrackEndHandler(fn func(reason ports.TrackEndReason)) {
	a.onTrackEnd = fn
}

// Close shuts down the Lavalink connection.
func (a *LavalinkAdapter) Close() {
	a.link.Close()
}

// Join connects the bot to the referenced voice channel and waits for the
// handshake to complete.
func (a *LavalinkAdapter) Join(ctx context.Context, ref domain.ChannelRef) error {
	handshake := newVoiceHandshake()
	a.handshakeMu.Lock()
	a.handshakes[ref.GuildID] = handshake
	a.handshakeMu.Unlock()

	defer func() {
		a.handshakeMu.Lock()
		delete(a.handshakes, ref.GuildID)
		a.handshakeMu.Unlock()
	}()

	err := a.session.ChannelVoiceJoinManual(ref.GuildID.String(), ref.ChannelID.String(), false, false)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}

	select {
	case <-handshake.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("cancelled while waiting for voice handshake: %w", ctx.Err())
	case <-time.After(voiceReadyTimeout):
		return fmt.Errorf("timeout waiting for voice handshake")
	}
}

// Leave disconnects from voice and destroys the backend player.
func (a *LavalinkAdapter) Leave(ctx context.Context, guildID snowflake.ID) error {
	if player := a.link.ExistingPlayer(guildID); player != nil {
		if err := player.Destroy(ctx); err != nil {
			slog.Warn("failed to destroy player", "guild", guildID, "error", err)
		}
	}

	if err := a.session.ChannelVoiceJoinManual(guildID.String(), "", false, false); err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}
	return nil
}

// Play resolves sourceRef on the node and starts streaming it.
func (a *LavalinkAdapter) Play(ctx context.Context, guildID snowflake.ID, sourceRef string) error {
	node := a.link.BestNode()
	if node == nil {
		return fmt.Errorf("no available Lavalink node")
	}

	result, err := node.LoadTracks(ctx, sourceRef)
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", sourceRef, err)
	}

	var track lavalink.Track
	switch data := result.Data.(type) {
	case lavalink.Track:
		track = data
	case lavalink.Playlist:
		if len(data.Tracks) == 0 {
			return fmt.Errorf("reference %q loaded an empty playlist", sourceRef)
		}
		track = data.Tracks[0]
	case lavalink.Search:
		if len(data) == 0 {
			return fmt.Errorf("reference %q loaded no tracks", sourceRef)
		}
		track = data[0]
	case lavalink.Exception:
		return fmt.Errorf("failed to load %q: %s", sourceRef, data.Message)
	default:
		return fmt.Errorf("reference %q loaded no tracks", sourceRef)
	}

	player := a.link.Player(guildID)
	if err := player.Update(ctx, lavalink.WithEncodedTrack(track.Encoded)); err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}
	return nil
}

// Stop stops the current output.
func (a *LavalinkAdapter) Stop(ctx context.Context, guildID snowflake.ID) error {
	player := a.link.ExistingPlayer(guildID)
	if player == nil {
		return nil
	}
	if err := player.Update(ctx, lavalink.WithNullTrack()); err != nil {
		return fmt.Errorf("failed to stop stream: %w", err)
	}
	return nil
}

// Pause pauses the current output.
func (a *LavalinkAdapter) Pause(ctx context.Context, guildID snowflake.ID) error {
	if err := a.link.Player(guildID).Update(ctx, lavalink.WithPaused(true)); err != nil {
		return fmt.Errorf("failed to pause stream: %w", err)
	}
	return nil
}

// Resume resumes paused output.
func (a *LavalinkAdapter) Resume(ctx context.Context, guildID snowflake.ID) error {
	if err := a.link.Player(guildID).Update(ctx, lavalink.WithPaused(false)); err != nil {
		return fmt.Errorf("failed to resume stream: %w", err)
	}
	return nil
}

// OnVoiceServerUpdate forwards Discord voice server updates. Must be wired
// to the discordgo event of the same name.
func (a *LavalinkAdapter) OnVoiceServerUpdate(event *discordgo.VoiceServerUpdate) {
	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice server update", "error", err)
		return
	}

	a.handshakeMu.Lock()
	handshake := a.handshakes[guildID]
	a.handshakeMu.Unlock()
	if handshake == nil {
		// Server update without a pending join, e.g. a region change;
		// forward directly.
		a.link.OnVoiceServerUpdate(context.Background(), guildID, event.Token, event.Endpoint)
		return
	}

	if handshake.setServer(event.Token, event.Endpoint) {
		a.forwardHandshake(guildID, handshake)
	}
}

// OnVoiceStateUpdate forwards Discord voice state updates for the bot user.
// Must be wired to the discordgo event of the same name.
func (a *LavalinkAdapter) OnVoiceStateUpdate(event *discordgo.VoiceStateUpdate) {
	if event.UserID != a.botID.String() {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	var channelID *snowflake.ID
	if event.ChannelID != "" {
		id, err := snowflake.Parse(event.ChannelID)
		if err != nil {
			slog.Error("failed to parse channel ID in voice state update", "error", err)
			return
		}
		channelID = &id
	}

	// A disconnect needs no server half.
	if channelID == nil {
		a.link.OnVoiceStateUpdate(context.Background(), guildID, nil, event.SessionID)
		return
	}

	a.handshakeMu.Lock()
	handshake := a.handshakes[guildID]
	a.handshakeMu.Unlock()
	if handshake == nil {
		a.link.OnVoiceStateUpdate(context.Background(), guildID, channelID, event.SessionID)
		return
	}

	if handshake.setState(channelID, event.SessionID) {
		a.forwardHandshake(guildID, handshake)
	}
}

// forwardHandshake hands the completed voice handshake to Lavalink in order.
func (a *LavalinkAdapter) forwardHandshake(guildID snowflake.ID, handshake *voiceHandshake) {
	channelID, sessionID, token, endpoint := handshake.data()

	slog.Debug("forwarding voice handshake to Lavalink", "guild", guildID, "channel", channelID)

	a.link.OnVoiceStateUpdate(context.Background(), guildID, channelID, sessionID)
	a.link.OnVoiceServerUpdate(context.Background(), guildID, token, endpoint)
}

func (a *LavalinkAdapter) handleTrackStart(player disgolink.Player, event lavalink.TrackStartEvent) {
	slog.Debug("track started", "guild", player.GuildID(), "track", event.Track.Info.Title)
}

func (a *LavalinkAdapter) handleTrackEnd(player disgolink.Player, event lavalink.TrackEndEvent) {
	slog.Debug("track ended", "guild", player.GuildID(), "reason", event.Reason)
	if a.onTrackEnd != nil {
		a.onTrackEnd(convertEndReason(event.Reason))
	}
}

func (a *LavalinkAdapter) handleTrackException(player disgolink.Player, event lavalink.TrackExceptionEvent) {
	slog.Warn("track exception", "guild", player.GuildID(), "error", event.Exception.Message)
}

func (a *LavalinkAdapter) handleTrackStuck(player disgolink.Player, event lavalink.TrackStuckEvent) {
	slog.Warn("track stuck", "guild", player.GuildID(), "threshold", event.Threshold)
}

func convertEndReason(reason lavalink.TrackEndReason) ports.TrackEndReason {
	switch reason {
	case lavalink.TrackEndReasonFinished:
		return ports.TrackEndFinished
	case lavalink.TrackEndReasonLoadFailed:
		return ports.TrackEndLoadFailed
	case lavalink.TrackEndReasonStopped:
		return ports.TrackEndStopped
	case lavalink.TrackEndReasonReplaced:
		return ports.TrackEndReplaced
	case lavalink.TrackEndReasonCleanup:
		return ports.TrackEndCleanup
	default:
		return ports.TrackEndStopped
	}
}

// Ensure LavalinkAdapter implements the port interfaces.
var (
	_ ports.VoiceGateway = (*LavalinkAdapter)(nil)
	_ ports.AudioOutput  = (*LavalinkAdapter)(nil)
)
