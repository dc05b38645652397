package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

const (
	// DefaultIdleTimeout is the idle duration after which an unattended
	// session returns to the home channel.
	DefaultIdleTimeout = 2 * time.Minute

	// leaveGrace is the delay between an explicit leave and the
	// return-to-home attempt.
	leaveGrace = 5 * time.Second
)

// EngineConfig carries the orchestrator's startup inputs.
type EngineConfig struct {
	Home        domain.ChannelRef // zero when no home channel is configured
	IdleTimeout time.Duration
}

// EnqueueInput contains the input for the Enqueue operation.
type EnqueueInput struct {
	Input   string            // direct reference, playlist reference, or free text
	Channel domain.ChannelRef // requester's voice channel
}

// EnqueueOutput contains the result of the Enqueue operation.
type EnqueueOutput struct {
	Tracks  []domain.Track
	Started bool // true if the enqueue started playback from idle
}

// StopOutput contains the result of the Stop operation.
type StopOutput struct {
	Cleared   int
	WasActive bool
}

// Engine is the audio-player state machine. It owns the queue, the playback
// state, and the idle timer, and drives the SessionManager. All state is
// serialized through one mutex; suspension points (resolution, connect,
// stream start) run with the mutex released and re-validate state - tracked
// by an epoch counter bumped on stop/leave - after resuming.
type Engine struct {
	mu        sync.Mutex
	queue     *domain.Queue
	state     domain.PlaybackState
	current   *domain.Track
	epoch     uint64
	advancing bool

	session     *SessionManager
	audio       ports.AudioOutput
	tracks      *TrackResolver
	playlists   *PlaylistResolver
	idle        *IdleTimer
	idleTimeout time.Duration
}

// NewEngine creates the playback orchestrator and wires its collaborators.
func NewEngine(
	cfg EngineConfig,
	gateway ports.VoiceGateway,
	audio ports.AudioOutput,
	metadata ports.MetadataProvider,
	search ports.Searcher,
) *Engine {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	e := &Engine{
		queue:       domain.NewQueue(),
		state:       domain.StateIdle,
		audio:       audio,
		idle:        NewIdleTimer(),
		idleTimeout: cfg.IdleTimeout,
	}
	e.tracks = NewTrackResolver(metadata, search, NewTrackInfoCache())
	e.playlists = NewPlaylistResolver(metadata, search, e.tracks)
	e.session = NewSessionManager(&e.mu, gateway, cfg.Home)
	e.session.SetDropHandler(e.handleSessionDrop)
	return e
}

// Session returns the session manager owned by this engine.
func (e *Engine) Session() *SessionManager {
	return e.session
}

// Close cancels any pending idle timer.
func (e *Engine) Close() {
	e.idle.Cancel()
}

// Enqueue resolves the input into track(s), appends them to the queue, and
// starts playback if the player was idle.
func (e *Engine) Enqueue(ctx context.Context, input EnqueueInput) (*EnqueueOutput, error) {
	if err := e.checkChannelConflict(input.Channel); err != nil {
		return nil, err
	}

	tracks, err := e.resolve(ctx, input.Input)
	if err != nil {
		return nil, err
	}

	// Resolution suspended; playback may have started elsewhere meanwhile.
	if err := e.checkChannelConflict(input.Channel); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.queue.Append(tracks...)
	wasIdle := e.state == domain.StateIdle
	queueLen := e.queue.Len()
	e.mu.Unlock()

	slog.Info("enqueued tracks", "count", len(tracks), "queue_len", queueLen)

	if !wasIdle {
		return &EnqueueOutput{Tracks: tracks}, nil
	}

	if err := e.advance(ctx, input.Channel); err != nil {
		return nil, err
	}

	e.mu.Lock()
	started := e.state == domain.StatePlaying
	e.mu.Unlock()
	return &EnqueueOutput{Tracks: tracks, Started: started}, nil
}

// Skip stops the current output and advances to the next queued track.
// Fails with ErrNotPlaying when nothing is playing or paused.
func (e *Engine) Skip(ctx context.Context) (*domain.Track, error) {
	e.mu.Lock()
	if e.state == domain.StateIdle || e.current == nil {
		e.mu.Unlock()
		return nil, ErrNotPlaying
	}
	skipped := *e.current
	e.current = nil
	e.state = domain.StateIdle
	e.mu.Unlock()

	// The backend reports this stop with an orchestrator-initiated end
	// reason, so the end event does not advance the queue a second time.
	if err := e.audio.Stop(ctx, e.session.Target().GuildID); err != nil {
		slog.Warn("failed to stop current output", "error", err)
	}

	if err := e.advance(ctx, domain.ChannelRef{}); err != nil {
		return &skipped, err
	}
	return &skipped, nil
}

// Pause pauses playback. Only the Playing state may transition to Paused.
func (e *Engine) Pause(ctx context.Context) error {
	e.mu.Lock()
	if e.state == domain.StateIdle {
		e.mu.Unlock()
		return ErrNotPlaying
	}
	if e.state == domain.StatePaused {
		e.mu.Unlock()
		return ErrAlreadyPaused
	}
	e.mu.Unlock()

	if err := e.audio.Pause(ctx, e.session.Target().GuildID); err != nil {
		slog.Warn("pause request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
	}

	e.mu.Lock()
	if e.state == domain.StatePlaying {
		e.state = domain.StatePaused
	}
	e.mu.Unlock()
	return nil
}

// Resume resumes playback. Only the Paused state may transition to Playing.
func (e *Engine) Resume(ctx context.Context) error {
	e.mu.Lock()
	if e.state == domain.StateIdle {
		e.mu.Unlock()
		return ErrNotPlaying
	}
	if e.state != domain.StatePaused {
		e.mu.Unlock()
		return ErrNotPaused
	}
	e.mu.Unlock()

	if err := e.audio.Resume(ctx, e.session.Target().GuildID); err != nil {
		slog.Warn("resume request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
	}

	e.mu.Lock()
	if e.state == domain.StatePaused {
		e.state = domain.StatePlaying
	}
	e.mu.Unlock()
	return nil
}

// Stop clears the queue, forces the player to idle, and arms the idle
// timer. Legal from every state.
func (e *Engine) Stop(ctx context.Context) *StopOutput {
	e.mu.Lock()
	e.epoch++
	cleared := e.queue.Clear()
	wasActive := e.state != domain.StateIdle
	e.current = nil
	e.state = domain.StateIdle
	e.mu.Unlock()

	if wasActive {
		if err := e.audio.Stop(ctx, e.session.Target().GuildID); err != nil {
			slog.Warn("failed to stop output", "error", err)
		}
	}
	e.armIdle()

	slog.Info("playback stopped", "cleared", cleared)
	return &StopOutput{Cleared: cleared, WasActive: wasActive}
}

// Leave clears the queue, destroys the voice session, and schedules the
// return-to-home attempt after a short grace delay.
func (e *Engine) Leave(ctx context.Context) error {
	e.mu.Lock()
	e.epoch++
	e.queue.Clear()
	wasActive := e.state != domain.StateIdle
	e.current = nil
	e.state = domain.StateIdle
	guildID := e.session.target.GuildID
	e.mu.Unlock()

	if wasActive && guildID != 0 {
		if err := e.audio.Stop(ctx, guildID); err != nil {
			slog.Warn("failed to stop output before leaving", "error", err)
		}
	}

	err := e.session.Leave(ctx)
	e.idle.Arm(leaveGrace, e.handleIdleExpiry)
	return err
}

// Now returns the playback state and a copy of the current track, which is
// non-nil iff the state is Playing or Paused.
func (e *Engine) Now() (domain.PlaybackState, *domain.Track) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return e.state, nil
	}
	track := *e.current
	return e.state, &track
}

// QueueSnapshot returns a copy of the pending queue in playback order.
func (e *Engine) QueueSnapshot() []domain.Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.List()
}

// IdleArmed reports whether the idle timer is pending.
func (e *Engine) IdleArmed() bool {
	return e.idle.Armed()
}

// HandleTrackEnd injects a track-end notification from the audio backend.
// Natural ends and load failures advance the queue; orchestrator-initiated
// stops do not.
func (e *Engine) HandleTrackEnd(ctx context.Context, reason ports.TrackEndReason) {
	if !reason.ShouldAdvance() {
		return
	}

	e.mu.Lock()
	if e.state == domain.StateIdle {
		e.mu.Unlock()
		return
	}
	ended := e.current
	e.current = nil
	e.state = domain.StateIdle
	e.mu.Unlock()

	if ended != nil {
		slog.Info("track ended", "track", ended.Title, "reason", string(reason))
	}

	if err := e.advance(ctx, domain.ChannelRef{}); err != nil {
		slog.Error("failed to advance after track end", "error", err)
	}
}

// advance pops the next queued track, ensures a ready session on the target
// channel, and starts its stream. Tracks whose stream fails to start are
// logged and skipped; a permanently failing queue drains to empty rather
// than looping. An empty queue sets the player idle and arms the idle timer.
func (e *Engine) advance(ctx context.Context, target domain.ChannelRef) error {
	e.mu.Lock()
	if e.advancing || e.state != domain.StateIdle {
		// An advance loop is already driving the queue, or a stream is
		// active; tracks appended meanwhile belong to that loop. Starting
		// a second loop here would pop a track and replace the stream the
		// first one started.
		e.mu.Unlock()
		return nil
	}
	e.advancing = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.advancing = false
		e.mu.Unlock()
	}()

	if target.IsZero() {
		// The channel the triggering request specified, or the channel
		// already in use.
		target = e.session.Target()
	}

	for {
		e.mu.Lock()
		epoch := e.epoch
		next := e.queue.Next()
		if next == nil {
			e.current = nil
			e.state = domain.StateIdle
			e.mu.Unlock()
			e.armIdle()
			slog.Info("queue drained, player idle")
			return nil
		}
		track := *next
		e.mu.Unlock()

		if err := e.session.EnsureConnected(ctx, target); err != nil {
			// Connectivity failure: put the track back and go idle rather
			// than draining the queue against a dead session.
			e.mu.Lock()
			if e.epoch == epoch {
				e.queue.Prepend(track)
				e.current = nil
				e.state = domain.StateIdle
			}
			e.mu.Unlock()
			e.armIdle()
			return err
		}

		e.mu.Lock()
		if e.epoch != epoch {
			// A stop or leave raced the connect; the popped track is gone
			// with the rest of the cleared queue.
			e.mu.Unlock()
			return nil
		}
		e.mu.Unlock()

		err := e.audio.Play(ctx, target.GuildID, track.SourceRef)

		e.mu.Lock()
		if e.epoch != epoch {
			e.mu.Unlock()
			if err == nil {
				// The stream came up against a stopped player; tear it down.
				if stopErr := e.audio.Stop(context.WithoutCancel(ctx), target.GuildID); stopErr != nil {
					slog.Warn("failed to stop stale stream", "error", stopErr)
				}
			}
			return nil
		}
		if err != nil {
			e.mu.Unlock()
			slog.Warn("stream start failed, skipping track", "track", track.Title, "error", err)
			continue
		}
		e.current = &track
		e.state = domain.StatePlaying
		e.mu.Unlock()

		e.idle.Cancel()
		slog.Info("now playing", "track", track.Title)
		return nil
	}
}

// resolve expands the raw input into tracks: playlist references expand via
// the playlist resolver, direct references resolve through the cache, and
// anything else is treated as a keyword query.
func (e *Engine) resolve(ctx context.Context, input string) ([]domain.Track, error) {
	if ref := domain.ParsePlaylistRef(input); ref.Kind != domain.PlaylistNone {
		return e.playlists.Resolve(ctx, ref)
	}
	if _, ok := domain.ExtractVideoID(input); ok {
		track, err := e.tracks.ResolveDirect(ctx, input)
		if err != nil {
			return nil, err
		}
		return []domain.Track{track}, nil
	}
	track, err := e.tracks.ResolveByQuery(ctx, input)
	if err != nil {
		return nil, err
	}
	return []domain.Track{track}, nil
}

// checkChannelConflict rejects a request targeting a different channel than
// the one playback is already active in.
func (e *Engine) checkChannelConflict(channel domain.ChannelRef) error {
	e.mu.Lock()
	active := e.state != domain.StateIdle
	e.mu.Unlock()

	if !active {
		return nil
	}
	target := e.session.Target()
	if !target.IsZero() && target != channel {
		return ErrWrongChannel
	}
	return nil
}

// handleSessionDrop reacts to an asynchronous session loss: active playback
// is force-stopped so the queue cannot keep growing against a dead session,
// and the idle timer is armed if it is not already.
func (e *Engine) handleSessionDrop() {
	e.mu.Lock()
	active := e.state != domain.StateIdle
	e.mu.Unlock()

	if active {
		e.Stop(context.Background())
		return
	}
	if !e.idle.Armed() {
		e.armIdle()
	}
}

// handleIdleExpiry applies the idle-timeout policy: a live, attended
// session is left alone; a dead one returns to the home channel.
func (e *Engine) handleIdleExpiry() {
	if e.session.IsReady() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	e.session.ReturnToHome(ctx)
}

func (e *Engine) armIdle() {
	e.idle.Arm(e.idleTimeout, e.handleIdleExpiry)
}
