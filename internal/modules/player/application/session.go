package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

// connectTimeout bounds the wait for the voice session to reach ready.
const connectTimeout = 10 * time.Second

// SessionManager owns exactly one voice session handle and its connectivity
// to a specific channel. State transitions are serialized through the
// orchestrator mutex shared with the Engine; the gateway calls themselves
// run with the mutex released, and state is re-validated after each one.
type SessionManager struct {
	mu      *sync.Mutex
	gateway ports.VoiceGateway
	state   domain.SessionState
	target  domain.ChannelRef
	home    domain.ChannelRef
	onDrop  func()
}

// NewSessionManager creates a SessionManager sharing the orchestrator mutex.
// home may be zero when no home channel is configured.
func NewSessionManager(mu *sync.Mutex, gateway ports.VoiceGateway, home domain.ChannelRef) *SessionManager {
	return &SessionManager{
		mu:      mu,
		gateway: gateway,
		home:    home,
	}
}

// SetDropHandler registers the callback invoked when the session drops
// asynchronously (network failure, external disconnect).
func (s *SessionManager) SetDropHandler(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDrop = fn
}

// EnsureConnected makes sure an active, ready session targets the given
// channel. Any existing session on a different channel is destroyed first.
// Fails with ErrConnectFailed when the session does not reach ready within
// the connect bound.
func (s *SessionManager) EnsureConnected(ctx context.Context, target domain.ChannelRef) error {
	if target.IsZero() {
		return fmt.Errorf("%w: no target channel", ErrConnectFailed)
	}

	s.mu.Lock()
	if s.state == domain.SessionReady && s.target == target {
		s.mu.Unlock()
		return nil
	}
	prev := s.target
	hadSession := s.state == domain.SessionReady || s.state == domain.SessionConnecting
	s.state = domain.SessionConnecting
	s.target = target
	s.mu.Unlock()

	if hadSession && prev.GuildID != 0 && prev.GuildID != target.GuildID {
		if err := s.gateway.Leave(ctx, prev.GuildID); err != nil {
			slog.Warn("failed to destroy previous voice session", "guild", prev.GuildID, "error", err)
		}
	}

	joinCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	err := s.gateway.Join(joinCtx, target)

	s.mu.Lock()
	if err != nil {
		s.state = domain.SessionDisconnected
		s.mu.Unlock()
		// Destroy the half-open session rather than leaving it dangling.
		if leaveErr := s.gateway.Leave(context.WithoutCancel(ctx), target.GuildID); leaveErr != nil {
			slog.Warn("failed to destroy half-open voice session", "guild", target.GuildID, "error", leaveErr)
		}
		return fmt.Errorf("%w: %v", ErrConnectFailed, err)
	}
	if s.target != target {
		// A later request retargeted the session while this connect was in
		// flight; this request's connection is stale.
		s.mu.Unlock()
		return fmt.Errorf("%w: session retargeted while connecting", ErrConnectFailed)
	}
	s.state = domain.SessionReady
	s.mu.Unlock()

	slog.Info("voice session ready", "guild", target.GuildID, "channel", target.ChannelID)
	return nil
}

// ReturnToHome reconnects to the configured home channel. A no-op when no
// home channel is configured; failures are logged and ignored, there is no
// caller to report to.
func (s *SessionManager) ReturnToHome(ctx context.Context) {
	s.mu.Lock()
	home := s.home
	s.mu.Unlock()

	if home.IsZero() {
		return
	}

	if err := s.EnsureConnected(ctx, home); err != nil {
		slog.Warn("failed to return to home channel",
			"guild", home.GuildID,
			"channel", home.ChannelID,
			"error", err,
		)
	}
}

// Leave destroys the session unconditionally.
func (s *SessionManager) Leave(ctx context.Context) error {
	s.mu.Lock()
	guildID := s.target.GuildID
	s.state = domain.SessionDestroyed
	s.target = domain.ChannelRef{}
	s.mu.Unlock()

	if guildID == 0 {
		return nil
	}
	if err := s.gateway.Leave(ctx, guildID); err != nil {
		return fmt.Errorf("failed to destroy voice session: %w", err)
	}
	return nil
}

// IsReady returns true iff the session connectivity is ready.
func (s *SessionManager) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == domain.SessionReady
}

// State returns the current session connectivity state.
func (s *SessionManager) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Target returns the channel the session currently targets.
func (s *SessionManager) Target() domain.ChannelRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// HandleVoiceDrop injects an asynchronous disconnect observed from the
// transport. Drops the manager itself initiated (Leave, retarget) are
// ignored; genuine drops invalidate the session and fire the registered
// drop callback.
func (s *SessionManager) HandleVoiceDrop() {
	s.mu.Lock()
	if s.state == domain.SessionDestroyed || s.state == domain.SessionDisconnected {
		s.mu.Unlock()
		return
	}
	s.state = domain.SessionDisconnected
	s.target = domain.ChannelRef{}
	cb := s.onDrop
	s.mu.Unlock()

	slog.Warn("voice session dropped")
	if cb != nil {
		cb()
	}
}

// HandleVoiceMove records an external move of the session to a different
// channel in the same guild (e.g. a user dragging the bot).
func (s *SessionManager) HandleVoiceMove(channelID snowflake.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.SessionReady && s.target.ChannelID != channelID {
		slog.Info("voice session moved", "from", s.target.ChannelID, "to", channelID)
		s.target.ChannelID = channelID
	}
}
