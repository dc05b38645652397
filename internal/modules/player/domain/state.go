package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// PlaybackState represents the audio-player state. Exactly one value holds
// at any instant; a current track exists iff the state is Playing or Paused.
type PlaybackState int

const (
	StateIdle PlaybackState = iota
	StatePlaying
	StatePaused
)

// String returns a human-readable representation of the playback state.
func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// SessionState represents the voice session's connectivity, independent of
// the playback state.
type SessionState int

const (
	SessionDisconnected SessionState = iota
	SessionConnecting
	SessionReady
	SessionDestroyed
)

// String returns a human-readable representation of the session state.
func (s SessionState) String() string {
	switch s {
	case SessionConnecting:
		return "connecting"
	case SessionReady:
		return "ready"
	case SessionDestroyed:
		return "destroyed"
	default:
		return "disconnected"
	}
}

// ChannelRef identifies a voice channel within its guild.
type ChannelRef struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
}

// IsZero returns true if the reference does not name a channel.
func (c ChannelRef) IsZero() bool {
	return c.GuildID == 0 || c.ChannelID == 0
}
