package ports

import (
	"github.com/disgoorg/snowflake/v2"
)

// VoiceStateProvider exposes Discord voice state information.
type VoiceStateProvider interface {
	// GetUserVoiceChannel returns the voice channel ID the user is
	// currently in, or 0 if the user is not in a voice channel.
	GetUserVoiceChannel(guildID, userID snowflake.ID) (snowflake.ID, error)
}
