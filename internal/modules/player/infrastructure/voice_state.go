package infrastructure

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
)

// DiscordVoiceState reads user voice presence from the gateway state cache.
type DiscordVoiceState struct {
	session *discordgo.Session
}

// NewDiscordVoiceState creates a new DiscordVoiceState.
func NewDiscordVoiceState(session *discordgo.Session) *DiscordVoiceState {
	return &DiscordVoiceState{session: session}
}

// GetUserVoiceChannel returns the voice channel the user currently occupies,
// or 0 when the user is not in voice.
func (v *DiscordVoiceState) GetUserVoiceChannel(guildID, userID snowflake.ID) (snowflake.ID, error) {
	guild, err := v.session.State.Guild(guildID.String())
	if err != nil {
		return 0, fmt.Errorf("failed to look up guild state: %w", err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID != userID.String() || vs.ChannelID == "" {
			continue
		}
		channelID, err := snowflake.Parse(vs.ChannelID)
		if err != nil {
			return 0, fmt.Errorf("failed to parse channel ID: %w", err)
		}
		return channelID, nil
	}

	return 0, nil
}

var _ ports.VoiceStateProvider = (*DiscordVoiceState)(nil)
