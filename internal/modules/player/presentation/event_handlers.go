package presentation

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/minstrelbot/minstrel/internal/modules/player/application"
)

// EventHandlers handles Discord gateway events for the player.
type EventHandlers struct {
	botID   snowflake.ID
	session *application.SessionManager
}

// NewEventHandlers creates a new EventHandlers.
func NewEventHandlers(botID snowflake.ID, session *application.SessionManager) *EventHandlers {
	return &EventHandlers{
		botID:   botID,
		session: session,
	}
}

// HandleVoiceStateUpdate tracks the bot's own voice presence. A nil channel
// means the session dropped; a different channel means the bot was moved.
func (h *EventHandlers) HandleVoiceStateUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	if event.UserID != h.botID.String() {
		return
	}

	if event.ChannelID == "" {
		h.session.HandleVoiceDrop()
		return
	}

	channelID, err := snowflake.Parse(event.ChannelID)
	if err != nil {
		slog.Error("failed to parse channel ID in voice state update", "error", err)
		return
	}
	h.session.HandleVoiceMove(channelID)
}
