package presentation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/minstrelbot/minstrel/internal/bot"
	"github.com/minstrelbot/minstrel/internal/modules/player/application"
	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// queueListLimit caps the number of tracks shown by /queue.
const queueListLimit = 10

// Handlers holds all the command handlers.
type Handlers struct {
	engine     *application.Engine
	voiceState ports.VoiceStateProvider
}

// NewHandlers creates new Handlers.
func NewHandlers(engine *application.Engine, voiceState ports.VoiceStateProvider) *Handlers {
	return &Handlers{
		engine:     engine,
		voiceState: voiceState,
	}
}

// HandlePlay handles the /play command.
func (h *Handlers) HandlePlay(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return respondError(r, "Invalid user")
	}

	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "query" {
			query = opt.StringValue()
		}
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return respondError(r, "Query must not be empty")
	}

	channelID, err := h.voiceState.GetUserVoiceChannel(guildID, userID)
	if err != nil {
		return respondError(r, errorMessage(err))
	}
	if channelID == 0 {
		return respondError(r, errorMessage(application.ErrUserNotInVoice))
	}

	output, err := h.engine.Enqueue(context.Background(), application.EnqueueInput{
		Input:   query,
		Channel: domain.ChannelRef{GuildID: guildID, ChannelID: channelID},
	})
	if err != nil {
		return respondError(r, errorMessage(err))
	}

	return respondQueueAdded(r, output)
}

// HandleSkip handles the /skip command.
func (h *Handlers) HandleSkip(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	if err := h.requireSameChannel(i); err != nil {
		return respondError(r, errorMessage(err))
	}

	skipped, err := h.engine.Skip(context.Background())
	if err != nil {
		return respondError(r, errorMessage(err))
	}

	return respondSuccess(r, fmt.Sprintf("Skipped [%s](%s).", skipped.Title, skipped.SourceRef))
}

// HandlePause handles the /pause command.
func (h *Handlers) HandlePause(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	if err := h.requireSameChannel(i); err != nil {
		return respondError(r, errorMessage(err))
	}

	if err := h.engine.Pause(context.Background()); err != nil {
		return respondError(r, errorMessage(err))
	}

	return respondSuccess(r, "Paused playback.")
}

// HandleResume handles the /resume command.
func (h *Handlers) HandleResume(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	if err := h.requireSameChannel(i); err != nil {
		return respondError(r, errorMessage(err))
	}

	if err := h.engine.Resume(context.Background()); err != nil {
		return respondError(r, errorMessage(err))
	}

	return respondSuccess(r, "Resumed playback.")
}

// HandleStop handles the /stop command. Stopping an idle player is reported
// as an error here even though the orchestrator treats it as a no-op.
func (h *Handlers) HandleStop(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	if err := h.requireSameChannel(i); err != nil {
		return respondError(r, errorMessage(err))
	}

	state, _ := h.engine.Now()
	if state == domain.StateIdle && len(h.engine.QueueSnapshot()) == 0 {
		return respondError(r, errorMessage(application.ErrNotPlaying))
	}

	output := h.engine.Stop(context.Background())
	if output.Cleared > 0 {
		return respondSuccess(r,
			fmt.Sprintf("Stopped playback and cleared %d queued track(s).", output.Cleared))
	}
	return respondSuccess(r, "Stopped playback.")
}

// HandleLeave handles the /leave command.
func (h *Handlers) HandleLeave(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	if err := h.requireSameChannel(i); err != nil {
		return respondError(r, errorMessage(err))
	}

	if err := h.engine.Leave(context.Background()); err != nil {
		return respondError(r, errorMessage(err))
	}

	return respondSuccess(r, "Disconnected.")
}

// HandleNowPlaying handles the /nowplaying command.
func (h *Handlers) HandleNowPlaying(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	if err := h.requireSameChannel(i); err != nil {
		return respondError(r, errorMessage(err))
	}

	state, track := h.engine.Now()
	if track == nil {
		return respondSuccess(r, "Nothing is playing.")
	}

	title := "Now Playing"
	if state == domain.StatePaused {
		title = "Paused"
	}

	description := fmt.Sprintf("[%s](%s)", track.Title, track.SourceRef)
	if track.DurationDisplay != "" {
		description += fmt.Sprintf(" `%s`", track.DurationDisplay)
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorSuccess,
	}
	if track.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: track.ThumbnailURL}
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// HandleQueue handles the /queue command.
func (h *Handlers) HandleQueue(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	if err := h.requireSameChannel(i); err != nil {
		return respondError(r, errorMessage(err))
	}

	tracks := h.engine.QueueSnapshot()

	embed := &discordgo.MessageEmbed{
		Title: "Queue",
		Color: colorSuccess,
	}

	if len(tracks) == 0 {
		embed.Description = "Queue is empty."
	} else {
		var sb strings.Builder
		for idx, track := range tracks {
			if idx == queueListLimit {
				break
			}
			// Escape the period so Discord does not render a numbered list.
			fmt.Fprintf(&sb, "%d\\. [%s](%s)", idx+1, track.Title, track.SourceRef)
			if track.DurationDisplay != "" {
				fmt.Fprintf(&sb, " `%s`", track.DurationDisplay)
			}
			sb.WriteString("\n")
		}
		embed.Description = sb.String()
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d track(s) queued", len(tracks)),
		}
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// requireSameChannel rejects requests from users who do not share the active
// voice channel. Commands against an unconnected session pass through so the
// orchestrator can report its own state errors.
func (h *Handlers) requireSameChannel(i *discordgo.InteractionCreate) error {
	target := h.engine.Session().Target()
	if target.IsZero() {
		return nil
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return application.ErrNotInSameChannel
	}
	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return application.ErrNotInSameChannel
	}

	channelID, err := h.voiceState.GetUserVoiceChannel(guildID, userID)
	if err != nil {
		return err
	}
	if channelID != target.ChannelID {
		return application.ErrNotInSameChannel
	}
	return nil
}

// errorMessage maps orchestrator errors to user-facing text.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, application.ErrNoResults):
		return "No results found for that query."
	case errors.Is(err, application.ErrPlaylistEmpty):
		return "That playlist resolved to no playable tracks."
	case errors.Is(err, application.ErrNotPlaying):
		return "Nothing is currently playing."
	case errors.Is(err, application.ErrAlreadyPaused):
		return "Playback is already paused."
	case errors.Is(err, application.ErrNotPaused):
		return "Playback is not paused."
	case errors.Is(err, application.ErrConnectFailed):
		return "Could not connect to the voice channel."
	case errors.Is(err, application.ErrOutputUnavailable):
		return "The audio output did not respond. Try again."
	case errors.Is(err, application.ErrWrongChannel):
		return "Already playing in another voice channel."
	case errors.Is(err, application.ErrUserNotInVoice):
		return "You must be in a voice channel to use this command."
	case errors.Is(err, application.ErrNotInSameChannel):
		return "You must be in the same voice channel as the bot."
	default:
		return err.Error()
	}
}

// Response helpers.

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
		},
	})
}

func respondSuccess(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: message,
					Color:       colorSuccess,
				},
			},
		},
	})
}

func respondQueueAdded(r bot.Responder, output *application.EnqueueOutput) error {
	var description string
	switch {
	case len(output.Tracks) == 1:
		track := output.Tracks[0]
		description = fmt.Sprintf("Added [%s](%s) to the queue.", track.Title, track.SourceRef)
	default:
		description = fmt.Sprintf("Added %d tracks to the queue.", len(output.Tracks))
	}
	if output.Started {
		description += " Starting playback."
	}
	return respondSuccess(r, description)
}
