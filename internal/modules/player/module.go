package player

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/minstrelbot/minstrel/internal/bot"
	"github.com/minstrelbot/minstrel/internal/modules/player/application"
	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
	"github.com/minstrelbot/minstrel/internal/modules/player/infrastructure"
	"github.com/minstrelbot/minstrel/internal/modules/player/presentation"
)

func init() {
	bot.Register(&PlayerModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*PlayerModule)(nil)

// PlayerModule provides media playback commands.
type PlayerModule struct {
	config   *Config
	engine   *application.Engine
	handlers *presentation.Handlers
	events   *presentation.EventHandlers
	lavalink *infrastructure.LavalinkAdapter
}

// Name returns the module name.
func (m *PlayerModule) Name() string {
	return "player"
}

// Commands returns the slash commands for this module.
func (m *PlayerModule) Commands() []*discordgo.ApplicationCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *PlayerModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"play":       m.handlers.HandlePlay,
		"skip":       m.handlers.HandleSkip,
		"pause":      m.handlers.HandlePause,
		"resume":     m.handlers.HandleResume,
		"stop":       m.handlers.HandleStop,
		"leave":      m.handlers.HandleLeave,
		"nowplaying": m.handlers.HandleNowPlaying,
		"queue":      m.handlers.HandleQueue,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *PlayerModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			m.handleVoiceServerUpdate(s, event)
		},
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			m.handleVoiceStateUpdate(s, event)
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *PlayerModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *PlayerModule) Init(deps bot.ModuleDependencies) error {
	lavalinkAdapter, err := infrastructure.NewLavalinkAdapter(deps.Session, infrastructure.LavalinkConfig{
		Address:  m.config.LavalinkAddress,
		Password: m.config.LavalinkPassword,
	})
	if err != nil {
		return err
	}
	m.lavalink = lavalinkAdapter

	metadata := infrastructure.NewYouTubeProvider(m.config.MediaUserAgent)
	search := infrastructure.NewYouTubeSearcher()
	voiceState := infrastructure.NewDiscordVoiceState(deps.Session)

	m.engine = application.NewEngine(
		application.EngineConfig{
			Home: domain.ChannelRef{
				GuildID:   snowflake.ID(m.config.HomeGuildID),
				ChannelID: snowflake.ID(m.config.HomeChannelID),
			},
			IdleTimeout: m.config.IdleTimeout,
		},
		lavalinkAdapter,
		lavalinkAdapter,
		metadata,
		search,
	)
	lavalinkAdapter.SetTrackEndHandler(func(reason ports.TrackEndReason) {
		m.engine.HandleTrackEnd(context.Background(), reason)
	})

	botID, err := snowflake.Parse(deps.Session.State.User.ID)
	if err != nil {
		return err
	}
	m.handlers = presentation.NewHandlers(m.engine, voiceState)
	m.events = presentation.NewEventHandlers(botID, m.engine.Session())

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("player module initialized", "idle_timeout", m.config.IdleTimeout)
	return nil
}

// Shutdown cleans up module resources.
func (m *PlayerModule) Shutdown() error {
	if m.engine != nil {
		m.engine.Close()
	}
	if m.lavalink != nil {
		m.lavalink.Close()
	}
	return nil
}

// Event handlers.

func (m *PlayerModule) handleVoiceServerUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceServerUpdate,
) {
	if m.lavalink != nil {
		m.lavalink.OnVoiceServerUpdate(event)
	}
}

func (m *PlayerModule) handleVoiceStateUpdate(
	s *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	if m.lavalink != nil {
		m.lavalink.OnVoiceStateUpdate(event)
	}
	if m.events != nil {
		m.events.HandleVoiceStateUpdate(s, event)
	}
}
