package bot

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// InteractionHandler handles a Discord interaction and returns a response.
type InteractionHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error

// EventHandler is a generic handler for any Discord event. It must match one
// of discordgo's handler signatures, e.g.
// func(s *discordgo.Session, m *discordgo.VoiceStateUpdate).
type EventHandler any

// ModuleDependencies carries everything a module may need during
// initialization. The session is already open when Init runs, so session
// state such as the bot user is available.
type ModuleDependencies struct {
	Session *discordgo.Session

	// Logger is scoped to the module name.
	Logger *slog.Logger
}

// Module is the contract every bot module fulfills.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the slash commands that this module provides.
	Commands() []*discordgo.ApplicationCommand

	// CommandHandlers returns a map of command names to their handlers.
	CommandHandlers() map[string]InteractionHandler

	// EventHandlers returns event handlers for this module.
	// Each handler should match a discordgo handler signature.
	EventHandlers() []EventHandler

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that carry their
// own configuration. LoadConfig runs before Init and before any Discord
// connection is established, so a misconfigured module fails the whole
// startup instead of surfacing mid-session.
type ConfigurableModule interface {
	LoadConfig() error
}
