package diagnostics

import (
	"github.com/bwmarrin/discordgo"
	"github.com/minstrelbot/minstrel/internal/bot"
	"github.com/minstrelbot/minstrel/internal/modules/diagnostics/presentation"
)

func init() {
	bot.Register(&DiagnosticsModule{})
}

// DiagnosticsModule provides health-check commands like /ping.
type DiagnosticsModule struct {
	pingHandler *presentation.PingHandler
}

// Name returns the module name.
func (m *DiagnosticsModule) Name() string {
	return "diagnostics"
}

// Commands returns the slash commands for this module.
func (m *DiagnosticsModule) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Checks the bot's gateway latency",
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *DiagnosticsModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"ping": m.pingHandler.Handle,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *DiagnosticsModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *DiagnosticsModule) Init(deps bot.ModuleDependencies) error {
	m.pingHandler = presentation.NewPingHandler()
	return nil
}

// Shutdown cleans up module resources.
func (m *DiagnosticsModule) Shutdown() error {
	return nil
}
