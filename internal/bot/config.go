package bot

import (
	"github.com/caarlos0/env/v11"
)

// Config holds the core bot configuration loaded from environment variables.
// Module-specific configuration lives with the module that uses it.
type Config struct {
	// DiscordToken authenticates the gateway session.
	DiscordToken string `env:"DISCORD_TOKEN,notEmpty"`

	// CommandGuildID scopes slash command registration to a single guild.
	// Guild-scoped commands propagate immediately, which suits a bot that
	// serves one server. Leave empty to register commands globally.
	CommandGuildID string `env:"DISCORD_COMMAND_GUILD_ID"`
}

// LoadConfig parses the bot configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
