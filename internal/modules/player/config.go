package player

import "time"

// Config holds the player module configuration.
type Config struct {
	LavalinkAddress  string `env:"LAVALINK_ADDRESS,notEmpty"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD,notEmpty"`

	// Home channel the bot returns to when idle. Optional; when unset the
	// idle policy simply leaves the session disconnected.
	HomeGuildID   uint64 `env:"HOME_GUILD_ID"`
	HomeChannelID uint64 `env:"HOME_CHANNEL_ID"`

	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"2m"`

	// User agent for media metadata requests. Optional.
	MediaUserAgent string `env:"MEDIA_USER_AGENT"`
}
