package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

// VoiceGateway opens and closes the underlying voice transport. Join blocks
// until the transport is ready to carry audio or the context expires.
type VoiceGateway interface {
	// Join connects the bot to the referenced voice channel and waits for
	// the voice handshake to complete.
	Join(ctx context.Context, ref domain.ChannelRef) error

	// Leave disconnects the bot from voice in the given guild and destroys
	// any backend player attached to it.
	Leave(ctx context.Context, guildID snowflake.ID) error
}
