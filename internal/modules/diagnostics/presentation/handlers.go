package presentation

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/minstrelbot/minstrel/internal/bot"
	"github.com/minstrelbot/minstrel/internal/modules/diagnostics/application"
)

// PingHandler handles the /ping command.
type PingHandler struct {
	interactor *application.StatusInteractor
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler() *PingHandler {
	return &PingHandler{
		interactor: application.NewStatusInteractor(),
	}
}

// Handle processes the ping command and reports the gateway heartbeat latency.
func (h *PingHandler) Handle(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	var heartbeat time.Duration
	if s != nil {
		heartbeat = s.HeartbeatLatency()
	}

	report := h.interactor.Execute(heartbeat)

	content := "Pong!"
	if report.Heartbeat > 0 {
		content = fmt.Sprintf("Pong! Gateway heartbeat: %dms", report.Heartbeat.Milliseconds())
		if report.Degraded() {
			content += " (degraded)"
		}
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}
