package infrastructure

import (
	"testing"

	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/minstrelbot/minstrel/internal/modules/player/application/ports"
)

func TestVoiceHandshake_StateThenServer(t *testing.T) {
	h := newVoiceHandshake()
	channelID := snowflake.ID(200)

	if complete := h.setState(&channelID, "session-1"); complete {
		t.Error("expected incomplete handshake after state alone")
	}
	if complete := h.setServer("token", "endpoint"); !complete {
		t.Error("expected complete handshake after both halves")
	}

	select {
	case <-h.ready:
	default:
		t.Error("expected ready channel closed")
	}
}

func TestVoiceHandshake_ServerThenState(t *testing.T) {
	h := newVoiceHandshake()
	channelID := snowflake.ID(200)

	if complete := h.setServer("token", "endpoint"); complete {
		t.Error("expected incomplete handshake after server alone")
	}
	if complete := h.setState(&channelID, "session-1"); !complete {
		t.Error("expected complete handshake after both halves")
	}

	gotChannel, sessionID, token, endpoint := h.data()
	if gotChannel == nil || *gotChannel != channelID {
		t.Errorf("unexpected channel %v", gotChannel)
	}
	if sessionID != "session-1" || token != "token" || endpoint != "endpoint" {
		t.Errorf("unexpected handshake data: %q %q %q", sessionID, token, endpoint)
	}
}

func TestVoiceHandshake_RepeatedEventsDoNotPanic(t *testing.T) {
	h := newVoiceHandshake()
	channelID := snowflake.ID(200)

	h.setState(&channelID, "session-1")
	h.setServer("token", "endpoint")
	// Discord may resend either event; closing ready twice would panic.
	h.setServer("token-2", "endpoint-2")
	h.setState(&channelID, "session-2")
}

func TestConvertEndReason(t *testing.T) {
	tests := []struct {
		reason lavalink.TrackEndReason
		want   ports.TrackEndReason
	}{
		{lavalink.TrackEndReasonFinished, ports.TrackEndFinished},
		{lavalink.TrackEndReasonLoadFailed, ports.TrackEndLoadFailed},
		{lavalink.TrackEndReasonStopped, ports.TrackEndStopped},
		{lavalink.TrackEndReasonReplaced, ports.TrackEndReplaced},
		{lavalink.TrackEndReasonCleanup, ports.TrackEndCleanup},
	}

	for _, tt := range tests {
		if got := convertEndReason(tt.reason); got != tt.want {
			t.Errorf("convertEndReason(%v) = %v, want %v", tt.reason, got, tt.want)
		}
	}

	// Advancement policy must only cover natural ends and load failures.
	if !ports.TrackEndFinished.ShouldAdvance() || !ports.TrackEndLoadFailed.ShouldAdvance() {
		t.Error("expected finished and load_failed to advance the queue")
	}
	if ports.TrackEndStopped.ShouldAdvance() || ports.TrackEndReplaced.ShouldAdvance() {
		t.Error("expected orchestrator-initiated reasons not to advance")
	}
}
