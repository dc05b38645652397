package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// TrackEndReason represents why the audio backend stopped producing output.
type TrackEndReason string

const (
	// TrackEndFinished means the track played to its natural end.
	TrackEndFinished TrackEndReason = "finished"
	// TrackEndLoadFailed means the stream failed before or during playback.
	TrackEndLoadFailed TrackEndReason = "load_failed"
	// TrackEndStopped means playback was stopped by an orchestrator request.
	TrackEndStopped TrackEndReason = "stopped"
	// TrackEndReplaced means the track was replaced by another.
	TrackEndReplaced TrackEndReason = "replaced"
	// TrackEndCleanup means the backend cleaned the track up.
	TrackEndCleanup TrackEndReason = "cleanup"
)

// ShouldAdvance returns true if this end reason should advance the queue.
// Stops and replacements are orchestrator-initiated; advancing on them
// would double-dequeue.
func (r TrackEndReason) ShouldAdvance() bool {
	return r == TrackEndFinished || r == TrackEndLoadFailed
}

// AudioOutput streams a resolved media reference to the active voice session.
type AudioOutput interface {
	// Play resolves sourceRef and starts streaming it. An error means the
	// stream could not be started (media unavailable, network failure).
	Play(ctx context.Context, guildID snowflake.ID, sourceRef string) error

	// Stop stops the current output.
	Stop(ctx context.Context, guildID snowflake.ID) error

	// Pause pauses the current output.
	Pause(ctx context.Context, guildID snowflake.ID) error

	// Resume resumes paused output.
	Resume(ctx context.Context, guildID snowflake.ID) error
}
