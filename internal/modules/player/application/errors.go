package application

import "errors"

// Errors surfaced by the playback orchestrator.
var (
	// ErrNoResults is returned when a search yields no results.
	ErrNoResults = errors.New("no results found")

	// ErrPlaylistEmpty is returned when every playlist resolution strategy
	// yields zero tracks.
	ErrPlaylistEmpty = errors.New("playlist resolved to no tracks")

	// ErrNotPlaying is returned when an operation requires an active track.
	ErrNotPlaying = errors.New("nothing is currently playing")

	// ErrAlreadyPaused is returned when trying to pause while already paused.
	ErrAlreadyPaused = errors.New("playback is already paused")

	// ErrNotPaused is returned when trying to resume while not paused.
	ErrNotPaused = errors.New("playback is not paused")

	// ErrConnectFailed is returned when the voice session fails to reach
	// ready within the connect bound.
	ErrConnectFailed = errors.New("failed to establish voice session")

	// ErrOutputUnavailable is returned when the audio backend rejects a
	// playback control request.
	ErrOutputUnavailable = errors.New("audio output unavailable")

	// ErrWrongChannel is returned when playback is already active in a
	// different voice channel.
	ErrWrongChannel = errors.New("already playing in another voice channel")

	// ErrUserNotInVoice is returned when the requester is not in a voice
	// channel.
	ErrUserNotInVoice = errors.New("you must be in a voice channel")

	// ErrNotInSameChannel is returned when the requester does not share the
	// session's voice channel.
	ErrNotInSameChannel = errors.New("you must be in the same voice channel as the bot")
)
