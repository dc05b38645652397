package domain

import (
	"strconv"
	"time"
)

// Track is a playable item: display metadata plus an opaque media reference
// that the audio backend resolves to a byte stream. Tracks are immutable
// values; resolvers build them and the queue or the current-track slot owns
// them afterwards.
type Track struct {
	Title           string
	SourceRef       string // opaque reference, e.g. a watch URL
	DurationDisplay string // pre-formatted, empty when unknown
	ThumbnailURL    string
}

// NewTrack creates a new Track.
func NewTrack(title, sourceRef, durationDisplay, thumbnailURL string) Track {
	return Track{
		Title:           title,
		SourceRef:       sourceRef,
		DurationDisplay: durationDisplay,
		ThumbnailURL:    thumbnailURL,
	}
}

// IsValid returns true if the track has the minimum required fields.
func (t Track) IsValid() bool {
	return t.Title != "" && t.SourceRef != ""
}

// FormatDuration renders a duration as mm:ss or hh:mm:ss for display.
// Zero and negative durations render as an empty string (unknown).
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}

	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return pad(hours) + ":" + pad(minutes) + ":" + pad(seconds)
	}
	return pad(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
