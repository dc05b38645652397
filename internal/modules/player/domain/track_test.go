package domain

import (
	"testing"
	"time"
)

func TestTrack_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  bool
	}{
		{
			name:  "complete track",
			track: NewTrack("Song", "https://example.com/watch?v=abc", "03:45", ""),
			want:  true,
		},
		{
			name:  "missing title",
			track: Track{SourceRef: "ref"},
			want:  false,
		},
		{
			name:  "missing source",
			track: Track{Title: "Song"},
			want:  false,
		},
		{
			name:  "zero value",
			track: Track{},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero is unknown", 0, ""},
		{"negative is unknown", -time.Second, ""},
		{"seconds only", 42 * time.Second, "00:42"},
		{"minutes and seconds", 3*time.Minute + 7*time.Second, "03:07"},
		{"exactly one hour", time.Hour, "01:00:00"},
		{"hours minutes seconds", time.Hour + 23*time.Minute + 45*time.Second, "01:23:45"},
		{"long video", 11*time.Hour + 5*time.Second, "11:00:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
