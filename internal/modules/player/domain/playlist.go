package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// PlaylistKind classifies a playlist reference and drives the resolution
// strategy. Auto-generated collections (mix/radio, watch-later, likes) are
// not served by the regular playlist lookup and need fallback strategies.
type PlaylistKind int

const (
	PlaylistNone PlaylistKind = iota
	PlaylistRegular
	PlaylistMix
	PlaylistWatchLater
	PlaylistLikes
)

// String returns a human-readable representation of the playlist kind.
func (k PlaylistKind) String() string {
	switch k {
	case PlaylistRegular:
		return "regular"
	case PlaylistMix:
		return "mix"
	case PlaylistWatchLater:
		return "watch_later"
	case PlaylistLikes:
		return "likes"
	default:
		return "none"
	}
}

// PlaylistRef is a parsed playlist reference: the list identifier, its kind,
// and the specific item identifier when the reference carries one.
type PlaylistRef struct {
	ListID  string
	VideoID string
	Kind    PlaylistKind
}

var (
	videoIDPattern     = regexp.MustCompile(`(?:v=|youtu\.be/|/embed/|/shorts/|/live/)([A-Za-z0-9_-]{11})`)
	bareVideoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ClassifyListID maps a list identifier to its PlaylistKind by prefix.
func ClassifyListID(listID string) PlaylistKind {
	switch {
	case listID == "":
		return PlaylistNone
	case strings.HasPrefix(listID, "RD"):
		return PlaylistMix
	case strings.HasPrefix(listID, "WL"):
		return PlaylistWatchLater
	case strings.HasPrefix(listID, "LL"):
		return PlaylistLikes
	default:
		return PlaylistRegular
	}
}

// ParsePlaylistRef inspects a free-form reference for playlist markers.
// Absence of any list marker yields Kind == PlaylistNone: the reference is
// not a playlist and should be resolved as a single track or query instead.
func ParsePlaylistRef(input string) PlaylistRef {
	input = strings.TrimSpace(input)

	listID := extractListID(input)
	if listID == "" {
		return PlaylistRef{Kind: PlaylistNone}
	}

	videoID, _ := ExtractVideoID(input)
	return PlaylistRef{
		ListID:  listID,
		VideoID: videoID,
		Kind:    ClassifyListID(listID),
	}
}

// ExtractVideoID pulls a video identifier out of a reference string.
// Accepts watch/short-link/embed URLs and bare 11-character identifiers.
func ExtractVideoID(input string) (string, bool) {
	input = strings.TrimSpace(input)

	if bareVideoIDPattern.MatchString(input) {
		return input, true
	}
	if m := videoIDPattern.FindStringSubmatch(input); len(m) > 1 {
		return m[1], true
	}
	return "", false
}

// WatchURL builds the canonical watch URL for a video identifier.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ThumbnailURL builds the standard thumbnail URL for a video identifier.
func ThumbnailURL(videoID string) string {
	return "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg"
}

// extractListID finds the list identifier in a reference, either as the
// list query parameter of a URL or nothing at all. Bare text never carries
// a list marker.
func extractListID(input string) string {
	if !strings.Contains(input, "list=") {
		return ""
	}

	raw := input
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("list")
}
