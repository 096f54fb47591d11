package sonod

import "strings"

// Playback states reported by the daemon.
const (
	StatePlaying = "PLAYING"
	StatePaused  = "PAUSED_PLAYBACK"
)

// Speaker is a point-in-time snapshot of one fleet member. Snapshots are
// replaced wholesale on every refresh; there is no identity carried across
// refreshes.
type Speaker struct {
	Name             string `json:"name"`
	Alias            string `json:"alias,omitempty"`
	IP               string `json:"ip,omitempty"`
	Volume           int    `json:"volume"`
	Muted            bool   `json:"muted"`
	State            string `json:"state"`
	GroupCoordinator string `json:"group_coordinator,omitempty"`
	Track            *Track `json:"track,omitempty"`
}

// Track holds now-playing metadata for a speaker.
type Track struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration int    `json:"duration"`
	Position int    `json:"position"`
	ArtURI   string `json:"art_uri,omitempty"`
}

// Playlist pairs a short machine alias with the human display name of a
// Sonos favorite.
type Playlist struct {
	Alias        string `json:"alias"`
	FavoriteName string `json:"favorite_name"`
}

// ID returns the externally-addressable identifier of the speaker: the
// alias when one is configured, the device name otherwise.
func (s Speaker) ID() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

// IsCoordinator reports whether the speaker leads its own group.
func (s Speaker) IsCoordinator() bool {
	return s.GroupCoordinator != "" && s.GroupCoordinator == s.Name
}

// IsFollower reports whether the speaker follows a different coordinator.
func (s Speaker) IsFollower() bool {
	return s.GroupCoordinator != "" && s.GroupCoordinator != s.Name
}

// IsSolo reports whether the speaker has no group affiliation at all.
func (s Speaker) IsSolo() bool {
	return s.GroupCoordinator == ""
}

// MergeFavorites appends favorites that are not already present as named
// playlists. Matching is case-insensitive on the display name; merged
// favorites become synthetic playlists whose alias equals the title.
func MergeFavorites(playlists []Playlist, favorites []string) []Playlist {
	existing := make(map[string]struct{}, len(playlists))
	for _, p := range playlists {
		existing[strings.ToLower(p.FavoriteName)] = struct{}{}
	}
	merged := playlists
	for _, title := range favorites {
		if _, ok := existing[strings.ToLower(title)]; ok {
			continue
		}
		merged = append(merged, Playlist{Alias: title, FavoriteName: title})
	}
	return merged
}
