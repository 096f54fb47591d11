package tui

import (
	"fmt"
	"time"

	"github.com/galamiram/sonoctl/internal/sonod"
)

// Panel identifies which dashboard region has focus.
type Panel int

const (
	PanelSpeakers Panel = iota
	PanelPlaylists
	PanelNowPlaying
)

// InputMode is the key-handling mode of the control loop. The two entry
// modes are mutually exclusive: entering one clears the other.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeVolumeEntry
	ModeCommandEntry
)

// State owns every piece of UI-visible state. It is only ever mutated from
// the bubbletea Update loop, so it needs no locking; background refreshes
// hand off immutable snapshots through messages.
type State struct {
	Speakers  []sonod.Speaker
	Playlists []sonod.Playlist

	ActivePanel   Panel
	SpeakerIndex  int
	PlaylistIndex int

	Mode       InputMode
	CommandBuf string
	VolumeBuf  string

	HelpOpen    bool
	LastRefresh time.Time

	statusMsg   string
	statusUntil time.Time
	sleepUntil  time.Time

	now func() time.Time
}

// NewState creates an empty state with the wall clock. Tests inject their
// own clock via SetClock.
func NewState() *State {
	return &State{now: time.Now}
}

// SetClock replaces the clock used for status and sleep deadlines.
func (s *State) SetClock(now func() time.Time) {
	s.now = now
}

// SelectedSpeaker returns the speaker under the cursor, if any.
func (s *State) SelectedSpeaker() (sonod.Speaker, bool) {
	if s.SpeakerIndex < 0 || s.SpeakerIndex >= len(s.Speakers) {
		return sonod.Speaker{}, false
	}
	return s.Speakers[s.SpeakerIndex], true
}

// SelectedPlaylist returns the playlist under the cursor, if any.
func (s *State) SelectedPlaylist() (sonod.Playlist, bool) {
	if s.PlaylistIndex < 0 || s.PlaylistIndex >= len(s.Playlists) {
		return sonod.Playlist{}, false
	}
	return s.Playlists[s.PlaylistIndex], true
}

// SpeakerID returns the addressable id of the selected speaker.
func (s *State) SpeakerID() (string, bool) {
	sp, ok := s.SelectedSpeaker()
	if !ok {
		return "", false
	}
	return sp.ID(), true
}

// NextInList advances the active panel's cursor circularly. No-op on empty
// lists and on the now-playing panel.
func (s *State) NextInList() {
	switch s.ActivePanel {
	case PanelSpeakers:
		if len(s.Speakers) > 0 {
			s.SpeakerIndex = (s.SpeakerIndex + 1) % len(s.Speakers)
		}
	case PanelPlaylists:
		if len(s.Playlists) > 0 {
			s.PlaylistIndex = (s.PlaylistIndex + 1) % len(s.Playlists)
		}
	}
}

// PrevInList moves the active panel's cursor back circularly.
func (s *State) PrevInList() {
	switch s.ActivePanel {
	case PanelSpeakers:
		if len(s.Speakers) > 0 {
			s.SpeakerIndex = (s.SpeakerIndex + len(s.Speakers) - 1) % len(s.Speakers)
		}
	case PanelPlaylists:
		if len(s.Playlists) > 0 {
			s.PlaylistIndex = (s.PlaylistIndex + len(s.Playlists) - 1) % len(s.Playlists)
		}
	}
}

// CyclePanel rotates focus Speakers -> Playlists -> NowPlaying -> Speakers.
func (s *State) CyclePanel() {
	switch s.ActivePanel {
	case PanelSpeakers:
		s.ActivePanel = PanelPlaylists
	case PanelPlaylists:
		s.ActivePanel = PanelNowPlaying
	default:
		s.ActivePanel = PanelSpeakers
	}
}

// ReplaceSpeakers swaps in a fresh snapshot. Indices are positional; after
// a shrink the cursor is clamped so lookups stay in bounds.
func (s *State) ReplaceSpeakers(speakers []sonod.Speaker) {
	s.Speakers = speakers
	if s.SpeakerIndex >= len(speakers) {
		s.SpeakerIndex = 0
	}
	s.LastRefresh = s.now()
}

// ReplacePlaylists swaps in a fresh playlist snapshot.
func (s *State) ReplacePlaylists(playlists []sonod.Playlist) {
	s.Playlists = playlists
	if s.PlaylistIndex >= len(playlists) {
		s.PlaylistIndex = 0
	}
}

// EnterCommandMode starts command entry, clearing any volume entry.
func (s *State) EnterCommandMode() {
	s.Mode = ModeCommandEntry
	s.CommandBuf = ""
	s.VolumeBuf = ""
}

// EnterVolumeMode starts numeric volume entry, clearing any command entry.
func (s *State) EnterVolumeMode() {
	s.Mode = ModeVolumeEntry
	s.VolumeBuf = ""
	s.CommandBuf = ""
}

// ExitInputMode returns to normal key handling, discarding both buffers.
func (s *State) ExitInputMode() {
	s.Mode = ModeNormal
	s.CommandBuf = ""
	s.VolumeBuf = ""
}

// IsGrouped reports whether at least one speaker follows a different
// coordinator. All-solo and all-self-coordinating fleets are not grouped.
func (s *State) IsGrouped() bool {
	for _, sp := range s.Speakers {
		if sp.IsFollower() {
			return true
		}
	}
	return false
}

// Coordinators returns the speakers that lead their own group.
func (s *State) Coordinators() []sonod.Speaker {
	var out []sonod.Speaker
	for _, sp := range s.Speakers {
		if sp.IsCoordinator() {
			out = append(out, sp)
		}
	}
	return out
}

// SoloSpeakers returns the speakers with no group affiliation.
func (s *State) SoloSpeakers() []sonod.Speaker {
	var out []sonod.Speaker
	for _, sp := range s.Speakers {
		if sp.IsSolo() {
			out = append(out, sp)
		}
	}
	return out
}

// GroupMembers returns every speaker following the named coordinator,
// including the coordinator itself since it follows its own name.
func (s *State) GroupMembers(coordinator string) []sonod.Speaker {
	var out []sonod.Speaker
	for _, sp := range s.Speakers {
		if sp.GroupCoordinator == coordinator {
			out = append(out, sp)
		}
	}
	return out
}

// PlayingEntities returns the speakers the now-playing panel should show.
// Ungrouped fleets show the selected speaker; grouped fleets show one
// representative per coordinator or solo speaker that has track metadata,
// driving the stacked projection.
func (s *State) PlayingEntities() []sonod.Speaker {
	if !s.IsGrouped() {
		if sp, ok := s.SelectedSpeaker(); ok {
			return []sonod.Speaker{sp}
		}
		return nil
	}
	var out []sonod.Speaker
	for _, sp := range s.Speakers {
		if (sp.IsCoordinator() || sp.IsSolo()) && sp.Track != nil {
			out = append(out, sp)
		}
	}
	return out
}

// SetStatus arms a status message that expires ttl from now.
func (s *State) SetStatus(msg string, ttl time.Duration) {
	s.statusMsg = msg
	s.statusUntil = s.now().Add(ttl)
}

// ArmSleep sets the sleep deadline the given number of minutes from now.
func (s *State) ArmSleep(minutes int) {
	s.sleepUntil = s.now().Add(time.Duration(minutes) * time.Minute)
}

// CancelSleep disarms the sleep timer.
func (s *State) CancelSleep() {
	s.sleepUntil = time.Time{}
}

// SleepArmed reports whether a sleep deadline is set.
func (s *State) SleepArmed() bool {
	return !s.sleepUntil.IsZero()
}

// SleepExpired reports whether an armed sleep deadline has passed.
func (s *State) SleepExpired() bool {
	return s.SleepArmed() && !s.now().Before(s.sleepUntil)
}

// ActiveStatus returns the line for the status area. A live timed message
// always masks the sleep countdown; with neither live it is empty.
func (s *State) ActiveStatus() string {
	now := s.now()
	if s.statusMsg != "" && now.Before(s.statusUntil) {
		return s.statusMsg
	}
	if s.SleepArmed() && now.Before(s.sleepUntil) {
		remaining := s.sleepUntil.Sub(now).Round(time.Second)
		secs := int(remaining.Seconds())
		return fmt.Sprintf("Sleep: %d:%02d remaining", secs/60, secs%60)
	}
	return ""
}
