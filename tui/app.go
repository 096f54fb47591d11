// Package tui implements the interactive dashboard: the application state
// model, the view projection and the bubbletea control loop that glues
// keystrokes and typed commands to the sonod daemon.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/galamiram/sonoctl/internal/command"
	"github.com/galamiram/sonoctl/internal/history"
	"github.com/galamiram/sonoctl/internal/sonod"
)

const (
	refreshInterval = 2 * time.Second
	tickRate        = 500 * time.Millisecond
	volumeStep      = 5
)

// App is the bubbletea model for the dashboard.
type App struct {
	keys  keyMap
	help  help.Model
	svc   sonod.Service
	state *State

	width  int
	height int

	trackBar  progress.Model
	volumeBar progress.Model

	refreshing bool
	showLogs   bool
	logs       *logRing
}

// keyMap defines the normal-mode keyboard shortcuts.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	CyclePanel  key.Binding
	Play        key.Binding
	TogglePause key.Binding
	VolumeUp    key.Binding
	VolumeDown  key.Binding
	NextTrack   key.Binding
	PrevTrack   key.Binding
	Group       key.Binding
	VolumeEntry key.Binding
	Command     key.Binding
	Refresh     key.Binding
	Logs        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns the key bindings shown in the mini help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CyclePanel, k.Up, k.Play, k.TogglePause, k.VolumeUp, k.Group, k.Command, k.Help, k.Quit}
}

// FullHelp returns the key bindings shown in the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CyclePanel, k.Up, k.Down, k.Play, k.TogglePause},
		{k.VolumeUp, k.VolumeDown, k.VolumeEntry, k.NextTrack, k.PrevTrack},
		{k.Group, k.Command, k.Refresh, k.Logs, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "prev in list"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next in list"),
	),
	CyclePanel: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "cycle panel"),
	),
	Play: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "play selection"),
	),
	TogglePause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause/resume"),
	),
	VolumeUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+/-", "volume step"),
	),
	VolumeDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "volume down"),
	),
	NextTrack: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next track"),
	),
	PrevTrack: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "prev track"),
	),
	Group: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "group/ungroup all"),
	),
	VolumeEntry: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "set volume"),
	),
	Command: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "command"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh now"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "toggle logs"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewApp creates the dashboard against the given daemon service.
func NewApp(svc sonod.Service) *App {
	return &App{
		keys:      keys,
		help:      help.New(),
		svc:       svc,
		state:     NewState(),
		trackBar:  progress.New(progress.WithDefaultGradient()),
		volumeBar: progress.New(progress.WithDefaultGradient()),
		logs:      newLogRing(64),
	}
}

// Messages.

type speakersMsg struct {
	speakers []sonod.Speaker
}

type libraryMsg struct {
	playlists []sonod.Playlist
}

type statusNote struct {
	text string
	ttl  time.Duration
}

type refreshFailedMsg struct {
	err error
}

type tickMsg struct{}

// Init starts the initial load and the timer tick.
func (a *App) Init() tea.Cmd {
	a.refreshing = true
	return tea.Batch(a.refreshCmd(), a.loadLibraryCmd(), a.tickCmd())
}

// Update handles messages and drives all state mutation. The state is only
// ever touched here, never from command goroutines.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width

	case tea.KeyMsg:
		return a.handleKey(msg)

	case speakersMsg:
		a.refreshing = false
		a.state.ReplaceSpeakers(msg.speakers)

	case refreshFailedMsg:
		a.refreshing = false
		log.WithError(msg.err).Debug("Speaker refresh failed")
		a.state.SetStatus(fmt.Sprintf("Daemon unreachable: %v", msg.err), 3*time.Second)

	case libraryMsg:
		a.state.ReplacePlaylists(msg.playlists)

	case statusNote:
		a.state.SetStatus(msg.text, msg.ttl)

	case tickMsg:
		var cmds []tea.Cmd
		if a.state.SleepExpired() {
			a.state.CancelSleep()
			a.state.SetStatus("The sleep timer tolls: pausing the fleet.", 4*time.Second)
			cmds = append(cmds, a.pauseAllCmd())
		}
		if !a.refreshing && time.Since(a.state.LastRefresh) > refreshInterval {
			a.refreshing = true
			cmds = append(cmds, a.refreshCmd())
		}
		cmds = append(cmds, a.tickCmd())
		return a, tea.Batch(cmds...)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	switch a.state.Mode {
	case ModeCommandEntry:
		return a.handleCommandKey(msg)
	case ModeVolumeEntry:
		return a.handleVolumeKey(msg)
	}
	return a.handleNormalKey(msg)
}

// handleCommandKey edits the ":" command buffer.
func (a *App) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := a.state
	switch msg.Type {
	case tea.KeyRunes:
		s.CommandBuf += string(msg.Runes)
	case tea.KeySpace:
		s.CommandBuf += " "
	case tea.KeyBackspace:
		// Backspace on an empty buffer leaves the mode entirely.
		if s.CommandBuf == "" {
			s.ExitInputMode()
		} else {
			r := []rune(s.CommandBuf)
			s.CommandBuf = string(r[:len(r)-1])
		}
	case tea.KeyTab:
		if sug, ok := command.Autocomplete(s.CommandBuf, a.playlistNames()); ok {
			s.CommandBuf = command.Apply(s.CommandBuf, sug)
		}
	case tea.KeyEnter:
		input := s.CommandBuf
		s.ExitInputMode()
		return a, a.executeCommand(input)
	case tea.KeyEsc:
		s.ExitInputMode()
	}
	return a, nil
}

// handleVolumeKey edits the numeric volume buffer.
func (a *App) handleVolumeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := a.state
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' && len(s.VolumeBuf) < 3 {
				s.VolumeBuf += string(r)
			}
		}
	case tea.KeyBackspace:
		if s.VolumeBuf != "" {
			s.VolumeBuf = s.VolumeBuf[:len(s.VolumeBuf)-1]
		}
	case tea.KeyEnter:
		buf := s.VolumeBuf
		s.ExitInputMode()
		vol, err := strconv.Atoi(buf)
		if err != nil {
			// Empty or non-numeric input cancels, same as esc.
			return a, nil
		}
		if vol > 100 {
			vol = 100
		}
		if id, ok := s.SpeakerID(); ok {
			a.mirrorVolume([]string{id}, vol)
			return a, a.setVolumeCmd([]string{id}, vol)
		}
	case tea.KeyEsc:
		s.ExitInputMode()
	}
	return a, nil
}

func (a *App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := a.state
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		s.HelpOpen = !s.HelpOpen
		a.help.ShowAll = s.HelpOpen

	case key.Matches(msg, a.keys.Logs):
		a.showLogs = !a.showLogs

	case key.Matches(msg, a.keys.CyclePanel):
		s.CyclePanel()

	case key.Matches(msg, a.keys.Up):
		s.PrevInList()

	case key.Matches(msg, a.keys.Down):
		s.NextInList()

	case key.Matches(msg, a.keys.Play):
		id, okID := s.SpeakerID()
		pl, okPl := s.SelectedPlaylist()
		if okID && okPl {
			s.SetStatus(fmt.Sprintf("Playing %s on %s", pl.Alias, id), 3*time.Second)
			return a, a.playCmd(id, pl.Alias)
		}

	case key.Matches(msg, a.keys.TogglePause):
		if sp, ok := s.SelectedSpeaker(); ok {
			return a, a.togglePauseCmd(sp)
		}

	case key.Matches(msg, a.keys.VolumeUp):
		return a, a.stepVolume(volumeStep)

	case key.Matches(msg, a.keys.VolumeDown):
		return a, a.stepVolume(-volumeStep)

	case key.Matches(msg, a.keys.NextTrack):
		if id, ok := s.SpeakerID(); ok {
			return a, a.trackSkipCmd(id, true)
		}

	case key.Matches(msg, a.keys.PrevTrack):
		if id, ok := s.SpeakerID(); ok {
			return a, a.trackSkipCmd(id, false)
		}

	case key.Matches(msg, a.keys.Group):
		return a, a.toggleGroupCmd(s.IsGrouped())

	case key.Matches(msg, a.keys.VolumeEntry):
		s.EnterVolumeMode()

	case key.Matches(msg, a.keys.Command):
		s.EnterCommandMode()

	case key.Matches(msg, a.keys.Refresh):
		if !a.refreshing {
			a.refreshing = true
			return a, a.refreshCmd()
		}

	case msg.Type == tea.KeyEsc:
		if s.HelpOpen {
			s.HelpOpen = false
			a.help.ShowAll = false
		}
	}
	return a, nil
}

// executeCommand parses the consumed command buffer and dispatches it.
// State mutations (sleep deadline, optimistic volume) happen here on the
// Update goroutine; service calls run as commands.
func (a *App) executeCommand(input string) tea.Cmd {
	s := a.state
	c, ok := command.Parse(input)
	if !ok || c.Kind == command.KindUnknown {
		s.SetStatus("Speak, friend, and speak clearly.", 3*time.Second)
		return nil
	}

	switch c.Kind {
	case command.KindPlay:
		id, okID := s.SpeakerID()
		if !okID {
			return nil
		}
		pl, found := a.matchPlaylist(c.Query)
		if !found {
			s.SetStatus("Not all those who wander are found in this network.", 4*time.Second)
			return nil
		}
		s.SetStatus(fmt.Sprintf("Playing %s on %s", pl.Alias, id), 3*time.Second)
		return a.playCmd(id, pl.Alias)

	case command.KindVolume:
		vol := c.Volume
		if vol > 100 {
			vol = 100
		}
		ids, err := a.resolveTargets(c)
		if err != nil {
			s.SetStatus(err.Error(), 3*time.Second)
			return nil
		}
		if len(ids) == 0 {
			return nil
		}
		a.mirrorVolume(ids, vol)
		if vol == 100 {
			s.SetStatus("You shall not pass... 100.", 3*time.Second)
		} else {
			s.SetStatus(fmt.Sprintf("Volume set to %d.", vol), 2*time.Second)
		}
		return a.setVolumeCmd(ids, vol)

	case command.KindGroupAll:
		return a.toggleGroupCmd(false)

	case command.KindUngroup:
		return a.toggleGroupCmd(true)

	case command.KindNext:
		if id, ok := s.SpeakerID(); ok {
			return a.trackSkipCmd(id, true)
		}

	case command.KindPrev:
		if id, ok := s.SpeakerID(); ok {
			return a.trackSkipCmd(id, false)
		}

	case command.KindSleep:
		s.ArmSleep(c.Minutes)

	case command.KindSleepCancel:
		s.CancelSleep()
		s.SetStatus("The sleep timer's spell is broken.", 3*time.Second)

	case command.KindReload:
		return a.reloadCmd()
	}
	return nil
}

// matchPlaylist finds the first playlist whose alias or display name
// contains the query, case-insensitively. An empty query matches the first
// playlist; an empty library yields no match.
func (a *App) matchPlaylist(query string) (sonod.Playlist, bool) {
	q := strings.ToLower(query)
	for _, pl := range a.state.Playlists {
		if strings.Contains(strings.ToLower(pl.Alias), q) ||
			strings.Contains(strings.ToLower(pl.FavoriteName), q) {
			return pl, true
		}
	}
	return sonod.Playlist{}, false
}

// resolveTargets maps a volume command's target onto addressable ids.
func (a *App) resolveTargets(c command.Command) ([]string, error) {
	s := a.state
	switch c.Target {
	case command.TargetAll:
		ids := make([]string, 0, len(s.Speakers))
		for _, sp := range s.Speakers {
			ids = append(ids, sp.ID())
		}
		return ids, nil
	case command.TargetNamed:
		for _, sp := range s.Speakers {
			if strings.EqualFold(sp.ID(), c.TargetName) || strings.EqualFold(sp.Name, c.TargetName) {
				return []string{sp.ID()}, nil
			}
		}
		return nil, fmt.Errorf("no speaker named %q", c.TargetName)
	default:
		if id, ok := s.SpeakerID(); ok {
			return []string{id}, nil
		}
		return nil, nil
	}
}

// mirrorVolume writes the new value into the local snapshot so the gauges
// move before the next refresh confirms it.
func (a *App) mirrorVolume(ids []string, vol int) {
	for i := range a.state.Speakers {
		for _, id := range ids {
			if a.state.Speakers[i].ID() == id {
				a.state.Speakers[i].Volume = vol
			}
		}
	}
}

// stepVolume adjusts the selected speaker by delta, clamped to 0-100.
func (a *App) stepVolume(delta int) tea.Cmd {
	sp, ok := a.state.SelectedSpeaker()
	if !ok {
		return nil
	}
	vol := sp.Volume + delta
	if vol > 100 {
		vol = 100
	}
	if vol < 0 {
		vol = 0
	}
	a.mirrorVolume([]string{sp.ID()}, vol)
	return a.setVolumeCmd([]string{sp.ID()}, vol)
}

func (a *App) playlistNames() []string {
	names := make([]string, 0, len(a.state.Playlists))
	for _, pl := range a.state.Playlists {
		names = append(names, pl.FavoriteName)
	}
	return names
}

// Commands. Each runs off the Update goroutine and reports back through a
// message; none of them touch State directly.

func (a *App) refreshCmd() tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		speakers, err := svc.ListSpeakers()
		if err != nil {
			return refreshFailedMsg{err: err}
		}
		return speakersMsg{speakers: speakers}
	}
}

// loadLibraryCmd fetches playlists, merges favorites not already present
// and applies the daemon's configured ordering.
func (a *App) loadLibraryCmd() tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		playlists, err := svc.ListPlaylists()
		if err != nil {
			log.WithError(err).Debug("Failed to load playlists")
			return statusNote{text: fmt.Sprintf("Failed to load playlists: %v", err), ttl: 4 * time.Second}
		}
		if favorites, err := svc.ListFavorites(); err == nil {
			playlists = sonod.MergeFavorites(playlists, favorites)
		} else {
			log.WithError(err).Debug("Failed to load favorites")
		}
		if mode, err := svc.PlaylistSortMode(); err == nil && mode == "popularity" {
			history.PopularitySort(playlists, history.Load(), time.Now())
		}
		return libraryMsg{playlists: playlists}
	}
}

func (a *App) playCmd(speakerID, alias string) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		if err := svc.Play(speakerID, alias); err != nil {
			return statusNote{text: fmt.Sprintf("Play failed: %v", err), ttl: 4 * time.Second}
		}
		history.RecordPlay(alias)
		return nil
	}
}

func (a *App) togglePauseCmd(sp sonod.Speaker) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		var err error
		if sp.State == sonod.StatePlaying {
			err = svc.Pause(sp.ID())
		} else {
			err = svc.Resume(sp.ID())
		}
		if err != nil {
			return statusNote{text: fmt.Sprintf("Playback toggle failed: %v", err), ttl: 3 * time.Second}
		}
		return nil
	}
}

func (a *App) setVolumeCmd(ids []string, vol int) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		for _, id := range ids {
			if err := svc.SetVolume(id, vol); err != nil {
				return statusNote{text: fmt.Sprintf("Volume set failed on %s: %v", id, err), ttl: 3 * time.Second}
			}
		}
		return nil
	}
}

func (a *App) trackSkipCmd(id string, forward bool) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		var err error
		text := "Onward, into shadow."
		if forward {
			err = svc.Next(id)
		} else {
			err = svc.Previous(id)
			text = "Back to the beginning."
		}
		if err != nil {
			return statusNote{text: fmt.Sprintf("Track skip failed: %v", err), ttl: 3 * time.Second}
		}
		return statusNote{text: text, ttl: 2 * time.Second}
	}
}

func (a *App) toggleGroupCmd(grouped bool) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		if grouped {
			if err := svc.UngroupAll(); err != nil {
				return statusNote{text: fmt.Sprintf("Ungroup failed: %v", err), ttl: 3 * time.Second}
			}
			return statusNote{text: "The company is scattered to the winds.", ttl: 3 * time.Second}
		}
		if err := svc.GroupAll(); err != nil {
			return statusNote{text: fmt.Sprintf("Group failed: %v", err), ttl: 3 * time.Second}
		}
		return statusNote{text: "The fellowship is assembled.", ttl: 3 * time.Second}
	}
}

// reloadCmd asks the daemon to re-read its config, then refetches the
// playlist library so new aliases show up without restarting.
func (a *App) reloadCmd() tea.Cmd {
	svc := a.svc
	lib := a.loadLibraryCmd()
	return func() tea.Msg {
		if err := svc.Reload(); err != nil {
			return statusNote{text: fmt.Sprintf("Reload failed: %v", err), ttl: 4 * time.Second}
		}
		return tea.Batch(
			func() tea.Msg {
				return statusNote{text: "The scrolls are refreshed. Reloaded config.", ttl: 3 * time.Second}
			},
			lib,
		)()
	}
}

// pauseAllCmd pauses every known speaker. Individual failures are logged
// and ignored; sleep expiry must quiet as much of the fleet as it can.
func (a *App) pauseAllCmd() tea.Cmd {
	svc := a.svc
	ids := make([]string, 0, len(a.state.Speakers))
	for _, sp := range a.state.Speakers {
		ids = append(ids, sp.ID())
	}
	return func() tea.Msg {
		for _, id := range ids {
			if err := svc.Pause(id); err != nil {
				log.WithError(err).WithField("speaker", id).Debug("Sleep pause failed")
			}
		}
		return nil
	}
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(tickRate, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
