package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/galamiram/sonoctl/internal/command"
	"github.com/galamiram/sonoctl/internal/sonod"
)

// Styles
var (
	accentColor  = lipgloss.Color("39")  // Blue
	playingColor = lipgloss.Color("46")  // Green
	pausedColor  = lipgloss.Color("226") // Yellow
	errorColor   = lipgloss.Color("196") // Red
	mutedColor   = lipgloss.Color("240") // Gray

	accentTextStyle  = lipgloss.NewStyle().Foreground(accentColor)
	playingTextStyle = lipgloss.NewStyle().Foreground(playingColor)
	pausedTextStyle  = lipgloss.NewStyle().Foreground(pausedColor)
	mutedTextStyle   = lipgloss.NewStyle().Foreground(mutedColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accentColor).
				Padding(0, 1)

	groupBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	barStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	ghostStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
)

// View renders the whole dashboard.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	barHeight := 3
	mainHeight := a.height - barHeight
	if a.showLogs {
		mainHeight -= logPanelHeight
	}
	if mainHeight < 6 {
		mainHeight = 6
	}
	leftWidth := a.width * 45 / 100
	rightWidth := a.width - leftWidth
	speakerHeight := mainHeight * 55 / 100
	playlistHeight := mainHeight - speakerHeight

	left := lipgloss.JoinVertical(lipgloss.Left,
		a.renderSpeakerPanel(leftWidth, speakerHeight),
		a.renderPlaylistPanel(leftWidth, playlistHeight),
	)
	right := a.renderNowPlayingPanel(rightWidth, mainHeight)
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	sections := []string{main, a.renderBar()}
	if a.showLogs {
		sections = append(sections, a.renderLogs())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func frame(active bool, width, height int) lipgloss.Style {
	style := panelStyle
	if active {
		style = activePanelStyle
	}
	return style.Width(width - 2).Height(height - 2)
}

// stateGlyph maps a playback state to its one-cell marker.
func stateGlyph(sp sonod.Speaker) string {
	switch sp.State {
	case sonod.StatePlaying:
		return playingTextStyle.Render("▶")
	case sonod.StatePaused:
		return pausedTextStyle.Render("⏸")
	default:
		return mutedTextStyle.Render("·")
	}
}

// renderSpeakerPanel shows the flat fleet list, or the group topology when
// at least one follower exists.
func (a *App) renderSpeakerPanel(width, height int) string {
	s := a.state
	active := s.ActivePanel == PanelSpeakers
	var body string
	if s.IsGrouped() {
		body = a.renderTopology(width - 4)
	} else {
		body = a.renderFlatSpeakers(width - 4)
	}
	content := labelStyle.Render("Speakers") + "\n" + body
	return frame(active, width, height).Render(content)
}

func (a *App) renderFlatSpeakers(width int) string {
	s := a.state
	if len(s.Speakers) == 0 {
		return mutedTextStyle.Render("No speakers found")
	}
	var b strings.Builder
	for i, sp := range s.Speakers {
		cursor := "  "
		if i == s.SpeakerIndex {
			cursor = "► "
		}
		name := runewidth.FillRight(truncate.StringWithTail(sp.ID(), 14, "…"), 14)
		if i == s.SpeakerIndex && s.ActivePanel == PanelSpeakers {
			name = selectedStyle.Render(name)
		}
		tag := "  "
		if sp.IsCoordinator() {
			tag = accentTextStyle.Render(" ◈")
		} else if sp.IsFollower() {
			tag = mutedTextStyle.Render(" ↳")
		}
		vol := fmt.Sprintf("%3d", sp.Volume)
		if sp.Muted {
			vol = "  M"
		}
		fmt.Fprintf(&b, "%s%s%s %s %s\n",
			cursor, name, tag,
			mutedTextStyle.Render(vol),
			stateGlyph(sp))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderTopology nests each group's members inside a bordered block sized
// to the longest member name, with solo speakers listed below all groups.
func (a *App) renderTopology(width int) string {
	s := a.state
	selected, hasSelection := s.SelectedSpeaker()
	var blocks []string

	for _, coord := range s.Coordinators() {
		members := s.GroupMembers(coord.Name)
		boxWidth := runewidth.StringWidth(coord.Name)
		for _, m := range members {
			if w := runewidth.StringWidth(m.ID()); w > boxWidth {
				boxWidth = w
			}
		}
		if boxWidth > width-8 {
			boxWidth = width - 8
		}
		var lines []string
		lines = append(lines, labelStyle.Render(truncate.StringWithTail(coord.Name, uint(boxWidth), "…")))
		for _, m := range members {
			name := runewidth.FillRight(truncate.StringWithTail(m.ID(), uint(boxWidth), "…"), boxWidth)
			if hasSelection && m.Name == selected.Name {
				name = selectedStyle.Render(name)
			}
			lines = append(lines, fmt.Sprintf("%s %s", stateGlyph(m), name))
		}
		blocks = append(blocks, groupBoxStyle.Render(strings.Join(lines, "\n")))
	}

	solos := s.SoloSpeakers()
	if len(solos) > 0 {
		var lines []string
		for _, sp := range solos {
			name := sp.ID()
			if hasSelection && sp.Name == selected.Name {
				name = selectedStyle.Render(name)
			}
			lines = append(lines, fmt.Sprintf("%s %s", stateGlyph(sp), name))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (a *App) renderPlaylistPanel(width, height int) string {
	s := a.state
	active := s.ActivePanel == PanelPlaylists
	var b strings.Builder
	b.WriteString(labelStyle.Render("Playlists") + "\n")
	if len(s.Playlists) == 0 {
		b.WriteString(mutedTextStyle.Render("No playlists"))
	}
	for i, pl := range s.Playlists {
		cursor := "  "
		if i == s.PlaylistIndex {
			cursor = "► "
		}
		alias := runewidth.FillRight(truncate.StringWithTail(pl.Alias, 10, "…"), 10)
		if i == s.PlaylistIndex && active {
			alias = selectedStyle.Render(alias)
		}
		name := mutedTextStyle.Render(truncate.StringWithTail(pl.FavoriteName, 24, "…"))
		fmt.Fprintf(&b, "%s%s %s\n", cursor, alias, name)
	}
	return frame(active, width, height).Render(strings.TrimRight(b.String(), "\n"))
}

// renderNowPlayingPanel projects the playing entities into the panel: an
// idle placeholder, one full-detail block, or stacked compact bands when
// several groups play at once.
func (a *App) renderNowPlayingPanel(width, height int) string {
	s := a.state
	active := s.ActivePanel == PanelNowPlaying
	inner := height - 3 // borders and title line
	innerWidth := width - 4

	entities := s.PlayingEntities()
	var body string
	switch {
	case len(entities) == 0:
		body = mutedTextStyle.Render("Nothing playing")
	case len(entities) == 1:
		body = a.renderTrackBlock(entities[0], innerWidth, inner, true)
	default:
		band := inner / len(entities)
		if band < 3 {
			// Not even one row per entity: degrade to the first one.
			body = a.renderTrackBlock(entities[0], innerWidth, inner, true)
		} else {
			var bands []string
			for i, sp := range entities {
				h := band
				if i == len(entities)-1 {
					h = inner - band*(len(entities)-1)
				}
				bands = append(bands, a.renderTrackBlock(sp, innerWidth, h, false))
			}
			body = strings.Join(bands, "\n")
		}
	}
	content := labelStyle.Render("Now Playing") + "\n" + body
	return frame(active, width, height).Render(content)
}

// renderTrackBlock renders one speaker's now-playing details. Full blocks
// get title/artist/album plus both gauges; compact bands shrink to one
// header line and drop the volume gauge when the band is short.
func (a *App) renderTrackBlock(sp sonod.Speaker, width, height int, full bool) string {
	if sp.Track == nil {
		return fmt.Sprintf("%s %s\n%s", stateGlyph(sp), sp.ID(), mutedTextStyle.Render("  idle"))
	}
	t := sp.Track

	ratio := 0.0
	if t.Duration > 0 {
		ratio = float64(t.Position) / float64(t.Duration)
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
	}
	bar := a.trackBar
	bar.Width = width - 2
	volBar := a.volumeBar
	volBar.Width = width - 2

	timeLine := mutedTextStyle.Render(fmt.Sprintf("%s / %s", formatTime(t.Position), formatTime(t.Duration)))

	if full {
		lines := []string{
			playingTextStyle.Render("♫ ") + lipgloss.NewStyle().Bold(true).Render(truncate.StringWithTail(t.Title, uint(width-2), "…")),
			"  " + accentTextStyle.Render(truncate.StringWithTail(t.Artist, uint(width-2), "…")),
			"  " + mutedTextStyle.Render(truncate.StringWithTail(t.Album, uint(width-2), "…")),
			"",
			bar.ViewAs(ratio),
			timeLine,
			"",
			volumeLine(sp, volBar),
		}
		return strings.Join(lines, "\n")
	}

	header := fmt.Sprintf("%s %s: %s", stateGlyph(sp),
		labelStyle.Render(sp.ID()),
		truncate.StringWithTail(t.Title+" / "+t.Artist, uint(width-runewidth.StringWidth(sp.ID())-6), "…"))
	lines := []string{header, bar.ViewAs(ratio)}
	if height >= 4 {
		lines = append(lines, fmt.Sprintf("%s  Vol %3d", timeLine, sp.Volume))
	} else {
		lines = append(lines, timeLine)
	}
	return strings.Join(lines[:min(len(lines), height)], "\n")
}

// renderBar draws the bottom region: command prompt over volume prompt
// over status text over the keybinding legend.
func (a *App) renderBar() string {
	s := a.state
	width := a.width - 4
	var content string
	switch s.Mode {
	case ModeCommandEntry:
		ghost := ""
		if sug, ok := command.Autocomplete(s.CommandBuf, a.playlistNames()); ok {
			if sug.Kind == command.SuggestReplace {
				ghost = ghostStyle.Render(" → " + sug.Text)
			} else {
				ghost = ghostStyle.Render(sug.Text)
			}
		}
		content = accentTextStyle.Render(":") + s.CommandBuf + ghost + accentTextStyle.Render("▌")
	case ModeVolumeEntry:
		content = accentTextStyle.Render("Vol: ") +
			fmt.Sprintf("[%s▌]", s.VolumeBuf) +
			mutedTextStyle.Render("   Enter confirm   Esc cancel")
	default:
		if status := s.ActiveStatus(); status != "" {
			content = pausedTextStyle.Render(status)
		} else {
			content = a.help.View(a.keys)
		}
	}
	return barStyle.Width(width).Render(content)
}

func volumeLine(sp sonod.Speaker, bar progress.Model) string {
	if sp.Muted {
		return mutedTextStyle.Render("Vol muted")
	}
	return fmt.Sprintf("Vol %3d %s", sp.Volume, bar.ViewAs(float64(sp.Volume)/100))
}

func formatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

