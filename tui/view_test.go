package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/galamiram/sonoctl/internal/sonod"
)

func TestViewBeforeFirstResize(t *testing.T) {
	app, _ := newTestApp(t)
	if got := app.View(); got != "Loading..." {
		t.Errorf("View() = %q before a window size arrives", got)
	}
}

func TestViewShowsAllPanels(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	out := app.View()
	for _, want := range []string{"Speakers", "Playlists", "Now Playing", "altwave", "jazz"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestSpeakerPanelFlatList(t *testing.T) {
	app, _ := newTestApp(t)
	app.state.ReplaceSpeakers([]sonod.Speaker{
		{Name: "Office", Volume: 20, State: sonod.StatePlaying},
		{Name: "Den", Volume: 35},
	})

	out := app.renderSpeakerPanel(40, 12)
	for _, want := range []string{"Office", "Den", "► ", " 20", " 35"} {
		if !strings.Contains(out, want) {
			t.Errorf("flat speaker panel missing %q:\n%s", want, out)
		}
	}
}

func TestSpeakerPanelTopology(t *testing.T) {
	app, _ := newTestApp(t)

	out := app.renderSpeakerPanel(44, 16)
	for _, want := range []string{"Kitchen", "kitchen", "Office"} {
		if !strings.Contains(out, want) {
			t.Errorf("topology missing %q:\n%s", want, out)
		}
	}
	// Group members sit inside a square-cornered block nested in the panel.
	if !strings.Contains(out, "┌") {
		t.Errorf("topology should draw group borders:\n%s", out)
	}
}

func TestMutedSpeakerRendering(t *testing.T) {
	app, _ := newTestApp(t)
	app.state.ReplaceSpeakers([]sonod.Speaker{
		{Name: "Office", Volume: 40, Muted: true, State: sonod.StatePlaying,
			Track: &sonod.Track{Title: "Song B", Duration: 100, Position: 10}},
	})

	if out := app.renderSpeakerPanel(40, 10); !strings.Contains(out, "  M") {
		t.Errorf("muted speaker should show the mute marker:\n%s", out)
	}
	if out := app.renderNowPlayingPanel(60, 24); !strings.Contains(out, "Vol muted") {
		t.Errorf("muted speaker block should replace the volume gauge:\n%s", out)
	}
}

func TestSpeakerPanelEmptyFleet(t *testing.T) {
	app, _ := newTestApp(t)
	app.state.ReplaceSpeakers(nil)
	if out := app.renderSpeakerPanel(40, 10); !strings.Contains(out, "No speakers found") {
		t.Errorf("empty fleet panel = %q", out)
	}
}

func TestNowPlayingIdle(t *testing.T) {
	app, _ := newTestApp(t)
	app.state.ReplaceSpeakers(nil)
	if out := app.renderNowPlayingPanel(60, 20); !strings.Contains(out, "Nothing playing") {
		t.Errorf("idle panel = %q", out)
	}
}

func TestNowPlayingSingleEntity(t *testing.T) {
	app, _ := newTestApp(t)
	app.state.ReplaceSpeakers([]sonod.Speaker{
		{Name: "Office", Volume: 40, State: sonod.StatePlaying,
			Track: &sonod.Track{Title: "Song B", Artist: "Band", Album: "Record", Duration: 100, Position: 10}},
	})

	out := app.renderNowPlayingPanel(60, 24)
	for _, want := range []string{"Song B", "Band", "Record", "0:10 / 1:40", "Vol  40"} {
		if !strings.Contains(out, want) {
			t.Errorf("single entity panel missing %q:\n%s", want, out)
		}
	}
}

func TestNowPlayingStackedBands(t *testing.T) {
	app, _ := newTestApp(t) // fleet() yields two playing entities
	out := app.renderNowPlayingPanel(60, 24)
	for _, want := range []string{"kitchen", "Song A", "Office", "Song B"} {
		if !strings.Contains(out, want) {
			t.Errorf("stacked panel missing %q:\n%s", want, out)
		}
	}
}

func TestNowPlayingTinyPanelDegradesToFirstEntity(t *testing.T) {
	app, _ := newTestApp(t)
	out := app.renderNowPlayingPanel(60, 8) // two entities, under 3 rows each
	if !strings.Contains(out, "Song A") {
		t.Errorf("degraded panel should show the first entity:\n%s", out)
	}
	if strings.Contains(out, "Song B") {
		t.Errorf("degraded panel should drop later entities:\n%s", out)
	}
}

func TestCommandPromptGhostSuffix(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 80
	app.state.EnterCommandMode()
	app.state.CommandBuf = "sl"

	out := app.renderBar()
	if !strings.Contains(out, "sl") || !strings.Contains(out, "eep") {
		t.Errorf("command bar missing ghost suffix:\n%s", out)
	}
}

func TestCommandPromptGhostReplacement(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 80
	app.state.EnterCommandMode()
	app.state.CommandBuf = "play wave"

	out := app.renderBar()
	if !strings.Contains(out, "→ Alt Wave") {
		t.Errorf("command bar missing replacement ghost:\n%s", out)
	}
}

func TestVolumePrompt(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 80
	app.state.EnterVolumeMode()
	app.state.VolumeBuf = "42"

	out := app.renderBar()
	if !strings.Contains(out, "[42▌]") {
		t.Errorf("volume bar = %q", out)
	}
}

func TestBarShowsStatusOverHelp(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 80

	out := app.renderBar()
	if !strings.Contains(out, "tab") {
		t.Errorf("quiet bar should show keybinding help:\n%s", out)
	}

	app.state.SetStatus("The fellowship is assembled.", 3*time.Second)
	out = app.renderBar()
	if !strings.Contains(out, "The fellowship is assembled.") {
		t.Errorf("bar should show the live status:\n%s", out)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{65, "1:05"},
		{600, "10:00"},
		{-5, "0:00"},
	}
	for _, tt := range tests {
		if got := formatTime(tt.seconds); got != tt.want {
			t.Errorf("formatTime(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
