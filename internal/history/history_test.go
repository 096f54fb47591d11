package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/galamiram/sonoctl/internal/sonod"
)

func useTempHistory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	SetPathFunc(func() (string, error) { return path, nil })
	t.Cleanup(func() { SetPathFunc(defaultHistoryPath) })
	return path
}

func useFixedNow(t *testing.T, now time.Time) {
	t.Helper()
	SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { SetNowFunc(time.Now) })
}

func TestLoadMissingFile(t *testing.T) {
	useTempHistory(t)
	if entries := Load(); entries != nil {
		t.Errorf("Load() = %v, want nil for missing file", entries)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := useTempHistory(t)
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if entries := Load(); entries != nil {
		t.Errorf("Load() = %v, want nil for corrupt file", entries)
	}
}

func TestRecordPlayPersists(t *testing.T) {
	useTempHistory(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	useFixedNow(t, now)

	RecordPlay("altwave")
	RecordPlay("jazz")

	entries := Load()
	if len(entries) != 2 {
		t.Fatalf("Load() returned %d entries, want 2", len(entries))
	}
	if entries[0].Playlist != "altwave" || entries[1].Playlist != "jazz" {
		t.Errorf("entries = %+v, want altwave then jazz", entries)
	}
	if entries[0].PlayedAt != now.Unix() {
		t.Errorf("PlayedAt = %d, want %d", entries[0].PlayedAt, now.Unix())
	}
}

func TestRecordPlayPrunesOldEntries(t *testing.T) {
	useTempHistory(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	useFixedNow(t, now.Add(-Retention-24*time.Hour))
	RecordPlay("ancient")

	useFixedNow(t, now)
	RecordPlay("fresh")

	entries := Load()
	if len(entries) != 1 || entries[0].Playlist != "fresh" {
		t.Errorf("entries = %+v, want only the fresh entry", entries)
	}
}

func TestPlayCountsWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Playlist: "altwave", PlayedAt: now.Add(-time.Hour).Unix()},
		{Playlist: "altwave", PlayedAt: now.Add(-3 * 24 * time.Hour).Unix()},
		{Playlist: "altwave", PlayedAt: now.Add(-10 * 24 * time.Hour).Unix()},
		{Playlist: "jazz", PlayedAt: now.Add(-6 * 24 * time.Hour).Unix()},
	}

	counts := PlayCounts(entries, now)
	if counts["altwave"] != 2 {
		t.Errorf("counts[altwave] = %d, want 2 (the 10-day-old play is outside the window)", counts["altwave"])
	}
	if counts["jazz"] != 1 {
		t.Errorf("counts[jazz] = %d, want 1", counts["jazz"])
	}
}

func TestPopularitySort(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	playlists := []sonod.Playlist{
		{Alias: "classical", FavoriteName: "Classical Focus"},
		{Alias: "jazz", FavoriteName: "Jazz Classics"},
		{Alias: "altwave", FavoriteName: "Alt Wave"},
		{Alias: "ambient", FavoriteName: "Ambient Hours"},
	}
	var entries []Entry
	for i := 0; i < 5; i++ {
		entries = append(entries, Entry{Playlist: "altwave", PlayedAt: now.Add(-time.Hour).Unix()})
	}
	for i := 0; i < 2; i++ {
		entries = append(entries, Entry{Playlist: "jazz", PlayedAt: now.Add(-time.Hour).Unix()})
	}

	PopularitySort(playlists, entries, now)

	want := []string{"altwave", "jazz", "ambient", "classical"}
	for i, alias := range want {
		if playlists[i].Alias != alias {
			t.Fatalf("position %d = %q, want %q (got order %+v)", i, playlists[i].Alias, alias, playlists)
		}
	}
}
