// Package history keeps the append-only record of playlist plays used for
// popularity ranking of the playlist panel.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"

	"github.com/galamiram/sonoctl/internal/sonod"
)

// Entry records one play of a playlist.
type Entry struct {
	Playlist string `json:"playlist"`
	PlayedAt int64  `json:"played_at"`
}

const (
	// Retention is how long entries survive in the persisted file.
	Retention = 90 * 24 * time.Hour
	// PopularityWindow is the window used for play counts; counts are a
	// derived view and never persisted.
	PopularityWindow = 7 * 24 * time.Hour
)

// Overridable for testing.
var (
	historyPathFunc = defaultHistoryPath
	nowFunc         = time.Now
)

func defaultHistoryPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %v", err)
	}
	dir := filepath.Join(home, ".config", "sonoctl")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create history directory: %v", err)
	}
	return filepath.Join(dir, "history.json"), nil
}

// Path returns the history file location.
func Path() (string, error) {
	return historyPathFunc()
}

// SetPathFunc overrides the history file location (for testing).
func SetPathFunc(fn func() (string, error)) {
	historyPathFunc = fn
}

// SetNowFunc overrides the clock (for testing).
func SetNowFunc(fn func() time.Time) {
	nowFunc = fn
}

// Load reads all persisted entries. Any read or parse failure degrades to
// an empty history rather than an error: ranking then falls back to alias
// order.
func Load() []Entry {
	path, err := historyPathFunc()
	if err != nil {
		log.WithError(err).Debug("Failed to resolve history path")
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("path", path).Debug("Failed to read history file")
		}
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.WithError(err).WithField("path", path).Debug("Failed to parse history file")
		return nil
	}
	return entries
}

// RecordPlay appends a play of the given playlist alias, prunes everything
// older than the retention window and persists the result. Failures are
// logged and swallowed: losing a history write must never disturb playback
// control.
func RecordPlay(alias string) {
	now := nowFunc()
	entries := append(Load(), Entry{Playlist: alias, PlayedAt: now.Unix()})
	cutoff := now.Add(-Retention).Unix()
	kept := entries[:0]
	for _, e := range entries {
		if e.PlayedAt > cutoff {
			kept = append(kept, e)
		}
	}
	data, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		log.WithError(err).Debug("Failed to encode history")
		return
	}
	path, err := historyPathFunc()
	if err != nil {
		log.WithError(err).Debug("Failed to resolve history path")
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.WithError(err).WithField("path", path).Debug("Failed to write history file")
	}
}

// PlayCounts tallies plays per playlist alias within the popularity window
// ending at now.
func PlayCounts(entries []Entry, now time.Time) map[string]int {
	cutoff := now.Add(-PopularityWindow).Unix()
	counts := make(map[string]int)
	for _, e := range entries {
		if e.PlayedAt > cutoff {
			counts[e.Playlist]++
		}
	}
	return counts
}

// PopularitySort orders playlists by descending 7-day play count, ties
// broken by ascending alias. The sort is stable.
func PopularitySort(playlists []sonod.Playlist, entries []Entry, now time.Time) {
	counts := PlayCounts(entries, now)
	sort.SliceStable(playlists, func(i, j int) bool {
		ci, cj := counts[playlists[i].Alias], counts[playlists[j].Alias]
		if ci != cj {
			return ci > cj
		}
		return playlists[i].Alias < playlists[j].Alias
	})
}
