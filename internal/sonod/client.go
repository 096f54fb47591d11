package sonod

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL is where a locally running sonosd listens.
const DefaultBaseURL = "http://127.0.0.1:9271"

const requestTimeout = 5 * time.Second

// Service is the daemon capability the TUI and the one-shot commands
// consume. Every operation is fallible; callers degrade to status messages
// rather than crashing.
type Service interface {
	ListSpeakers() ([]Speaker, error)
	ListPlaylists() ([]Playlist, error)
	ListFavorites() ([]string, error)
	PlaylistSortMode() (string, error)
	Play(speaker, playlist string) error
	Pause(speaker string) error
	Resume(speaker string) error
	Stop(speaker string) error
	SetVolume(speaker string, volume int) error
	Next(speaker string) error
	Previous(speaker string) error
	GroupAll() error
	UngroupAll() error
	Reload() error
}

// Client talks JSON over HTTP to a sonosd instance.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ Service = (*Client)(nil)

// NewClient creates a client for the daemon at baseURL. An empty baseURL
// falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

type speakerRequest struct {
	Speaker string `json:"speaker"`
}

type playRequest struct {
	Speaker  string `json:"speaker"`
	Playlist string `json:"playlist"`
}

type volumeRequest struct {
	Speaker string `json:"speaker"`
	Volume  int    `json:"volume"`
}

type groupRequest struct {
	Speakers []string `json:"speakers"`
}

// ListSpeakers fetches the current fleet snapshot. Speakers the daemon
// reports as unreachable come back as zero-valued entries carrying only a
// name, which the dashboard renders as idle.
func (c *Client) ListSpeakers() ([]Speaker, error) {
	var payload struct {
		Speakers []Speaker `json:"speakers"`
	}
	if err := c.get("/speakers", &payload); err != nil {
		return nil, err
	}
	return payload.Speakers, nil
}

// ListPlaylists fetches the alias -> favorite-name map and returns it as a
// slice sorted by alias so snapshots are deterministic across refreshes.
func (c *Client) ListPlaylists() ([]Playlist, error) {
	var payload struct {
		Playlists map[string]string `json:"playlists"`
	}
	if err := c.get("/playlists", &payload); err != nil {
		return nil, err
	}
	playlists := make([]Playlist, 0, len(payload.Playlists))
	for alias, name := range payload.Playlists {
		playlists = append(playlists, Playlist{Alias: alias, FavoriteName: name})
	}
	sort.Slice(playlists, func(i, j int) bool { return playlists[i].Alias < playlists[j].Alias })
	return playlists, nil
}

// ListFavorites fetches the titles of the Sonos favorites known to the
// daemon.
func (c *Client) ListFavorites() ([]string, error) {
	var payload struct {
		Favorites []struct {
			Title string `json:"title"`
		} `json:"favorites"`
	}
	if err := c.get("/favorites", &payload); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(payload.Favorites))
	for _, f := range payload.Favorites {
		titles = append(titles, f.Title)
	}
	return titles, nil
}

// PlaylistSortMode returns the daemon's configured playlist ordering,
// e.g. "popularity" or "alias".
func (c *Client) PlaylistSortMode() (string, error) {
	var payload struct {
		Sort string `json:"sort"`
	}
	if err := c.get("/sort", &payload); err != nil {
		return "", err
	}
	return payload.Sort, nil
}

// Play starts the given playlist on a speaker (or "all").
func (c *Client) Play(speaker, playlist string) error {
	return c.post("/play", playRequest{Speaker: speaker, Playlist: playlist})
}

// Pause pauses playback on a speaker (or "all").
func (c *Client) Pause(speaker string) error {
	return c.post("/pause", speakerRequest{Speaker: speaker})
}

// Resume resumes playback on a speaker (or "all").
func (c *Client) Resume(speaker string) error {
	return c.post("/resume", speakerRequest{Speaker: speaker})
}

// Stop stops playback on a speaker (or "all").
func (c *Client) Stop(speaker string) error {
	return c.post("/stop", speakerRequest{Speaker: speaker})
}

// SetVolume sets an absolute volume. The daemon clamps to 0-100 on its
// side as well.
func (c *Client) SetVolume(speaker string, volume int) error {
	return c.post("/volume", volumeRequest{Speaker: speaker, Volume: volume})
}

// Next skips to the next track on the speaker's group coordinator.
func (c *Client) Next(speaker string) error {
	return c.post("/next", speakerRequest{Speaker: speaker})
}

// Previous skips back a track on the speaker's group coordinator.
func (c *Client) Previous(speaker string) error {
	return c.post("/previous", speakerRequest{Speaker: speaker})
}

// GroupAll joins every speaker into a single group.
func (c *Client) GroupAll() error {
	return c.post("/group", groupRequest{Speakers: []string{"all"}})
}

// UngroupAll dissolves all groups.
func (c *Client) UngroupAll() error {
	return c.post("/ungroup", speakerRequest{Speaker: "all"})
}

// Reload asks the daemon to re-read its configuration file.
func (c *Client) Reload() error {
	return c.post("/reload", struct{}{})
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("sonod GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sonod GET %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sonod GET %s: decode: %w", path, err)
	}
	return nil
}

func (c *Client) post(path string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("sonod POST %s: encode: %w", path, err)
	}
	log.WithFields(log.Fields{"path": path, "body": string(data)}).Debug("Sending daemon request")
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("sonod POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sonod POST %s: unexpected status %s", path, resp.Status)
	}
	return nil
}
