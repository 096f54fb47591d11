package sonod

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestListSpeakers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/speakers" {
			t.Errorf("path = %q, want /speakers", r.URL.Path)
		}
		io.WriteString(w, `{"speakers":[
			{"name":"Kitchen","alias":"kitchen","volume":30,"state":"PLAYING",
			 "group_coordinator":"Kitchen",
			 "track":{"title":"Song","artist":"Band","album":"Record","duration":200,"position":40}},
			{"name":"Bedroom","volume":10,"state":"PAUSED_PLAYBACK","group_coordinator":"Kitchen"}
		]}`)
	}))
	defer srv.Close()

	speakers, err := NewClient(srv.URL).ListSpeakers()
	if err != nil {
		t.Fatalf("ListSpeakers() error = %v", err)
	}
	if len(speakers) != 2 {
		t.Fatalf("got %d speakers, want 2", len(speakers))
	}
	if speakers[0].ID() != "kitchen" || !speakers[0].IsCoordinator() {
		t.Errorf("first speaker = %+v, want coordinator with alias kitchen", speakers[0])
	}
	if speakers[0].Track == nil || speakers[0].Track.Title != "Song" {
		t.Errorf("first speaker track = %+v, want Song", speakers[0].Track)
	}
	if !speakers[1].IsFollower() || speakers[1].Track != nil {
		t.Errorf("second speaker = %+v, want trackless follower", speakers[1])
	}
}

func TestListPlaylistsSortedByAlias(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"playlists":{"jazz":"Jazz Classics","altwave":"Alt Wave"}}`)
	}))
	defer srv.Close()

	playlists, err := NewClient(srv.URL).ListPlaylists()
	if err != nil {
		t.Fatalf("ListPlaylists() error = %v", err)
	}
	want := []Playlist{
		{Alias: "altwave", FavoriteName: "Alt Wave"},
		{Alias: "jazz", FavoriteName: "Jazz Classics"},
	}
	if !reflect.DeepEqual(playlists, want) {
		t.Errorf("ListPlaylists() = %+v, want %+v", playlists, want)
	}
}

func TestListFavorites(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"favorites":[{"title":"Alt Wave"},{"title":"Morning Mix"}]}`)
	}))
	defer srv.Close()

	titles, err := NewClient(srv.URL).ListFavorites()
	if err != nil {
		t.Fatalf("ListFavorites() error = %v", err)
	}
	if !reflect.DeepEqual(titles, []string{"Alt Wave", "Morning Mix"}) {
		t.Errorf("ListFavorites() = %v", titles)
	}
}

func TestPlaylistSortMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"sort":"popularity"}`)
	}))
	defer srv.Close()

	mode, err := NewClient(srv.URL).PlaylistSortMode()
	if err != nil {
		t.Fatalf("PlaylistSortMode() error = %v", err)
	}
	if mode != "popularity" {
		t.Errorf("PlaylistSortMode() = %q, want popularity", mode)
	}
}

func TestPostRequestBodies(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = nil
		json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer srv.Close()
	c := NewClient(srv.URL)

	tests := []struct {
		name string
		call func() error
		path string
		body map[string]interface{}
	}{
		{"play", func() error { return c.Play("kitchen", "altwave") }, "/play",
			map[string]interface{}{"speaker": "kitchen", "playlist": "altwave"}},
		{"pause", func() error { return c.Pause("all") }, "/pause",
			map[string]interface{}{"speaker": "all"}},
		{"volume", func() error { return c.SetVolume("kitchen", 40) }, "/volume",
			map[string]interface{}{"speaker": "kitchen", "volume": float64(40)}},
		{"group", func() error { return c.GroupAll() }, "/group",
			map[string]interface{}{"speakers": []interface{}{"all"}}},
		{"ungroup", func() error { return c.UngroupAll() }, "/ungroup",
			map[string]interface{}{"speaker": "all"}},
		{"reload", func() error { return c.Reload() }, "/reload",
			map[string]interface{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("call error = %v", err)
			}
			if gotPath != tt.path {
				t.Errorf("path = %q, want %q", gotPath, tt.path)
			}
			if !reflect.DeepEqual(gotBody, tt.body) {
				t.Errorf("body = %v, want %v", gotBody, tt.body)
			}
		})
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "speaker not found", http.StatusNotFound)
	}))
	defer srv.Close()
	c := NewClient(srv.URL)

	if _, err := c.ListSpeakers(); err == nil {
		t.Error("ListSpeakers() should fail on 404")
	}
	if err := c.Pause("nope"); err == nil {
		t.Error("Pause() should fail on 404")
	}
}

func TestNewClientDefaultURL(t *testing.T) {
	c := NewClient("")
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
}
