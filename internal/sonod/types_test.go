package sonod

import (
	"reflect"
	"testing"
)

func TestSpeakerID(t *testing.T) {
	tests := []struct {
		name    string
		speaker Speaker
		want    string
	}{
		{"alias wins", Speaker{Name: "Living Room", Alias: "living"}, "living"},
		{"name fallback", Speaker{Name: "Living Room"}, "Living Room"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.speaker.ID(); got != tt.want {
				t.Errorf("ID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpeakerRoles(t *testing.T) {
	tests := []struct {
		name        string
		speaker     Speaker
		coordinator bool
		follower    bool
		solo        bool
	}{
		{"coordinator", Speaker{Name: "Kitchen", GroupCoordinator: "Kitchen"}, true, false, false},
		{"follower", Speaker{Name: "Bedroom", GroupCoordinator: "Kitchen"}, false, true, false},
		{"solo", Speaker{Name: "Office"}, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.speaker.IsCoordinator(); got != tt.coordinator {
				t.Errorf("IsCoordinator() = %v, want %v", got, tt.coordinator)
			}
			if got := tt.speaker.IsFollower(); got != tt.follower {
				t.Errorf("IsFollower() = %v, want %v", got, tt.follower)
			}
			if got := tt.speaker.IsSolo(); got != tt.solo {
				t.Errorf("IsSolo() = %v, want %v", got, tt.solo)
			}
		})
	}
}

func TestMergeFavorites(t *testing.T) {
	playlists := []Playlist{
		{Alias: "altwave", FavoriteName: "Alt Wave"},
		{Alias: "jazz", FavoriteName: "Jazz Classics"},
	}
	favorites := []string{"alt wave", "Morning Mix"}

	got := MergeFavorites(playlists, favorites)

	want := []Playlist{
		{Alias: "altwave", FavoriteName: "Alt Wave"},
		{Alias: "jazz", FavoriteName: "Jazz Classics"},
		{Alias: "Morning Mix", FavoriteName: "Morning Mix"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeFavorites() = %+v, want %+v", got, want)
	}
}

func TestMergeFavoritesEmptyInputs(t *testing.T) {
	if got := MergeFavorites(nil, nil); len(got) != 0 {
		t.Errorf("MergeFavorites(nil, nil) = %+v, want empty", got)
	}
	got := MergeFavorites(nil, []string{"Alt Wave"})
	if len(got) != 1 || got[0].Alias != "Alt Wave" {
		t.Errorf("MergeFavorites(nil, favorites) = %+v, want synthetic playlist", got)
	}
}
