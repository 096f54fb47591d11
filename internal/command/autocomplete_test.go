package command

import "testing"

func TestAutocompleteVerbs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"partial verb", "sl", "eep", true},
		{"single letter", "u", "ngroup", true},
		{"group completes with argument", "gr", "oup all", true},
		{"exact verb yields nothing", "reload", "", false},
		{"no match", "xy", "", false},
		{"empty input", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Autocomplete(tt.input, nil)
			if ok != tt.ok {
				t.Fatalf("Autocomplete(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if s.Kind != SuggestSuffix || s.Text != tt.want {
				t.Errorf("Autocomplete(%q) = %+v, want suffix %q", tt.input, s, tt.want)
			}
		})
	}
}

func TestAutocompletePlaylists(t *testing.T) {
	names := []string{"Alt Wave", "Jazz Classics"}

	tests := []struct {
		name  string
		input string
		kind  SuggestionKind
		text  string
		ok    bool
	}{
		{"prefix completes as suffix", "play alt", SuggestSuffix, " Wave", true},
		{"prefix is case-insensitive", "play ALT", SuggestSuffix, " Wave", true},
		{"p alias also completes", "p jazz", SuggestSuffix, " Classics", true},
		{"substring falls back to replacement", "play wave", SuggestReplace, "Alt Wave", true},
		{"no match", "play xyz", SuggestSuffix, "", false},
		{"empty query", "play ", SuggestSuffix, "", false},
		{"non-play verb gets no playlist matching", "vol alt", SuggestSuffix, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Autocomplete(tt.input, names)
			if ok != tt.ok {
				t.Fatalf("Autocomplete(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if s.Kind != tt.kind || s.Text != tt.text {
				t.Errorf("Autocomplete(%q) = %+v, want kind=%v text=%q", tt.input, s, tt.kind, tt.text)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		input string
		s     Suggestion
		want  string
	}{
		{"suffix appends", "play alt", Suggestion{SuggestSuffix, " Wave"}, "play alt Wave"},
		{"verb suffix appends", "sl", Suggestion{SuggestSuffix, "eep"}, "sleep"},
		{"replace swaps the query", "play wave", Suggestion{SuggestReplace, "Alt Wave"}, "play Alt Wave"},
		{"replace without a space is a no-op", "play", Suggestion{SuggestReplace, "Alt Wave"}, "play"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(tt.input, tt.s); got != tt.want {
				t.Errorf("Apply(%q, %+v) = %q, want %q", tt.input, tt.s, got, tt.want)
			}
		})
	}
}
