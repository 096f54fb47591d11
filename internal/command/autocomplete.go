package command

import "strings"

// SuggestionKind distinguishes the two ways a suggestion applies to the
// input buffer.
type SuggestionKind int

const (
	// SuggestSuffix means Text is appended to what was already typed.
	SuggestSuffix SuggestionKind = iota
	// SuggestReplace means Text is the full playlist name and replaces the
	// query segment after the verb.
	SuggestReplace
)

// Suggestion is one autocomplete result.
type Suggestion struct {
	Kind SuggestionKind
	Text string
}

// verbs is the fixed completion vocabulary; first prefix match wins.
var verbs = []string{"play", "vol", "group all", "ungroup", "next", "prev", "sleep", "reload"}

// Autocomplete computes ghost text for a partially typed command. Before
// the first space it completes against the verb vocabulary; after it, for
// play commands, it matches the query against playlist display names. The
// second return value is false when there is nothing to suggest.
func Autocomplete(input string, playlistNames []string) (Suggestion, bool) {
	if input == "" {
		return Suggestion{}, false
	}
	i := strings.IndexByte(input, ' ')
	if i < 0 {
		for _, v := range verbs {
			if strings.HasPrefix(v, input) && v != input {
				return Suggestion{Kind: SuggestSuffix, Text: v[len(input):]}, true
			}
		}
		return Suggestion{}, false
	}

	verb, query := input[:i], input[i+1:]
	if (verb != "play" && verb != "p") || query == "" {
		return Suggestion{}, false
	}
	q := strings.ToLower(query)
	for _, name := range playlistNames {
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, q) && lower != q {
			// Index by character count, not bytes: the query and the name
			// may disagree in case, and the name may be multi-byte.
			runes := []rune(name)
			return Suggestion{Kind: SuggestSuffix, Text: string(runes[len([]rune(query)):])}, true
		}
	}
	for _, name := range playlistNames {
		if strings.Contains(strings.ToLower(name), q) {
			return Suggestion{Kind: SuggestReplace, Text: name}, true
		}
	}
	return Suggestion{}, false
}

// Apply merges a suggestion into the current input buffer and returns the
// completed line. Replacement suggestions swap the query segment after the
// verb for the suggested name.
func Apply(input string, s Suggestion) string {
	switch s.Kind {
	case SuggestReplace:
		verb, _, ok := strings.Cut(input, " ")
		if !ok {
			return input
		}
		return verb + " " + s.Text
	default:
		return input + s.Text
	}
}
