// Package command implements the typed command language of the dashboard:
// parsing of ":"-prefixed input and context-sensitive autocompletion.
package command

import (
	"strconv"
	"strings"
)

// Kind identifies the parsed command.
type Kind int

const (
	KindPlay Kind = iota
	KindVolume
	KindGroupAll
	KindUngroup
	KindNext
	KindPrev
	KindSleep
	KindSleepCancel
	KindReload
	KindUnknown
)

// Target says which speakers a volume command addresses.
type Target int

const (
	// TargetSelf addresses the currently selected speaker.
	TargetSelf Target = iota
	// TargetAll addresses every speaker in the fleet.
	TargetAll
	// TargetNamed addresses one speaker by id.
	TargetNamed
)

// Command is the parsed form of one line of typed input. Kind selects
// which of the remaining fields are meaningful.
type Command struct {
	Kind       Kind
	Query      string // KindPlay: free-text playlist query, may be empty
	Target     Target // KindVolume
	TargetName string // KindVolume with TargetNamed
	Volume     int    // KindVolume: 0-255 as typed, clamping is the caller's job
	Minutes    int    // KindSleep
	Raw        string // KindUnknown: the original input
}

// Parse turns one line of input into a Command. The second return value is
// false when the input is empty or malformed in a way that should be
// treated as "no command at all" (e.g. "vol" without a value).
func Parse(input string) (Command, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{}, false
	}
	verb, rest := input, ""
	if i := strings.IndexByte(input, ' '); i >= 0 {
		verb, rest = input[:i], strings.TrimSpace(input[i+1:])
	}

	switch verb {
	case "play", "p":
		// Empty queries are accepted; matching is the caller's concern.
		return Command{Kind: KindPlay, Query: rest}, true
	case "vol", "volume":
		return parseVolume(rest)
	case "group":
		if rest == "all" {
			return Command{Kind: KindGroupAll}, true
		}
		return Command{Kind: KindUnknown, Raw: input}, true
	case "ungroup":
		return Command{Kind: KindUngroup}, true
	case "next", "n":
		return Command{Kind: KindNext}, true
	case "prev", "previous":
		return Command{Kind: KindPrev}, true
	case "sleep":
		if rest == "0" || rest == "cancel" {
			return Command{Kind: KindSleepCancel}, true
		}
		mins, err := strconv.Atoi(rest)
		if err != nil || mins < 0 {
			return Command{}, false
		}
		return Command{Kind: KindSleep, Minutes: mins}, true
	case "reload":
		return Command{Kind: KindReload}, true
	default:
		return Command{Kind: KindUnknown, Raw: input}, true
	}
}

// parseVolume handles "vol [target] VALUE". The value is the final token
// and must parse as an unsigned 8-bit integer; anything before it names the
// target ("all" or a speaker id).
func parseVolume(rest string) (Command, bool) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Command{}, false
	}
	value, err := strconv.ParseUint(fields[len(fields)-1], 10, 8)
	if err != nil {
		return Command{}, false
	}
	cmd := Command{Kind: KindVolume, Volume: int(value)}
	if len(fields) > 1 {
		target := strings.Join(fields[:len(fields)-1], " ")
		if strings.EqualFold(target, "all") {
			cmd.Target = TargetAll
		} else {
			cmd.Target = TargetNamed
			cmd.TargetName = target
		}
	}
	return cmd, true
}
