package patch

import (
	"fmt"
	"strings"
)

// Mode is the closed set of patch strategies.
type Mode string

const (
	// ModeAdd appends tracks to the vanilla pools without touching
	// existing entries.
	ModeAdd Mode = "add"
	// ModeReplace swaps individual vanilla slots chosen by index.
	ModeReplace Mode = "replace"
	// ModeRemove clears the vanilla pools and repopulates them from the
	// selection alone.
	ModeRemove Mode = "remove"
	// ModeBoth replaces chosen slots and then appends additional tracks.
	ModeBoth Mode = "both"
)

var allModes = []Mode{ModeAdd, ModeReplace, ModeRemove, ModeBoth}

// ParseMode validates a user-supplied mode string.
func ParseMode(value string) (Mode, error) {
	candidate := Mode(strings.ToLower(strings.TrimSpace(value)))
	for _, m := range allModes {
		if candidate == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("patch mode %q: want one of add, replace, remove, both", value)
}

// Modes returns all valid modes, for help text and prompts.
func Modes() []Mode {
	out := make([]Mode, len(allModes))
	copy(out, allModes)
	return out
}

func (m Mode) String() string { return string(m) }
