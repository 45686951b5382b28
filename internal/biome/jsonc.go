package biome

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// biomeFile mirrors the slice of a .biome asset this tool reads.
type biomeFile struct {
	Name       string `json:"name"`
	MusicTrack struct {
		Day struct {
			Tracks []string `json:"tracks"`
		} `json:"day"`
		Night struct {
			Tracks []string `json:"tracks"`
		} `json:"night"`
	} `json:"musicTrack"`
}

// ReadBiomeFile parses a Starbound .biome asset and returns its name and
// music pools in file order. Starbound's JSON dialect allows // comments,
// which are stripped before decoding.
func ReadBiomeFile(path string) (string, Tracks, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", Tracks{}, fmt.Errorf("read biome file: %w", err)
	}

	var parsed biomeFile
	if err := json.Unmarshal([]byte(StripComments(string(raw))), &parsed); err != nil {
		return "", Tracks{}, fmt.Errorf("parse biome file %s: %w", path, err)
	}

	return parsed.Name, Tracks{
		Day:   parsed.MusicTrack.Day.Tracks,
		Night: parsed.MusicTrack.Night.Tracks,
	}, nil
}

// StripComments removes // line comments from Starbound-dialect JSON while
// leaving string contents untouched.
func StripComments(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		var b strings.Builder
		inString := false
		escaped := false
		for i := 0; i < len(line); i++ {
			ch := line[i]
			switch {
			case escaped:
				escaped = false
				b.WriteByte(ch)
			case ch == '\\' && inString:
				escaped = true
				b.WriteByte(ch)
			case ch == '"':
				inString = !inString
				b.WriteByte(ch)
			case ch == '/' && !inString && i+1 < len(line) && line[i+1] == '/':
				i = len(line)
			default:
				b.WriteByte(ch)
			}
		}
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}
