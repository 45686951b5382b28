package procconfig

import (
	"strconv"
	"strings"
)

// ParseTimeString converts a duration expression to seconds. Accepted
// forms: plain seconds ("90", "12.5") and hour/minute/second compounds
// ("1hr30m15s", "25m", "0hr0m0.5s"). Malformed input yields 0, matching
// the forgiving behavior the envelope fields were designed around.
func ParseTimeString(value string) float64 {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0
	}

	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return seconds
	}

	var hours, minutes, seconds float64

	if idx := strings.Index(value, "hr"); idx >= 0 {
		hours = parseComponent(value[:idx])
		value = value[idx+2:]
	}
	if idx := strings.Index(value, "m"); idx >= 0 {
		minutes = parseComponent(value[:idx])
		value = value[idx+1:]
	}
	if idx := strings.Index(value, "s"); idx >= 0 {
		seconds = parseComponent(value[:idx])
	}

	return hours*3600 + minutes*60 + seconds
}

func parseComponent(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
