package procconfig

import (
	"fmt"
	"strings"
)

// FilterChain derives the ffmpeg -af expression for an effective
// configuration. Stages follow mastering order: trim, silence removal,
// scrubber band-passes, pre-limiter, compression, soft clip, EQ, de-esser,
// normalization, channel downmix, fades. The pre-limiter runs ahead of the
// gain stages so EQ and compression boosts cannot push peaks into
// clipping. An all-disabled configuration yields an empty chain.
func FilterChain(cfg Config) string {
	if !anyStageEnabled(cfg) {
		return ""
	}

	var filters []string

	if cfg.Trim {
		start := ParseTimeString(cfg.TrimStart)
		end := ParseTimeString(cfg.TrimEnd)
		if end > start {
			filters = append(filters, fmt.Sprintf("atrim=start=%s:end=%s", formatSeconds(start), formatSeconds(end)))
		}
	}

	if cfg.SilenceTrim {
		var params []string
		if cfg.SilenceTrimStart {
			params = append(params, fmt.Sprintf(
				"start_periods=1:start_duration=%s:start_threshold=%s",
				formatSeconds(clampSilenceDuration(cfg.SilenceDurationStart)),
				thresholdToken(cfg.SilenceThresholdStart)))
		}
		if cfg.SilenceTrimEnd {
			params = append(params, fmt.Sprintf(
				"stop_periods=1:stop_duration=%s:stop_threshold=%s",
				formatSeconds(clampSilenceDuration(cfg.SilenceDurationEnd)),
				thresholdToken(cfg.SilenceThresholdEnd)))
		}
		if len(params) > 0 {
			filters = append(filters, "silenceremove="+strings.Join(params, ":"))
		}
	}

	if cfg.Scrubber {
		filters = append(filters, "highpass=f=20", "lowpass=f=15000")
	}

	// Safety pre-limiter ahead of the gain stages.
	filters = append(filters, "alimiter=limit=0.95:attack=2:release=10")

	if cfg.Compression {
		switch cfg.CompressionPreset {
		case CompressionGentle:
			filters = append(filters, "acompressor=threshold=0.1:ratio=4:attack=0.05:release=0.05")
		case CompressionAggressive:
			filters = append(filters, "acompressor=threshold=0.316:ratio=8:attack=0.01:release=0.01")
		default:
			filters = append(filters, "acompressor=threshold=0.178:ratio=6:attack=0.02:release=0.03")
		}
	}

	if cfg.SoftClip {
		filters = append(filters, "alimiter=limit=0.92:attack=3:release=15")
	}

	if cfg.EQ {
		switch cfg.EQPreset {
		case EQWarm:
			filters = append(filters,
				"lowshelf=f=200:g=2",
				"equalizer=f=1000:g=0:w=0.7",
				"highshelf=f=8000:g=-1.5")
		case EQDark:
			filters = append(filters,
				"lowshelf=f=200:g=1.5",
				"equalizer=f=1000:g=0.5:w=0.7",
				"highshelf=f=8000:g=-2")
		default:
			filters = append(filters,
				"equalizer=f=1000:g=0.5:w=0.7",
				"highshelf=f=5000:g=2")
		}
	}

	if cfg.DeEsser {
		filters = append(filters, "equalizer=f=4500:t=h:w=2:g=-4")
	}

	if cfg.Normalize {
		filters = append(filters, "loudnorm=I=-23:TP=-1.5:LRA=7")
	}

	if cfg.Mono {
		filters = append(filters, "aformat=channel_layouts=mono")
	}

	if cfg.Fade {
		fadeIn := ParseTimeString(cfg.FadeIn)
		fadeOutStart := ParseTimeString(cfg.FadeOutStart)
		fadeOutDuration := ParseTimeString(cfg.FadeOutDuration)
		filters = append(filters, fmt.Sprintf("afade=t=in:st=0:d=%s", formatSeconds(fadeIn)))
		if fadeOutDuration > 0 {
			filters = append(filters, fmt.Sprintf("afade=t=out:st=%s:d=%s",
				formatSeconds(fadeOutStart), formatSeconds(fadeOutDuration)))
		}
	}

	return strings.Join(filters, ",")
}

func anyStageEnabled(cfg Config) bool {
	return cfg.Trim || cfg.SilenceTrim || cfg.Scrubber || cfg.Compression ||
		cfg.SoftClip || cfg.EQ || cfg.DeEsser || cfg.Normalize || cfg.Mono || cfg.Fade
}

func clampSilenceDuration(v float64) float64 {
	if v < 0.05 {
		if v == 0 {
			return 0.1
		}
		return 0.05
	}
	if v > 5 {
		return 5
	}
	return v
}

// thresholdToken keeps only the leading token so labelled UI values such
// as "-60dB (default)" serialize cleanly.
func thresholdToken(value string) string {
	fields := strings.Fields(strings.TrimSpace(value))
	if len(fields) == 0 {
		return "-60dB"
	}
	return fields[0]
}

func formatSeconds(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}
