package procconfig

// CompressionPreset selects the dynamics compression strength.
type CompressionPreset string

const (
	CompressionGentle     CompressionPreset = "gentle"
	CompressionModerate   CompressionPreset = "moderate"
	CompressionAggressive CompressionPreset = "aggressive"
)

// EQPreset selects the three-band equalizer voicing.
type EQPreset string

const (
	EQWarm   EQPreset = "warm"
	EQBright EQPreset = "bright"
	EQDark   EQPreset = "dark"
)

// Config is the fixed-field processing record for one track. Field names
// follow the processing stages in mastering order; FilterChain documents
// the stage pipeline.
type Config struct {
	Trim      bool   `json:"trim"`
	TrimStart string `json:"trimStart,omitempty"`
	TrimEnd   string `json:"trimEnd,omitempty"`

	SilenceTrim           bool    `json:"silenceTrim"`
	SilenceTrimStart      bool    `json:"silenceTrimStart,omitempty"`
	SilenceTrimEnd        bool    `json:"silenceTrimEnd,omitempty"`
	SilenceThresholdStart string  `json:"silenceThresholdStart,omitempty"`
	SilenceThresholdEnd   string  `json:"silenceThresholdEnd,omitempty"`
	SilenceDurationStart  float64 `json:"silenceDurationStart,omitempty"`
	SilenceDurationEnd    float64 `json:"silenceDurationEnd,omitempty"`

	Scrubber bool `json:"scrubber"`

	Compression       bool              `json:"compression"`
	CompressionPreset CompressionPreset `json:"compressionPreset,omitempty"`

	SoftClip bool `json:"softClip"`

	EQ       bool     `json:"eq"`
	EQPreset EQPreset `json:"eqPreset,omitempty"`

	DeEsser   bool `json:"deEsser"`
	Normalize bool `json:"normalize"`
	Mono      bool `json:"mono"`

	Fade            bool   `json:"fade"`
	FadeIn          string `json:"fadeIn,omitempty"`
	FadeOutStart    string `json:"fadeOutStart,omitempty"`
	FadeOutDuration string `json:"fadeOutDuration,omitempty"`

	Bitrate string `json:"bitrate,omitempty"`
}

// Default returns the baseline configuration applied to a fresh session:
// no destructive stages enabled, conservative fade envelope values
// pre-filled so enabling a stage starts from sane numbers.
func Default() Config {
	return Config{
		TrimStart:             "0hr0m0s",
		TrimEnd:               "0hr30m0s",
		SilenceTrimStart:      true,
		SilenceTrimEnd:        true,
		SilenceThresholdStart: "-60dB",
		SilenceThresholdEnd:   "-60dB",
		SilenceDurationStart:  0.1,
		SilenceDurationEnd:    0.1,
		CompressionPreset:     CompressionModerate,
		EQPreset:              EQBright,
		FadeIn:                "0hr0m0.5s",
		FadeOutStart:          "0hr30m0s",
		FadeOutDuration:       "0hr0m5s",
		Bitrate:               "192k",
	}
}
