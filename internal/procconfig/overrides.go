package procconfig

// Overrides records explicit per-segment edits. Nil fields were never
// touched by the user and fall through to the derived or baseline layer;
// non-nil fields win unconditionally, including re-enabling a stage the
// derived layer disabled.
type Overrides struct {
	Trim      *bool   `json:"trim,omitempty"`
	TrimStart *string `json:"trimStart,omitempty"`
	TrimEnd   *string `json:"trimEnd,omitempty"`

	SilenceTrim *bool `json:"silenceTrim,omitempty"`

	Scrubber *bool `json:"scrubber,omitempty"`

	Compression       *bool              `json:"compression,omitempty"`
	CompressionPreset *CompressionPreset `json:"compressionPreset,omitempty"`

	SoftClip *bool `json:"softClip,omitempty"`

	EQ       *bool     `json:"eq,omitempty"`
	EQPreset *EQPreset `json:"eqPreset,omitempty"`

	DeEsser   *bool `json:"deEsser,omitempty"`
	Normalize *bool `json:"normalize,omitempty"`
	Mono      *bool `json:"mono,omitempty"`

	Fade            *bool   `json:"fade,omitempty"`
	FadeIn          *string `json:"fadeIn,omitempty"`
	FadeOutStart    *string `json:"fadeOutStart,omitempty"`
	FadeOutDuration *string `json:"fadeOutDuration,omitempty"`

	Bitrate *string `json:"bitrate,omitempty"`
}

// IsZero reports whether no field has been set.
func (o *Overrides) IsZero() bool {
	if o == nil {
		return true
	}
	return o.Trim == nil && o.TrimStart == nil && o.TrimEnd == nil &&
		o.SilenceTrim == nil && o.Scrubber == nil &&
		o.Compression == nil && o.CompressionPreset == nil &&
		o.SoftClip == nil && o.EQ == nil && o.EQPreset == nil &&
		o.DeEsser == nil && o.Normalize == nil && o.Mono == nil &&
		o.Fade == nil && o.FadeIn == nil && o.FadeOutStart == nil &&
		o.FadeOutDuration == nil && o.Bitrate == nil
}

func (o *Overrides) apply(cfg *Config) {
	if o == nil {
		return
	}
	if o.Trim != nil {
		cfg.Trim = *o.Trim
	}
	if o.TrimStart != nil {
		cfg.TrimStart = *o.TrimStart
	}
	if o.TrimEnd != nil {
		cfg.TrimEnd = *o.TrimEnd
	}
	if o.SilenceTrim != nil {
		cfg.SilenceTrim = *o.SilenceTrim
	}
	if o.Scrubber != nil {
		cfg.Scrubber = *o.Scrubber
	}
	if o.Compression != nil {
		cfg.Compression = *o.Compression
	}
	if o.CompressionPreset != nil {
		cfg.CompressionPreset = *o.CompressionPreset
	}
	if o.SoftClip != nil {
		cfg.SoftClip = *o.SoftClip
	}
	if o.EQ != nil {
		cfg.EQ = *o.EQ
	}
	if o.EQPreset != nil {
		cfg.EQPreset = *o.EQPreset
	}
	if o.DeEsser != nil {
		cfg.DeEsser = *o.DeEsser
	}
	if o.Normalize != nil {
		cfg.Normalize = *o.Normalize
	}
	if o.Mono != nil {
		cfg.Mono = *o.Mono
	}
	if o.Fade != nil {
		cfg.Fade = *o.Fade
	}
	if o.FadeIn != nil {
		cfg.FadeIn = *o.FadeIn
	}
	if o.FadeOutStart != nil {
		cfg.FadeOutStart = *o.FadeOutStart
	}
	if o.FadeOutDuration != nil {
		cfg.FadeOutDuration = *o.FadeOutDuration
	}
	if o.Bitrate != nil {
		cfg.Bitrate = *o.Bitrate
	}
}
