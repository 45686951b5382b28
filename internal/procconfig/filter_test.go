package procconfig

import (
	"strings"
	"testing"
)

func TestFilterChainEmptyWhenNothingEnabled(t *testing.T) {
	if got := FilterChain(Default()); got != "" {
		t.Fatalf("expected empty chain, got %q", got)
	}
}

func TestFilterChainStageOrder(t *testing.T) {
	cfg := Default()
	cfg.Trim = true
	cfg.TrimStart = "0hr0m10s"
	cfg.TrimEnd = "0hr25m0s"
	cfg.SilenceTrim = true
	cfg.Scrubber = true
	cfg.Compression = true
	cfg.SoftClip = true
	cfg.EQ = true
	cfg.DeEsser = true
	cfg.Normalize = true
	cfg.Mono = true
	cfg.Fade = true

	chain := FilterChain(cfg)
	stages := []string{
		"atrim=",
		"silenceremove=",
		"highpass=",
		"alimiter=limit=0.95",
		"acompressor=",
		"alimiter=limit=0.92",
		"equalizer=f=1000",
		"equalizer=f=4500",
		"loudnorm=",
		"aformat=channel_layouts=mono",
		"afade=t=in",
		"afade=t=out",
	}
	at := 0
	for _, stage := range stages {
		idx := strings.Index(chain[at:], stage)
		if idx < 0 {
			t.Fatalf("stage %q missing or out of order in chain:\n%s", stage, chain)
		}
		at += idx
	}
}

func TestFilterChainTrimValues(t *testing.T) {
	cfg := Config{Trim: true, TrimStart: "30", TrimEnd: "1hr0m0s"}
	chain := FilterChain(cfg)
	if !strings.Contains(chain, "atrim=start=30:end=3600") {
		t.Fatalf("unexpected trim stage: %q", chain)
	}
}

func TestFilterChainSkipsInvertedTrim(t *testing.T) {
	cfg := Config{Trim: true, TrimStart: "100", TrimEnd: "50"}
	if chain := FilterChain(cfg); strings.Contains(chain, "atrim") {
		t.Fatalf("inverted trim window must be dropped: %q", chain)
	}
}

func TestFilterChainSilenceParams(t *testing.T) {
	cfg := Default()
	cfg.SilenceTrim = true
	cfg.SilenceThresholdStart = "-50dB (custom)"
	cfg.SilenceDurationEnd = 99 // clamped to 5s

	chain := FilterChain(cfg)
	if !strings.Contains(chain, "start_threshold=-50dB") {
		t.Fatalf("threshold token not extracted: %q", chain)
	}
	if !strings.Contains(chain, "stop_duration=5") {
		t.Fatalf("duration not clamped: %q", chain)
	}
}

func TestFilterChainCompressionPresets(t *testing.T) {
	cases := []struct {
		preset CompressionPreset
		want   string
	}{
		{CompressionGentle, "threshold=0.1:ratio=4"},
		{CompressionModerate, "threshold=0.178:ratio=6"},
		{CompressionAggressive, "threshold=0.316:ratio=8"},
		{"", "threshold=0.178:ratio=6"},
	}
	for _, tc := range cases {
		cfg := Config{Compression: true, CompressionPreset: tc.preset}
		if chain := FilterChain(cfg); !strings.Contains(chain, tc.want) {
			t.Fatalf("preset %q: expected %q in %q", tc.preset, tc.want, chain)
		}
	}
}

func TestFilterChainEQPresets(t *testing.T) {
	cfg := Config{EQ: true, EQPreset: EQWarm}
	if chain := FilterChain(cfg); !strings.Contains(chain, "lowshelf=f=200:g=2") {
		t.Fatalf("warm preset missing low shelf: %q", chain)
	}
	cfg.EQPreset = EQBright
	if chain := FilterChain(cfg); !strings.Contains(chain, "highshelf=f=5000:g=2") {
		t.Fatalf("bright preset missing high shelf: %q", chain)
	}
}

func TestFilterChainPreLimiterAlwaysBeforeGainStages(t *testing.T) {
	cfg := Config{EQ: true}
	chain := FilterChain(cfg)
	limiter := strings.Index(chain, "alimiter=limit=0.95")
	eq := strings.Index(chain, "equalizer=")
	if limiter < 0 || eq < 0 || limiter > eq {
		t.Fatalf("pre-limiter must precede EQ: %q", chain)
	}
}

func TestParseTimeString(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"90", 90},
		{"12.5", 12.5},
		{"25m", 1500},
		{"1hr30m", 5400},
		{"1hr30m15s", 5415},
		{"0hr0m0.5s", 0.5},
		{"0hr30m0s", 1800},
		{"garbage", 0},
		{" 2m ", 120},
	}
	for _, tc := range cases {
		if got := ParseTimeString(tc.in); got != tc.want {
			t.Fatalf("ParseTimeString(%q): got %v, want %v", tc.in, got, tc.want)
		}
	}
}
