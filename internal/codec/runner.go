package codec

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AHSpire/StarSound/internal/logging"
	"github.com/AHSpire/StarSound/internal/media/ffprobe"
	"github.com/AHSpire/StarSound/internal/segmentplan"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

type probeFunc func(ctx context.Context, path string) (float64, error)

// Options configures a Runner.
type Options struct {
	FFmpeg           string
	FFprobe          string
	Bitrate          string
	ShortOutputFloor float64
	MaxInputBytes    int64
}

// Runner drives ffmpeg extraction and conversion for one pipeline run.
type Runner struct {
	ffmpeg  string
	bitrate string
	floor   float64
	maxIn   int64
	logger  *slog.Logger
	run     commandRunner
	probe   probeFunc
}

// NewRunner constructs a Runner from options. Empty tool names fall back
// to the bare executable names.
func NewRunner(opts Options, logger *slog.Logger) *Runner {
	ffmpeg := strings.TrimSpace(opts.FFmpeg)
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	ffprobeBin := strings.TrimSpace(opts.FFprobe)
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	bitrate := strings.TrimSpace(opts.Bitrate)
	if bitrate == "" {
		bitrate = "192k"
	}
	return &Runner{
		ffmpeg:  ffmpeg,
		bitrate: bitrate,
		floor:   opts.ShortOutputFloor,
		maxIn:   opts.MaxInputBytes,
		logger:  logging.NewComponentLogger(logger, "codec"),
		run:     defaultCommandRunner,
		probe: func(ctx context.Context, path string) (float64, error) {
			result, err := ffprobe.Inspect(ctx, ffprobeBin, path)
			if err != nil {
				return 0, err
			}
			return result.DurationSeconds(), nil
		},
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (r *Runner) WithCommandRunner(run commandRunner) {
	if r != nil && run != nil {
		r.run = run
	}
}

// WithProbe allows injecting a custom duration probe for tests.
func (r *Runner) WithProbe(probe probeFunc) {
	if r != nil && probe != nil {
		r.probe = probe
	}
}

// ValidateInput checks a source file against the configured size cap.
func (r *Runner) ValidateInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if r.maxIn > 0 && info.Size() > r.maxIn {
		return &InputTooLargeError{Path: path, Size: info.Size(), Limit: r.maxIn}
	}
	return nil
}

// Extract copies one planned span out of the source into an intermediate
// PCM file, preserving the source sample data for the conversion pass.
func (r *Runner) Extract(ctx context.Context, input string, span segmentplan.Span, output string) error {
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	args := []string{
		"-y",
		"-i", input,
		"-ss", formatFloat(span.Start),
		"-t", formatFloat(span.Length()),
		"-vn",
		"-c:a", "pcm_s16le",
		output,
	}
	r.logger.Debug("extracting segment",
		logging.String("input", input),
		logging.String("output", output),
		logging.Float64("start", span.Start),
		logging.Float64("length", span.Length()),
	)
	if err := r.run(ctx, r.ffmpeg, args...); err != nil {
		_ = os.Remove(output)
		return fmt.Errorf("ffmpeg extract: %w", err)
	}
	return nil
}

// ConvertJob describes one conversion from intermediate audio to Ogg Vorbis.
type ConvertJob struct {
	Input  string
	Output string
	// Filter is the ffmpeg -af chain, empty when no processing applies.
	Filter string
	// ExpectedSeconds is the planned span length, used for loss reporting.
	ExpectedSeconds float64
}

// ConvertResult reports the measured output of a conversion.
type ConvertResult struct {
	Output          string
	DurationSeconds float64
}

// Convert encodes a segment to Ogg Vorbis at the configured bitrate and
// validates the output duration. Output below the floor is removed and
// reported as a ShortOutputError. Output above the floor but under half
// the expected length is kept with a warning, since aggressive silence
// trimming can legitimately shed that much.
func (r *Runner) Convert(ctx context.Context, job ConvertJob) (ConvertResult, error) {
	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return ConvertResult{}, fmt.Errorf("create output directory: %w", err)
	}
	args := []string{"-y", "-i", job.Input}
	if strings.TrimSpace(job.Filter) != "" {
		args = append(args, "-af", job.Filter)
	}
	args = append(args,
		"-vn",
		"-acodec", "libvorbis",
		"-ar", "44100",
		"-ac", "2",
		"-b:a", r.bitrate,
		job.Output,
	)
	r.logger.Debug("converting segment",
		logging.String("input", job.Input),
		logging.String("output", job.Output),
		logging.String("bitrate", r.bitrate),
	)
	if err := r.run(ctx, r.ffmpeg, args...); err != nil {
		_ = os.Remove(job.Output)
		return ConvertResult{}, fmt.Errorf("ffmpeg convert: %w", err)
	}

	duration, err := r.probe(ctx, job.Output)
	if err != nil {
		return ConvertResult{}, fmt.Errorf("probe output: %w", err)
	}
	if duration < r.floor {
		_ = os.Remove(job.Output)
		return ConvertResult{}, &ShortOutputError{Path: job.Output, Duration: duration, Floor: r.floor}
	}
	if job.ExpectedSeconds > 0 && duration < job.ExpectedSeconds*0.5 {
		r.logger.Warn("output much shorter than planned",
			logging.String("output", job.Output),
			logging.Float64("duration", duration),
			logging.Float64("expected", job.ExpectedSeconds),
		)
	}
	return ConvertResult{Output: job.Output, DurationSeconds: duration}, nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
