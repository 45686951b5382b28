package segmentplan

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDuration is returned when the source duration or the maximum
// segment length is not a positive number.
var ErrInvalidDuration = errors.New("invalid duration")

// DefaultMinTailSeconds is the floor below which a trailing remainder is
// merged into the previous segment instead of being emitted on its own.
// A two-minute stub at the end of an album rip is not a usable track.
const DefaultMinTailSeconds = 120.0

// Span is one planned segment as a half-open [Start, End) interval in
// seconds relative to the source file.
type Span struct {
	Start float64
	End   float64
}

// Length returns the span duration in seconds.
func (s Span) Length() float64 { return s.End - s.Start }

// Options adjusts planner behavior. The zero value selects defaults.
type Options struct {
	// MinTailSeconds overrides DefaultMinTailSeconds when positive.
	MinTailSeconds float64
}

func (o Options) minTail() float64 {
	if o.MinTailSeconds > 0 {
		return o.MinTailSeconds
	}
	return DefaultMinTailSeconds
}

// Plan partitions duration into segments of at most maxSegmentLength
// seconds. Boundaries fall at multiples of maxSegmentLength with the final
// segment clamped to duration. A trailing segment shorter than the minimum
// tail floor is merged into the penultimate segment.
//
// A source no longer than maxSegmentLength yields a single span covering
// the whole duration; "no split needed" is the degenerate case, not a
// separate code path.
func Plan(duration, maxSegmentLength float64, opts Options) ([]Span, error) {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: duration %v", ErrInvalidDuration, duration)
	}
	if maxSegmentLength <= 0 || math.IsNaN(maxSegmentLength) || math.IsInf(maxSegmentLength, 0) {
		return nil, fmt.Errorf("%w: max segment length %v", ErrInvalidDuration, maxSegmentLength)
	}

	n := int(math.Ceil(duration / maxSegmentLength))
	if n < 1 {
		n = 1
	}

	spans := make([]Span, 0, n)
	for i := 0; i < n; i++ {
		start := float64(i) * maxSegmentLength
		end := start + maxSegmentLength
		if i == n-1 || end > duration {
			end = duration
		}
		spans = append(spans, Span{Start: start, End: end})
	}

	// Floating-point safety: the last span always ends exactly at duration.
	spans[len(spans)-1].End = duration

	if len(spans) > 1 && spans[len(spans)-1].Length() < opts.minTail() {
		spans[len(spans)-2].End = duration
		spans = spans[:len(spans)-1]
	}

	return spans, nil
}
