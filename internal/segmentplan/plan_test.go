package segmentplan

import (
	"errors"
	"math"
	"testing"
)

func TestPlanSingleSegment(t *testing.T) {
	spans, err := Plan(600, 1500, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 600 {
		t.Fatalf("expected (0, 600), got (%v, %v)", spans[0].Start, spans[0].End)
	}
}

func TestPlanExactBoundary(t *testing.T) {
	spans, err := Plan(1500, 1500, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 1 {
		t.Fatalf("expected 1 span for duration == max, got %d", len(spans))
	}
}

func TestPlanTwoSegments(t *testing.T) {
	// 47.3 minutes split at 25-minute boundaries.
	spans, err := Plan(2838, 1500, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0] != (Span{0, 1500}) {
		t.Fatalf("span 0: got %+v", spans[0])
	}
	if spans[1] != (Span{1500, 2838}) {
		t.Fatalf("span 1: got %+v", spans[1])
	}
}

func TestPlanLongSource(t *testing.T) {
	// 181 minutes at 25-minute boundaries: eight segments, six-minute tail.
	spans, err := Plan(181*60, 1500, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 8 {
		t.Fatalf("expected 8 spans, got %d", len(spans))
	}
	tail := spans[len(spans)-1]
	if tail.Length() != 360 {
		t.Fatalf("expected 360s tail, got %v", tail.Length())
	}
}

func TestPlanMergesShortTail(t *testing.T) {
	// 25.5 minutes would leave a 30-second tail; it must fold into the
	// previous segment instead.
	spans, err := Plan(1530, 1500, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 1 {
		t.Fatalf("expected merged single span, got %d", len(spans))
	}
	if spans[0].End != 1530 {
		t.Fatalf("merged span must cover full duration, got end %v", spans[0].End)
	}
}

func TestPlanCustomTailFloor(t *testing.T) {
	spans, err := Plan(1530, 1500, Options{MinTailSeconds: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans with lowered floor, got %d", len(spans))
	}
}

func TestPlanInvalidInputs(t *testing.T) {
	cases := []struct {
		name     string
		duration float64
		maxLen   float64
	}{
		{"zero duration", 0, 1500},
		{"negative duration", -5, 1500},
		{"zero max", 600, 0},
		{"negative max", 600, -1},
		{"nan duration", math.NaN(), 1500},
		{"inf max", 600, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Plan(tc.duration, tc.maxLen, Options{}); !errors.Is(err, ErrInvalidDuration) {
				t.Fatalf("expected ErrInvalidDuration, got %v", err)
			}
		})
	}
}

func TestPlanPartitionProperties(t *testing.T) {
	durations := []float64{1, 59.9, 600, 1499.99, 1500, 2838, 7200, 10860, 100000}
	for _, d := range durations {
		spans, err := Plan(d, 1500, Options{})
		if err != nil {
			t.Fatalf("duration %v: %v", d, err)
		}
		if len(spans) == 0 {
			t.Fatalf("duration %v: empty partition", d)
		}
		if spans[0].Start != 0 {
			t.Fatalf("duration %v: partition starts at %v", d, spans[0].Start)
		}
		for i := 1; i < len(spans); i++ {
			if spans[i].Start != spans[i-1].End {
				t.Fatalf("duration %v: gap between span %d and %d", d, i-1, i)
			}
		}
		if got := spans[len(spans)-1].End; got != d {
			t.Fatalf("duration %v: partition ends at %v", d, got)
		}
		for i, s := range spans {
			if s.Length() <= 0 {
				t.Fatalf("duration %v: span %d has non-positive length", d, i)
			}
			if len(spans) > 1 && s.Length() < DefaultMinTailSeconds && i == len(spans)-1 {
				t.Fatalf("duration %v: tail below floor survived merging", d)
			}
		}
	}
}

func TestPlanDeterministic(t *testing.T) {
	a, err := Plan(2838, 1500, Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Plan(2838, 1500, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("plan not deterministic: %d vs %d spans", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("plan not deterministic at span %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
