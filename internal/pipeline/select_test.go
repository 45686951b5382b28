package pipeline_test

import (
	"testing"

	"github.com/AHSpire/StarSound/internal/biome"
	"github.com/AHSpire/StarSound/internal/pipeline"
	"github.com/AHSpire/StarSound/internal/segmentplan"
)

func TestAutoSelectionsFillsChosenDayparts(t *testing.T) {
	plan := &pipeline.PlanResult{
		Segments: []pipeline.Segment{
			{ID: "mix_part1", Span: segmentplan.Span{Start: 0, End: 1500}, Split: true},
			{ID: "mix_part2", Span: segmentplan.Span{Start: 1500, End: 2838}, Split: true},
		},
	}
	refs := []biome.Ref{garden, {Category: "surface", Name: "desert"}}

	selections := pipeline.AutoSelections(plan, refs, true, false)
	if len(selections) != 2 {
		t.Fatalf("expected one selection per biome, got %+v", selections)
	}
	for _, sel := range selections {
		if len(sel.Day.Add) != 2 || sel.Day.Add[0] != "mix_part1.ogg" || sel.Day.Add[1] != "mix_part2.ogg" {
			t.Fatalf("unexpected day tracks: %+v", sel.Day)
		}
		if !sel.Night.IsZero() {
			t.Fatalf("night should be empty: %+v", sel.Night)
		}
	}

	both := pipeline.AutoSelections(plan, refs[:1], true, true)
	if len(both) != 1 || len(both[0].Night.Add) != 2 {
		t.Fatalf("expected night filled: %+v", both)
	}

	if got := pipeline.AutoSelections(plan, nil, true, true); got != nil {
		t.Fatalf("expected nil for no biomes, got %+v", got)
	}
	if got := pipeline.AutoSelections(plan, refs, false, false); got != nil {
		t.Fatalf("expected nil for no dayparts, got %+v", got)
	}
}
