package pipeline

import (
	"github.com/AHSpire/StarSound/internal/biome"
	"github.com/AHSpire/StarSound/internal/patch"
)

// AutoSelections appends every planned segment to the chosen dayparts of
// each biome, in plan order. This is the selection shape the add and
// remove modes use when no explicit per-track mapping exists.
func AutoSelections(plan *PlanResult, refs []biome.Ref, day, night bool) []patch.BiomeSelection {
	if plan == nil || len(refs) == 0 || (!day && !night) {
		return nil
	}
	tracks := make([]string, 0, len(plan.Segments))
	for _, seg := range plan.Segments {
		tracks = append(tracks, seg.OutputName())
	}

	selections := make([]patch.BiomeSelection, 0, len(refs))
	for _, ref := range refs {
		sel := patch.BiomeSelection{Biome: ref}
		if day {
			sel.Day.Add = append([]string(nil), tracks...)
		}
		if night {
			sel.Night.Add = append([]string(nil), tracks...)
		}
		selections = append(selections, sel)
	}
	return selections
}
