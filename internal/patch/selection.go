package patch

import (
	"sort"

	"github.com/AHSpire/StarSound/internal/biome"
)

// Op verbs emitted by Build.
const (
	OpAdd     = "add"
	OpReplace = "replace"
)

// Operation is one JSON Patch instruction. Value is either a string track
// ID or a whole replacement array.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// TrackSet holds one daypart's selection for a biome: tracks to append in
// order, and a sparse index-to-track replacement mapping.
type TrackSet struct {
	Add     []string       `json:"add,omitempty"`
	Replace map[int]string `json:"replace,omitempty"`
}

// IsZero reports whether the set selects nothing.
func (t TrackSet) IsZero() bool {
	return len(t.Add) == 0 && len(t.Replace) == 0
}

// replaceIndices returns the mapped slots in ascending order so emitted
// operations are deterministic.
func (t TrackSet) replaceIndices() []int {
	indices := make([]int, 0, len(t.Replace))
	for idx := range t.Replace {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// BiomeSelection is the finalized selection for one biome.
type BiomeSelection struct {
	Biome biome.Ref `json:"biome"`
	Day   TrackSet  `json:"day"`
	Night TrackSet  `json:"night"`
}

// IsZero reports whether neither daypart selects anything.
func (s BiomeSelection) IsZero() bool {
	return s.Day.IsZero() && s.Night.IsZero()
}

// Document is the ordered operation list for one biome patch file.
type Document struct {
	Biome biome.Ref
	Ops   []Operation
}
