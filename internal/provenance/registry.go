package provenance

import (
	"sort"
	"strings"
)

// Group is one enumeration unit: either all segments of a split source in
// sequence order, or a single unsplit file.
type Group struct {
	// Source is the original file identifier. For unsplit files it equals
	// the single member.
	Source string
	// Members are segment identifiers in sequence order, or the file
	// itself when Split is false.
	Members []string
	// Split reports whether Source was cut into segments.
	Split bool
}

type segmentRecord struct {
	source   string
	sequence int
	split    bool
}

// Registry is a bidirectional map between segment identifiers and their
// originating source. It is an owned session object: create one with
// NewRegistry at session start and discard it at session end. Methods are
// not safe for concurrent mutation; each conversion pass owns its registry.
type Registry struct {
	segments map[string]segmentRecord
	sources  map[string][]string
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		segments: make(map[string]segmentRecord),
		sources:  make(map[string][]string),
	}
}

// Record registers segmentID as the next segment cut from sourceID.
// Recording order defines the sequence index; segments of one source must
// be recorded in cut order. A whole file records itself as its own source
// and stays an unsplit entry. Re-recording a known segment is a no-op.
func (r *Registry) Record(segmentID, sourceID string) {
	segmentID = strings.TrimSpace(segmentID)
	sourceID = strings.TrimSpace(sourceID)
	if segmentID == "" || sourceID == "" {
		return
	}
	if _, exists := r.segments[segmentID]; exists {
		return
	}
	if _, known := r.sources[sourceID]; !known {
		r.order = append(r.order, sourceID)
	}
	r.segments[segmentID] = segmentRecord{
		source:   sourceID,
		sequence: len(r.sources[sourceID]) + 1,
		split:    segmentID != sourceID,
	}
	r.sources[sourceID] = append(r.sources[sourceID], segmentID)
}

// OriginOf returns the source a segment was cut from, if any.
func (r *Registry) OriginOf(segmentID string) (string, bool) {
	rec, ok := r.segments[segmentID]
	if !ok {
		return "", false
	}
	return rec.source, true
}

// SequenceOf returns the 1-based cut position of a segment within its
// source, or 0 when the identifier has no recorded origin.
func (r *Registry) SequenceOf(segmentID string) int {
	return r.segments[segmentID].sequence
}

// SegmentsOf returns the segments cut from sourceID in sequence order.
func (r *Registry) SegmentsOf(sourceID string) []string {
	segs := r.sources[sourceID]
	out := make([]string, len(segs))
	copy(out, segs)
	return out
}

// IsSplitSegment reports whether the identifier is a recorded segment cut
// from a larger source. Whole files recorded as their own source are not
// split segments.
func (r *Registry) IsSplitSegment(segmentID string) bool {
	return r.segments[segmentID].split
}

// Len returns the number of recorded segments.
func (r *Registry) Len() int { return len(r.segments) }

// Groups enumerates the provided identifiers grouped by origin. Segments
// sharing a source are yielded contiguously, ordered by sequence index,
// under one group; identifiers with no recorded origin each form their own
// flat group. Group order follows the first appearance of each source (or
// flat file) in ids, so caller-visible ordering is stable.
func (r *Registry) Groups(ids []string) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, id := range ids {
		rec, ok := r.segments[id]
		if !ok || !rec.split {
			groups = append(groups, Group{Source: id, Members: []string{id}})
			continue
		}
		at, seen := index[rec.source]
		if !seen {
			index[rec.source] = len(groups)
			groups = append(groups, Group{Source: rec.source, Split: true})
			at = len(groups) - 1
		}
		groups[at].Members = append(groups[at].Members, id)
	}

	for i := range groups {
		if !groups[i].Split {
			continue
		}
		members := groups[i].Members
		sort.SliceStable(members, func(a, b int) bool {
			return r.segments[members[a]].sequence < r.segments[members[b]].sequence
		})
	}
	return groups
}
