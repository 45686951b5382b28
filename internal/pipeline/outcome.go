package pipeline

// ConvertedSegment pairs a planned segment with its converted output.
type ConvertedSegment struct {
	Segment         Segment
	OutputPath      string
	DurationSeconds float64
}

// SegmentFailure records one segment that could not be converted.
type SegmentFailure struct {
	SegmentID string
	Err       error
}

// Outcome tallies a conversion batch. Failed segments are excluded from
// the mod without aborting the rest of the batch.
type Outcome struct {
	Converted []ConvertedSegment
	Failed    []SegmentFailure
}

// AllSucceeded reports whether every segment converted.
func (o Outcome) AllSucceeded() bool {
	return len(o.Failed) == 0
}
