// Package segmentplan computes bounded segment partitions for oversized
// audio sources.
//
// Starbound rejects music tracks longer than roughly 30 minutes, so long
// inputs are cut into parts before conversion. Plan is the single entry
// point: given a source duration and a maximum segment length it returns
// an ordered, contiguous, gap-free partition covering [0, duration).
//
// The planner is pure computation; the actual cutting is performed by the
// codec runner using the spans returned here.
package segmentplan
