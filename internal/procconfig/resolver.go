package procconfig

import (
	"github.com/AHSpire/StarSound/internal/provenance"
)

// Resolver merges the three configuration layers for a segment. The
// registry supplies provenance; segments with a recorded origin get the
// derived split defaults before overrides apply.
type Resolver struct {
	Registry *provenance.Registry
}

// NewResolver returns a resolver bound to the session registry. A nil
// registry is valid and treats every identifier as an unsplit file.
func NewResolver(registry *provenance.Registry) *Resolver {
	return &Resolver{Registry: registry}
}

// Resolve computes the effective configuration for segmentID. The result
// is a value copy: later override edits require re-resolution, never
// mutation of a previously returned config.
//
// Layer order: baseline, then split-derived defaults (trim, silence trim,
// and fade forced off for split segments; per-sample stages carried
// through unchanged), then explicit overrides field by field.
func (r *Resolver) Resolve(segmentID string, global Config, overrides *Overrides) Config {
	effective := global

	if r != nil && r.Registry != nil && r.Registry.IsSplitSegment(segmentID) {
		effective.Trim = false
		effective.SilenceTrim = false
		effective.Fade = false
	}

	overrides.apply(&effective)
	return effective
}
