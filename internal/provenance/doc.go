// Package provenance tracks which split segments were cut from which
// original audio source.
//
// The registry is the only place that knows a segment's parentage, and the
// sequence index recorded here is the only disambiguator for "part N" of a
// source. Grouped enumeration keeps segments of the same parent contiguous
// and in cut order, which batch conversion and display both rely on.
package provenance
