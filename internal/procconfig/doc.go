// Package procconfig models per-track audio processing settings and the
// layered resolution that produces one effective configuration per file.
//
// Three layers feed resolution: the session-wide baseline, smart defaults
// derived for split segments, and explicit per-segment overrides. Trim,
// silence trimming, and fades operate on absolute offsets or boundary
// heuristics that are destructive at arbitrary cut points, so the derived
// layer forces those three off for any segment with recorded provenance.
// Explicit overrides always win.
//
// FilterChain translates an effective configuration into the ffmpeg -af
// expression handed to the codec runner.
package procconfig
