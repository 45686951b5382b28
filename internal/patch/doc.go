// Package patch compiles finalized track selections into ordered JSON
// Patch operations against Starbound biome files.
//
// Starbound applies .biome.patch files as RFC 6902-style op lists against
// the biome's JSON tree; the music pools live at
// /musicTrack/{day,night}/tracks. Four strategies govern how selections
// become operations (Mode): append alongside vanilla, replace individual
// vanilla slots, clear the vanilla pools and repopulate, or a combined
// replace-then-append pass.
//
// One invariant does all the work here: for any pool, an array-clearing
// replace must precede every add that populates indices into that pool,
// and replace-phase operations precede add-phase operations. Build is the
// single dispatch point where the ordering is enforced.
//
// Build is pure. Copying audio into the mod tree and choosing directory
// layout happen in the pipeline using the same selection data.
package patch
