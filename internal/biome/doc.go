// Package biome provides the vanilla Starbound biome catalog: which biomes
// exist, and which music tracks each biome's day and night pools contain
// in original file order.
//
// Track order is load-bearing. The order in a .biome file defines the
// array indices that replace operations target; a sorted or otherwise
// reordered catalog would generate patches against the wrong tracks.
//
// The embedded catalog ships the known biome list. A catalog regenerated
// from unpacked game assets (see ReadBiomeFile) can be supplied through
// configuration to pick up modded or updated track pools.
package biome
