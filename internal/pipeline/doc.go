// Package pipeline orchestrates a full mod build: planning segments from
// source audio, converting them in parallel, and assembling the mod tree
// with its biome patch files.
package pipeline
