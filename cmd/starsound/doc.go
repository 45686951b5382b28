// Command starsound is the CLI for building Starbound biome music mods
// from user-supplied audio.
package main
