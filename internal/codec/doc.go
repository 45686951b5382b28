// Package codec extracts planned segments from source audio and converts
// them to Ogg Vorbis using ffmpeg, validating the results against the
// configured output floors.
package codec
