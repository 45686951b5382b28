package config

import (
	"errors"
	"fmt"
	"regexp"
)

var bitratePattern = regexp.MustCompile(`^[0-9]+k?$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSegments(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSegments() error {
	if c.Segments.MinTailSeconds >= c.MaxSegmentSeconds() {
		return fmt.Errorf("segments.min_tail_seconds (%g) must be below the segment length (%gs)",
			c.Segments.MinTailSeconds, c.MaxSegmentSeconds())
	}
	if c.Segments.ShortOutputFloorSeconds >= c.MaxSegmentSeconds() {
		return errors.New("segments.short_output_floor_seconds must be below the segment length")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if !bitratePattern.MatchString(c.Audio.Bitrate) {
		return fmt.Errorf("audio.bitrate %q is not a bitrate like 192k", c.Audio.Bitrate)
	}
	return nil
}
