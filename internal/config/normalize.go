package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeSegments()
	c.normalizeAudio()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkspaceDir) == "" {
		c.Paths.WorkspaceDir = defaultWorkspaceDir
	}
	if c.Paths.WorkspaceDir, err = expandPath(c.Paths.WorkspaceDir); err != nil {
		return fmt.Errorf("paths.workspace_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ProjectsDir) == "" {
		c.Paths.ProjectsDir = defaultProjectsDir
	}
	if c.Paths.ProjectsDir, err = expandPath(c.Paths.ProjectsDir); err != nil {
		return fmt.Errorf("paths.projects_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BiomeCatalog) != "" {
		if c.Paths.BiomeCatalog, err = expandPath(c.Paths.BiomeCatalog); err != nil {
			return fmt.Errorf("paths.biome_catalog: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
}

func (c *Config) normalizeSegments() {
	if c.Segments.MaxSegmentMinutes <= 0 {
		c.Segments.MaxSegmentMinutes = defaultMaxSegmentMinutes
	}
	if c.Segments.MaxSegmentMinutes > maxSegmentMinutesCeiling {
		c.Segments.MaxSegmentMinutes = maxSegmentMinutesCeiling
	}
	if c.Segments.MinTailSeconds < 0 {
		c.Segments.MinTailSeconds = defaultMinTailSeconds
	}
	if c.Segments.ShortOutputFloorSeconds <= 0 {
		c.Segments.ShortOutputFloorSeconds = defaultShortOutputFloorSeconds
	}
}

func (c *Config) normalizeAudio() {
	c.Audio.Bitrate = strings.ToLower(strings.TrimSpace(c.Audio.Bitrate))
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = defaultBitrate
	}
	if c.Audio.MaxInputMegabytes <= 0 {
		c.Audio.MaxInputMegabytes = defaultMaxInputMegabytes
	}
	if c.Audio.ConvertWorkers <= 0 {
		c.Audio.ConvertWorkers = defaultConvertWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
