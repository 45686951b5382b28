package config

const (
	defaultWorkspaceDir            = "~/.local/share/starsound/workspace"
	defaultProjectsDir             = "~/.local/share/starsound/projects"
	defaultLogDir                  = "~/.local/share/starsound/logs"
	defaultMaxSegmentMinutes       = 25.0
	defaultMinTailSeconds          = 120.0
	defaultShortOutputFloorSeconds = 6.0
	defaultBitrate                 = "192k"
	defaultMaxInputMegabytes       = 500
	defaultConvertWorkers          = 2
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"

	// Planner ceiling. Segments longer than this produce unusable patches
	// in game, so max_segment_minutes is clamped here.
	maxSegmentMinutesCeiling = 30.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			ProjectsDir:  defaultProjectsDir,
			LogDir:       defaultLogDir,
		},
		Segments: Segments{
			MaxSegmentMinutes:       defaultMaxSegmentMinutes,
			MinTailSeconds:          defaultMinTailSeconds,
			ShortOutputFloorSeconds: defaultShortOutputFloorSeconds,
		},
		Audio: Audio{
			Bitrate:           defaultBitrate,
			MaxInputMegabytes: defaultMaxInputMegabytes,
			ConvertWorkers:    defaultConvertWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
