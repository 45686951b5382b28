package main

import (
	"path/filepath"
	"strings"
	"sync"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AHSpire/StarSound/internal/biome"
	"github.com/AHSpire/StarSound/internal/config"
	"github.com/AHSpire/StarSound/internal/logging"
	"github.com/AHSpire/StarSound/internal/state"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		OutputPaths: []string{
			"stderr",
			filepath.Join(cfg.Paths.LogDir, "starsound.log"),
		},
	})
}

func (c *commandContext) catalog() (*biome.Catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Paths.BiomeCatalog) != "" {
		return biome.Load(cfg.Paths.BiomeCatalog)
	}
	return biome.Embedded()
}

func (c *commandContext) snapshots() (*state.SnapshotStore, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return state.NewSnapshotStore(cfg.Paths.ProjectsDir), nil
}

func (c *commandContext) prefs() (*state.Prefs, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return state.OpenPrefs(cfg.Paths.WorkspaceDir)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
